// Package commands provides the built-in command set for shelld.
// Every command is an ordinary [shell.Handler]; nothing in here is
// special to the dispatch engine.
package commands

// argByIndex returns args[i], or "" when out of range.
func argByIndex(i int, args []string) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// finalArg returns the last argument, or "" when there is none.
func finalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

// hasSwitch reports whether sw appears among args.
func hasSwitch(sw string, args []string) bool {
	for _, a := range args {
		if a == sw {
			return true
		}
	}
	return false
}
