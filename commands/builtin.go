package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"shelld/internal/metrics"
	"shelld/shell"
)

// InstallCore registers the core command set: help, exit, date, uname,
// reboot, and stats.  name and version identify the server in uname
// output; mc may be nil, in which case stats reports zeros.
func InstallCore(reg *shell.Registry, name, version string, mc *metrics.Collector) {
	reg.Register("help", "prints the list of available commands", helpCmd)
	reg.Register("exit", "closes the shell session", exitCmd)
	reg.Register("date", "prints the current date and time", dateCmd)
	reg.Register("uname", "prints system information", unameCmd(name, version))
	reg.Register("reboot", "reboots the system", rebootCmd)
	reg.Register("stats", "prints server statistics as JSON", statsCmd(mc))
}

func helpCmd(io.Writer, []string) shell.ControlCode {
	return shell.PrintCommandList
}

func exitCmd(io.Writer, []string) shell.ControlCode {
	return shell.Exit
}

func dateCmd(out io.Writer, _ []string) shell.ControlCode {
	io.WriteString(out, time.Now().Format(time.ANSIC)) //nolint:errcheck
	return shell.Continue
}

func unameCmd(name, version string) shell.Handler {
	return func(out io.Writer, _ []string) shell.ControlCode {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		fmt.Fprintf(out, "%s %s %s %s/%s", //nolint:errcheck
			name, version, host, runtime.GOOS, runtime.GOARCH)
		return shell.Continue
	}
}

func rebootCmd(out io.Writer, _ []string) shell.ControlCode {
	// Rebooting the host is an embedded-target notion; on a hosted OS
	// the command exists but declines.
	io.WriteString(out, "reboot is not supported on this host") //nolint:errcheck
	return shell.Continue
}

func statsCmd(mc *metrics.Collector) shell.Handler {
	return func(out io.Writer, _ []string) shell.ControlCode {
		b, err := json.MarshalIndent(mc.Snapshot(), "", "  ")
		if err != nil {
			return shell.Continue
		}
		out.Write(b) //nolint:errcheck
		return shell.Continue
	}
}
