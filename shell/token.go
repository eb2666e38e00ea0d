package shell

// Tokenize splits line into at most max tokens.  Runs of spaces
// separate tokens; a token opening with a backtick, single quote, or
// double quote runs to the matching quote and keeps interior spaces
// and other quote characters verbatim.  Opening and closing quotes are
// not part of the token.
//
// Tokens are sub-slices of line and stay valid only until the buffer
// is next mutated.
//
// When the token limit is reached the final token is the unscanned
// remainder of the line, spaces, closing quote and all.
func Tokenize(line []byte, max int) [][]byte {
	if max < 1 {
		return nil
	}

	var tokens [][]byte
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}

		delim := byte(' ')
		if line[i] == '`' || line[i] == '\'' || line[i] == '"' {
			delim = line[i]
			i++
		}

		start := i
		if len(tokens) == max-1 {
			tokens = append(tokens, line[start:])
			break
		}

		for i < len(line) && line[i] != delim {
			i++
		}
		tokens = append(tokens, line[start:i])
		if i < len(line) {
			i++ // consume the closing delimiter
		}
	}
	return tokens
}
