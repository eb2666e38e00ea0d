package util

import "io"

// NormalizeEnter wraps r so that carriage returns read as newlines and
// a CR-LF pair collapses to a single newline.  Raw terminals and SSH
// pty clients transmit Enter as CR (or CR LF); the shell's key decoder
// only treats NL as submit.
func NormalizeEnter(r io.Reader) io.Reader {
	return &enterNormalizer{r: r}
}

type enterNormalizer struct {
	r       io.Reader
	afterCR bool
}

func (n *enterNormalizer) Read(p []byte) (int, error) {
	m, err := n.r.Read(p)
	w := 0
	for _, c := range p[:m] {
		switch {
		case c == '\r':
			p[w] = '\n'
			w++
			n.afterCR = true
		case c == '\n' && n.afterCR:
			n.afterCR = false // second half of CR LF, already emitted
		default:
			p[w] = c
			w++
			n.afterCR = false
		}
	}
	if w == 0 && m > 0 && err == nil {
		// everything read was swallowed; try again rather than
		// returning a zero-byte read
		return n.Read(p)
	}
	return w, err
}
