package shell

import (
	"bufio"
	"io"
	"os"

	sherr "shelld/internal/errors"
)

// Redirector is the session's byte source.  Normally it hands through
// bytes from the connection; while a script is active it delivers the
// script file's content instead, completely transparently to the
// decoder and editor.
//
// Only one script can be active at a time; the session's "no script
// already active" guard means a line inside a script that names a file
// is not evaluated as a script until the outer one has ended.
type Redirector struct {
	primary io.ByteReader

	file   *os.File
	reader *bufio.Reader
	size   int64
	offset int64

	inject byte // pending synthesized byte, 0 = none
}

// NewRedirector wraps the connection-side byte reader.
func NewRedirector(primary io.ByteReader) *Redirector {
	return &Redirector{primary: primary}
}

// Active reports whether a script is currently supplying input.
func (r *Redirector) Active() bool { return r.file != nil }

// Start evaluates path as a script candidate.  It engages only when
// path names an existing regular file with size > 0; anything else
// (missing, directory, empty) returns (false, nil) so the caller can
// treat the line as an ordinary unmatched command.  A stat hit with a
// failing open returns (false, error) for the same caller treatment;
// there is no silent retry.
func (r *Redirector) Start(path string) (bool, error) {
	if r.file != nil {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, sherr.WrapScript(path, err)
	}

	r.file = f
	r.reader = bufio.NewReader(f)
	r.size = info.Size()
	r.offset = 0
	return true, nil
}

// ReadByte delivers the next input byte from whichever source is
// active.  When the script's read position reaches its recorded size
// the file is closed and the connection source is restored; if the
// script's last byte was not a newline, a single newline is
// synthesized so a final unterminated line still submits.
func (r *Redirector) ReadByte() (byte, error) {
	if r.inject != 0 {
		b := r.inject
		r.inject = 0
		return b, nil
	}

	if r.file == nil {
		return r.primary.ReadByte()
	}

	b, err := r.reader.ReadByte()
	if err != nil {
		// The file shrank underneath us; fall back to the connection.
		r.stop()
		return r.primary.ReadByte()
	}

	r.offset++
	if r.offset >= r.size {
		r.stop()
		if b != '\n' {
			r.inject = '\n'
		}
	}
	return b, nil
}

// stop closes the script file and restores the connection source.
func (r *Redirector) stop() {
	if r.file != nil {
		r.file.Close() //nolint:errcheck
		r.file = nil
		r.reader = nil
		r.size = 0
		r.offset = 0
	}
}

// Close releases the script file if one is still open.
func (r *Redirector) Close() {
	r.stop()
}
