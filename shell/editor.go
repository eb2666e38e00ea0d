package shell

import "io"

// Rendered text protocol.  The arrow sequences are the same literals
// the decoder consumes, reused symmetrically for output.
const (
	seqLeft  = "\x1b[D"
	seqRight = "\x1b[C"

	promptDrive  = "#"
	promptSuffix = "> "
	promptRoot   = "#> "
)

// Editor owns the live input buffer, the cursor, and all prompt
// rendering for one session.
//
// Invariants: 0 ≤ cursor ≤ length ≤ cap-1.  The byte at buf[length] is
// scratch space used during redraws; the usable line never exceeds
// cap-1 bytes.
//
// The redraw discipline never clears the terminal line: removals are
// painted over by writing the buffer once with a trailing space, then
// again without it, and the terminal cursor is walked back with one
// cursor-left sequence per cell.
type Editor struct {
	out    io.Writer
	cwd    func() string // current prompt directory, re-read on every draw
	buf    []byte
	length int
	cursor int
}

// NewEditor returns an editor with the given buffer capacity writing
// to out.  cwd supplies the working-directory string for the prompt.
func NewEditor(out io.Writer, capacity int, cwd func() string) *Editor {
	if capacity < 2 {
		capacity = 2
	}
	return &Editor{out: out, cwd: cwd, buf: make([]byte, capacity)}
}

// Line returns the current buffer content.  The slice aliases the live
// buffer and is only valid until the next editing operation.
func (e *Editor) Line() []byte { return e.buf[:e.length] }

// Len returns the current line length.
func (e *Editor) Len() int { return e.length }

// Cursor returns the current cursor index.
func (e *Editor) Cursor() int { return e.cursor }

// Cap returns the buffer capacity.
func (e *Editor) Cap() int { return len(e.buf) }

// Insert places b at the cursor, shifting the tail right.  When the
// buffer is already full the entire line is discarded and replaced by
// the single new byte: the input overflow policy is reset, not
// refusal.
func (e *Editor) Insert(b byte) {
	if e.length < len(e.buf)-1 {
		copy(e.buf[e.cursor+1:e.length+1], e.buf[e.cursor:e.length])
		e.buf[e.cursor] = b
		e.cursor++
		e.length++
	} else {
		e.buf[0] = b
		e.cursor = 1
		e.length = 1
	}

	e.out.Write(e.buf[e.cursor-1 : e.length]) //nolint:errcheck
	e.stepBack(e.length - e.cursor)
}

// Backspace removes the byte left of the cursor.  No-op at the start
// of the line.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	copy(e.buf[e.cursor-1:e.length-1], e.buf[e.cursor:e.length])
	e.cursor--
	e.length--
	e.repaintAfterRemove()
}

// Delete removes the byte under the cursor without moving it.  No-op
// at the end of the line.
func (e *Editor) Delete() {
	if e.cursor >= e.length {
		return
	}
	copy(e.buf[e.cursor:e.length-1], e.buf[e.cursor+1:e.length])
	e.length--
	e.repaintAfterRemove()
}

// repaintAfterRemove redraws the line after a one-byte removal: once
// with a trailing space to wipe the stale cell, once clean, then walks
// the cursor back into position.
func (e *Editor) repaintAfterRemove() {
	e.buf[e.length] = ' '
	e.Prompt(false)
	e.out.Write(e.buf[:e.length+1]) //nolint:errcheck
	e.Prompt(false)
	e.out.Write(e.buf[:e.length]) //nolint:errcheck
	e.stepBack(e.length - e.cursor)
}

// MoveLeft moves the cursor one cell left.
func (e *Editor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
		io.WriteString(e.out, seqLeft) //nolint:errcheck
	}
}

// MoveRight moves the cursor one cell right.
func (e *Editor) MoveRight() {
	if e.cursor < e.length {
		e.cursor++
		io.WriteString(e.out, seqRight) //nolint:errcheck
	}
}

// Home moves the cursor to the start of the line, one cell at a time.
func (e *Editor) Home() {
	for e.cursor > 0 {
		io.WriteString(e.out, seqLeft) //nolint:errcheck
		e.cursor--
	}
}

// End moves the cursor to the end of the line, one cell at a time.
func (e *Editor) End() {
	for e.cursor < e.length {
		io.WriteString(e.out, seqRight) //nolint:errcheck
		e.cursor++
	}
}

// SetLine replaces the visible line with the given content (history
// recall), truncating to capacity and leaving the cursor at the end.
func (e *Editor) SetLine(line string) {
	e.blankOut()
	n := copy(e.buf[:len(e.buf)-1], line)
	e.length = n
	e.cursor = n
	e.Prompt(false)
	e.out.Write(e.buf[:n]) //nolint:errcheck
}

// ClearLine wipes the visible line and redraws an empty prompt.
func (e *Editor) ClearLine() {
	e.blankOut()
	e.Prompt(false)
}

// blankOut overwrites the visible line with spaces and resets the
// buffer to empty.
func (e *Editor) blankOut() {
	for i := 0; i < e.length; i++ {
		e.buf[i] = ' '
	}
	e.Prompt(false)
	e.out.Write(e.buf[:e.length]) //nolint:errcheck
	e.length = 0
	e.cursor = 0
}

// Reset empties the buffer without redrawing.  Used after a submit,
// when the dispatch output has already moved the terminal on.
func (e *Editor) Reset() {
	e.length = 0
	e.cursor = 0
}

// Prompt writes a carriage return, optionally a newline, and the
// prompt prefix.  Every redraw starts here.
func (e *Editor) Prompt(newline bool) {
	io.WriteString(e.out, "\r") //nolint:errcheck
	if newline {
		io.WriteString(e.out, "\n") //nolint:errcheck
	}
	if wd := e.cwd(); wd != "" {
		io.WriteString(e.out, promptDrive)  //nolint:errcheck
		io.WriteString(e.out, wd)           //nolint:errcheck
		io.WriteString(e.out, promptSuffix) //nolint:errcheck
	} else {
		io.WriteString(e.out, promptRoot) //nolint:errcheck
	}
}

// stepBack emits n cursor-left sequences.
func (e *Editor) stepBack(n int) {
	for i := 0; i < n; i++ {
		io.WriteString(e.out, seqLeft) //nolint:errcheck
	}
}
