package shell

import (
	"bytes"
	"strings"
	"testing"
)

func testEditor(capacity int) (*Editor, *bytes.Buffer) {
	var out bytes.Buffer
	e := NewEditor(&out, capacity, func() string { return "/x" })
	return e, &out
}

func typeLine(e *Editor, s string) {
	for i := 0; i < len(s); i++ {
		e.Insert(s[i])
	}
}

func TestEditor_InsertSequence(t *testing.T) {
	e, out := testEditor(16)
	typeLine(e, "hello")

	if got := string(e.Line()); got != "hello" {
		t.Errorf("line = %q, want %q", got, "hello")
	}
	if e.Len() != 5 || e.Cursor() != 5 {
		t.Errorf("len/cursor = %d/%d, want 5/5", e.Len(), e.Cursor())
	}
	// Appending at the end echoes each byte with no cursor repositioning.
	if out.String() != "hello" {
		t.Errorf("output = %q, want %q", out.String(), "hello")
	}
}

func TestEditor_InsertMidLine(t *testing.T) {
	e, out := testEditor(16)
	typeLine(e, "ac")
	e.MoveLeft()
	out.Reset()

	e.Insert('b')

	if got := string(e.Line()); got != "abc" {
		t.Errorf("line = %q, want %q", got, "abc")
	}
	if e.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", e.Cursor())
	}
	// Redraw covers the changed suffix and walks the cursor back once.
	if out.String() != "bc"+seqLeft {
		t.Errorf("output = %q, want %q", out.String(), "bc"+seqLeft)
	}
}

// TestEditor_OverflowResets checks the overflow law: a full buffer
// given one more byte holds only that byte.
func TestEditor_OverflowResets(t *testing.T) {
	e, _ := testEditor(8)
	typeLine(e, "1234567") // capacity-1 bytes: buffer now full

	if e.Len() != 7 {
		t.Fatalf("len = %d, want 7", e.Len())
	}

	e.Insert('X')
	if got := string(e.Line()); got != "X" {
		t.Errorf("line after overflow = %q, want %q", got, "X")
	}
	if e.Len() != 1 || e.Cursor() != 1 {
		t.Errorf("len/cursor = %d/%d, want 1/1", e.Len(), e.Cursor())
	}
}

func TestEditor_Backspace(t *testing.T) {
	e, out := testEditor(16)
	typeLine(e, "abc")
	out.Reset()

	e.Backspace()

	if got := string(e.Line()); got != "ab" {
		t.Errorf("line = %q, want %q", got, "ab")
	}
	// The stale cell is wiped with a trailing space, then the line is
	// drawn clean.
	s := out.String()
	if !strings.Contains(s, "\r#/x> ab ") || !strings.HasSuffix(s, "\r#/x> ab") {
		t.Errorf("unexpected redraw output %q", s)
	}
}

func TestEditor_BackspaceAtStartIsNoop(t *testing.T) {
	e, out := testEditor(16)
	e.Backspace()
	if e.Len() != 0 || out.Len() != 0 {
		t.Errorf("backspace on empty line should do nothing, wrote %q", out.String())
	}
}

func TestEditor_DeleteForward(t *testing.T) {
	e, _ := testEditor(16)
	typeLine(e, "abc")
	e.Home()

	e.Delete()
	if got := string(e.Line()); got != "bc" {
		t.Errorf("line = %q, want %q", got, "bc")
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor moved to %d during forward delete", e.Cursor())
	}
}

func TestEditor_DeleteAtEndIsNoop(t *testing.T) {
	e, _ := testEditor(16)
	typeLine(e, "ab")
	e.Delete()
	if got := string(e.Line()); got != "ab" {
		t.Errorf("line = %q, want %q", got, "ab")
	}
}

func TestEditor_CursorMovement(t *testing.T) {
	e, out := testEditor(16)
	typeLine(e, "ab")
	out.Reset()

	e.MoveLeft()
	e.MoveLeft()
	e.MoveLeft() // at bound: no-op
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", e.Cursor())
	}
	if out.String() != seqLeft+seqLeft {
		t.Errorf("output = %q, want two cursor-left sequences", out.String())
	}

	out.Reset()
	e.MoveRight()
	e.MoveRight()
	e.MoveRight() // at bound: no-op
	if e.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", e.Cursor())
	}
	if out.String() != seqRight+seqRight {
		t.Errorf("output = %q, want two cursor-right sequences", out.String())
	}
}

func TestEditor_HomeEnd(t *testing.T) {
	e, out := testEditor(16)
	typeLine(e, "abcd")
	out.Reset()

	e.Home()
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d after Home", e.Cursor())
	}
	if out.String() != strings.Repeat(seqLeft, 4) {
		t.Errorf("Home emitted %q", out.String())
	}

	out.Reset()
	e.End()
	if e.Cursor() != 4 {
		t.Errorf("cursor = %d after End", e.Cursor())
	}
	if out.String() != strings.Repeat(seqRight, 4) {
		t.Errorf("End emitted %q", out.String())
	}
}

func TestEditor_SetLineTruncates(t *testing.T) {
	e, _ := testEditor(8)
	e.SetLine("this is longer than the buffer")
	if e.Len() != 7 {
		t.Errorf("len = %d, want capacity-1 = 7", e.Len())
	}
}

func TestEditor_Prompt(t *testing.T) {
	e, out := testEditor(16)
	e.Prompt(false)
	if out.String() != "\r#/x> " {
		t.Errorf("prompt = %q", out.String())
	}

	out.Reset()
	e.Prompt(true)
	if out.String() != "\r\n#/x> " {
		t.Errorf("prompt with newline = %q", out.String())
	}
}

func TestEditor_RootPrompt(t *testing.T) {
	var out bytes.Buffer
	e := NewEditor(&out, 16, func() string { return "" })
	e.Prompt(false)
	if out.String() != "\r"+promptRoot {
		t.Errorf("root prompt = %q", out.String())
	}
}
