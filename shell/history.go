package shell

// History is a fixed-capacity ring of previously submitted lines plus
// a browse cursor for Up/Down recall.
//
// Recording overwrites the oldest slot unconditionally; there is no
// deduplication.  Browsing wraps: pressing Up past the oldest entry
// cycles back around to the newest, revisiting empty slots along the
// way.  Down never steps forward through history; it only resets to a
// fresh line.  Both behaviours are deliberate and covered by tests.
type History struct {
	slots  []string
	save   int // next slot to overwrite
	browse int // -1 = not browsing
}

// NewHistory returns a ring with n slots (minimum 1).
func NewHistory(n int) *History {
	if n < 1 {
		n = 1
	}
	return &History{slots: make([]string, n), browse: -1}
}

// Record stores a non-empty line in the next slot and advances the
// write cursor.  Empty lines are never recorded.
func (h *History) Record(line string) {
	if line == "" {
		return
	}
	h.slots[h.save] = line
	h.save = (h.save + 1) % len(h.slots)
}

// Up steps the browse cursor one slot back, wrapping below zero, and
// returns the slot's content.  ok is false when the slot is empty, in
// which case the caller leaves the visible line untouched (the cursor
// still moved).
func (h *History) Up() (line string, ok bool) {
	h.browse--
	if h.browse < 0 {
		h.browse = len(h.slots) - 1
	}
	line = h.slots[h.browse]
	return line, line != ""
}

// Down resets the browse cursor to "not browsing".  The caller clears
// the visible line.
func (h *History) Down() {
	h.browse = -1
}

// Browsing returns the current browse index (-1 when not browsing).
func (h *History) Browsing() int { return h.browse }

// Len returns the ring capacity.
func (h *History) Len() int { return len(h.slots) }
