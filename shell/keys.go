package shell

import "io"

// KeyType classifies a decoded key event.
type KeyType int

const (
	KeyPrintable KeyType = iota // a byte ≥ space, carried in Key.Ch
	KeySubmit                   // newline
	KeyBackspace                // DEL (0x7F)
	KeyDelete                   // ESC [ 3 ~
	KeyUp                       // ESC [ A
	KeyDown                     // ESC [ B
	KeyRight                    // ESC [ C
	KeyLeft                     // ESC [ D
	KeyHome                     // ESC O H
	KeyEnd                      // ESC O F
)

// Key is one logical key event produced by the decoder.
type Key struct {
	Type KeyType
	Ch   byte // valid only for KeyPrintable
}

const (
	esc = 0x1B
	del = 0x7F
)

// Decoder turns raw bytes from a session's active input source into
// logical key events.  Multi-byte escape sequences are consumed
// strictly in order: a byte that does not match the expected sequence
// at any decision point is discarded without an event, never
// reinterpreted as the start of something else.
type Decoder struct {
	src io.ByteReader
}

// NewDecoder returns a Decoder reading from src.
func NewDecoder(src io.ByteReader) *Decoder {
	return &Decoder{src: src}
}

// ReadKey blocks until a complete key event is available or the source
// fails.  Unrecognised control bytes are skipped silently.
func (d *Decoder) ReadKey() (Key, error) {
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			return Key{}, err
		}

		switch {
		case b == esc:
			k, ok, err := d.readEscape()
			if err != nil {
				return Key{}, err
			}
			if ok {
				return k, nil
			}
		case b == '\n':
			return Key{Type: KeySubmit}, nil
		case b == del:
			return Key{Type: KeyBackspace}, nil
		case b >= ' ':
			return Key{Type: KeyPrintable, Ch: b}, nil
		default:
			// other control bytes are ignored
		}
	}
}

// readEscape decodes the remainder of an escape sequence.  ok is false
// when the sequence was not one of the recognised ones; the stray
// bytes consumed along the way are dropped.
func (d *Decoder) readEscape() (Key, bool, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return Key{}, false, err
	}

	switch b {
	case '[':
		b, err = d.src.ReadByte()
		if err != nil {
			return Key{}, false, err
		}
		switch b {
		case '3':
			b, err = d.src.ReadByte()
			if err != nil {
				return Key{}, false, err
			}
			if b == '~' {
				return Key{Type: KeyDelete}, true, nil
			}
		case 'A':
			return Key{Type: KeyUp}, true, nil
		case 'B':
			return Key{Type: KeyDown}, true, nil
		case 'C':
			return Key{Type: KeyRight}, true, nil
		case 'D':
			return Key{Type: KeyLeft}, true, nil
		}
	case 'O':
		b, err = d.src.ReadByte()
		if err != nil {
			return Key{}, false, err
		}
		switch b {
		case 'H':
			return Key{Type: KeyHome}, true, nil
		case 'F':
			return Key{Type: KeyEnd}, true, nil
		}
	}
	return Key{}, false, nil
}
