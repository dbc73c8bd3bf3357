package terminal

import (
	"fmt"
	"unicode/utf8"
)

// KeyType identifies the kind of key press.
type KeyType int

const (
	KeyRune KeyType = iota // Printable (or at least non-control) character in Rune
	KeyEnter
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	KeyCtrlC
	KeyCtrlD
	KeyUnknown
)

func (t KeyType) String() string {
	switch t {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyCtrlD:
		return "ctrl+d"
	default:
		return "unknown"
	}
}

// Key is a single decoded key press.
type Key struct {
	Type KeyType
	Rune rune // Set when Type is KeyRune
}

// RuneKey returns the key press for character r.
func RuneKey(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

func (k Key) String() string {
	if k.Type == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	return k.Type.String()
}

// byteSource is the raw input a key is decoded from.
type byteSource interface {
	ReadByte() (byte, error)
	// UnreadByte pushes the last byte read back to the front of the stream.
	UnreadByte() error
	// Buffered reports how many bytes can be read without blocking.
	Buffered() int
}

// decodeKey reads exactly one key press from src.
//
// A lone ESC is only treated as the Escape key when no further bytes are
// already waiting; terminals deliver escape sequences in a single write.
func decodeKey(src byteSource) (Key, error) {
	b, err := src.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch {
	case b == '\r' || b == '\n':
		return Key{Type: KeyEnter}, nil
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace}, nil
	case b == 0x03:
		return Key{Type: KeyCtrlC}, nil
	case b == 0x04:
		return Key{Type: KeyCtrlD}, nil
	case b == 0x1b:
		return decodeEscape(src)
	case b < 0x20:
		return Key{Type: KeyUnknown}, nil
	case b < utf8.RuneSelf:
		return RuneKey(rune(b)), nil
	}

	return decodeUTF8(b, src)
}

func decodeEscape(src byteSource) (Key, error) {
	if src.Buffered() == 0 {
		return Key{Type: KeyEscape}, nil
	}

	b, err := src.ReadByte()
	if err != nil {
		return Key{}, err
	}
	if b != '[' && b != 'O' {
		// ESC followed by an ordinary key: both are separate presses
		if err := src.UnreadByte(); err != nil {
			return Key{}, err
		}
		return Key{Type: KeyEscape}, nil
	}

	// Consume parameter bytes up to the final byte of the sequence
	for {
		c, err := src.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if c >= 0x40 && c <= 0x7e {
			switch c {
			case 'A':
				return Key{Type: KeyUp}, nil
			case 'B':
				return Key{Type: KeyDown}, nil
			case 'C':
				return Key{Type: KeyRight}, nil
			case 'D':
				return Key{Type: KeyLeft}, nil
			default:
				return Key{Type: KeyUnknown}, nil
			}
		}
	}
}

// decodeUTF8 assembles a multi-byte character so the editor can reject it
// as a whole instead of seeing its individual bytes.
func decodeUTF8(lead byte, src byteSource) (Key, error) {
	buf := []byte{lead}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		b, err := src.ReadByte()
		if err != nil {
			return Key{}, err
		}
		buf = append(buf, b)
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}, nil
	}
	return RuneKey(r), nil
}
