// Package keymap defines the single-key shortcuts shown in the launcher menu.
package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Validation errors.
var (
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrReservedKey        = errors.New("key is reserved")
	ErrInvalidKey         = errors.New("invalid key")
	ErrMissingCommand     = errors.New("command is required")
	ErrMissingDescription = errors.New("description is required")
	ErrPlaceholderUnused  = errors.New("placeholder not found in command")
)

// Keymap maps a trigger key to a shell command template.
type Keymap struct {
	Key         rune   // Trigger character
	Description string // Shown next to the key in the menu
	Command     string // Shell command line, optionally containing Placeholder
	Placeholder string // Token replaced by typed text; empty = no input needed
	Prompt      string // Prompt shown before text entry; empty = launcher default
}

// RequiresInput reports whether selecting the keymap opens a text prompt.
func (k Keymap) RequiresInput() bool {
	return k.Placeholder != ""
}

// Table is an ordered, immutable list of keymaps.
type Table struct {
	maps []Keymap
}

// NewTable copies maps into a table. It does not validate; see Validate.
func NewTable(maps ...Keymap) Table {
	return Table{maps: append([]Keymap(nil), maps...)}
}

// Find returns the first keymap bound to key, in table order.
func (t Table) Find(key rune) (Keymap, bool) {
	for _, k := range t.maps {
		if k.Key == key {
			return k, true
		}
	}
	return Keymap{}, false
}

// All returns a copy of the keymaps in table order.
func (t Table) All() []Keymap {
	return append([]Keymap(nil), t.maps...)
}

// Len returns the number of keymaps.
func (t Table) Len() int {
	return len(t.maps)
}

// Validate checks that every keymap is usable and that triggers are unique
// and do not collide with the reserved quit key.
func (t Table) Validate(quit rune) error {
	seen := make(map[rune]int, len(t.maps))
	for i, k := range t.maps {
		if !unicode.IsPrint(k.Key) || unicode.IsSpace(k.Key) {
			return fmt.Errorf("keymap %d: %w %q", i, ErrInvalidKey, k.Key)
		}
		if k.Key == quit {
			return fmt.Errorf("keymap %d (%c): %w for quit", i, k.Key, ErrReservedKey)
		}
		if prev, ok := seen[k.Key]; ok {
			return fmt.Errorf("keymap %d (%c): %w, already used by keymap %d", i, k.Key, ErrDuplicateKey, prev)
		}
		seen[k.Key] = i

		if strings.TrimSpace(k.Description) == "" {
			return fmt.Errorf("keymap %d (%c): %w", i, k.Key, ErrMissingDescription)
		}
		if strings.TrimSpace(k.Command) == "" {
			return fmt.Errorf("keymap %d (%c): %w", i, k.Key, ErrMissingCommand)
		}
		if k.Placeholder != "" && !strings.Contains(k.Command, k.Placeholder) {
			return fmt.Errorf("keymap %d (%c): %w: %q in %q", i, k.Key, ErrPlaceholderUnused, k.Placeholder, k.Command)
		}
	}
	return nil
}
