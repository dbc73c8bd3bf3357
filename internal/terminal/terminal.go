// Package terminal is the boundary between launchpad and the physical
// terminal. It defines the Oracle the line editor trusts for cursor
// position, decodes key presses from raw input and owns the raw-mode
// TTY scope.
package terminal

import (
	"fmt"
	"io"
)

// Position is a 1-based cursor location as reported by the terminal.
type Position struct {
	Col int
	Row int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Oracle is the terminal as the source of truth for cursor position.
// Writes carry formatted control output; CursorPosition synchronously asks
// the terminal where its cursor is.
type Oracle interface {
	io.Writer
	CursorPosition() (Position, error)
}

// KeyReader blocks until the next key press is available.
// It returns io.EOF when the input is exhausted.
type KeyReader interface {
	ReadKey() (Key, error)
}

// Suspender is implemented by terminals that can leave raw mode while a
// child process owns the screen.
type Suspender interface {
	Suspend() error
	Resume() error
}
