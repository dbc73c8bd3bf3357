// Package lineedit implements a single-line, raw-mode text editor whose
// cursor record is kept in step with the terminal.
//
// The editor never trusts a locally computed cursor position: after each
// operation that moves the cursor it asks the terminal where the cursor
// ended up, because line wrap and redraws on the terminal side can diverge
// from a purely local calculation. Every edit that changes visible text
// repaints the whole line.
//
// Input is restricted to characters that fit in one byte of ASCII.
package lineedit

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/terminal"
)

// Editor owns the text buffer of one editing session and the cursor
// position last reported by the terminal.
//
// Invariant: 1 <= col <= len(buf)+1 while the terminal behaves.
type Editor struct {
	term terminal.Oracle
	buf  []byte
	col  int
	row  int
	done bool
}

// New starts an editing session on the terminal's current row with the
// cursor at column 1.
func New(term terminal.Oracle) (*Editor, error) {
	e := &Editor{term: term, col: 1}

	pos, err := e.query()
	if err != nil {
		return nil, err
	}
	e.row = pos.Row

	if err := e.write(ansi.CUP(1, e.row)); err != nil {
		return nil, err
	}
	log.Debug(log.CatEditor, "Editing session started", "row", e.row)
	return e, nil
}

// Text returns the current buffer contents.
func (e *Editor) Text() string {
	return string(e.buf)
}

// Column returns the 1-based cursor column.
func (e *Editor) Column() int {
	return e.col
}

// Row returns the 1-based cursor row.
func (e *Editor) Row() int {
	return e.row
}

// MoveLeft moves the cursor one column left. The sequence is always sent;
// the terminal clamps at column 1.
func (e *Editor) MoveLeft() error {
	if e.done {
		return ErrFinished
	}
	if err := e.write(ansi.CUB(1)); err != nil {
		return err
	}
	pos, err := e.query()
	if err != nil {
		return err
	}
	e.col = pos.Col
	return nil
}

// MoveRight moves the cursor one column right, but never past the end of
// the text.
func (e *Editor) MoveRight() error {
	if e.done {
		return ErrFinished
	}
	if e.col > len(e.buf) {
		return nil
	}
	if err := e.write(ansi.CUF(1)); err != nil {
		return err
	}
	pos, err := e.query()
	if err != nil {
		return err
	}
	e.col = pos.Col
	return nil
}

// Backspace deletes the character left of the cursor. No-op at column 1.
func (e *Editor) Backspace() error {
	if e.done {
		return ErrFinished
	}
	if e.col <= 1 || len(e.buf) == 0 {
		return nil
	}

	e.col = min(e.col, len(e.buf)+1) - 1
	e.buf = append(e.buf[:e.col-1], e.buf[e.col:]...)

	// Only the row is taken from the terminal; the column follows from
	// the deletion and is restored explicitly below.
	pos, err := e.query()
	if err != nil {
		return err
	}
	e.row = pos.Row

	if err := e.redraw(); err != nil {
		return err
	}
	return e.write(ansi.CUP(e.col, e.row))
}

// Insert places r at the cursor and advances the cursor by one.
// Characters outside the single-byte ASCII range are rejected and leave the
// buffer unchanged.
func (e *Editor) Insert(r rune) error {
	if e.done {
		return ErrFinished
	}
	if r < 0 || r >= utf8.RuneSelf {
		log.Debug(log.CatEditor, "Rejected character", "rune", fmt.Sprintf("%q", r))
		return &NotSingleByteError{Rune: r}
	}

	at := min(e.col-1, len(e.buf))
	e.buf = append(e.buf, 0)
	copy(e.buf[at+1:], e.buf[at:])
	e.buf[at] = byte(r)

	pos, err := e.query()
	if err != nil {
		return err
	}
	e.row = pos.Row

	if err := e.redraw(); err != nil {
		return err
	}
	if err := e.write(ansi.CUP(e.col+1, e.row)); err != nil {
		return err
	}

	pos, err = e.query()
	if err != nil {
		return err
	}
	e.col = pos.Col
	return nil
}

// Finalize ends the session and returns the typed text. A buffer that is
// empty after trimming whitespace fails with ErrEmptyInput. The text itself
// is returned untrimmed.
func (e *Editor) Finalize() (Result, error) {
	if e.done {
		return Result{}, ErrFinished
	}
	e.done = true

	if strings.TrimSpace(string(e.buf)) == "" {
		return Result{}, ErrEmptyInput
	}
	log.Debug(log.CatEditor, "Editing session finalized", "length", len(e.buf))
	return Text(string(e.buf)), nil
}

// Cancel ends the session without producing text.
func (e *Editor) Cancel() Result {
	e.done = true
	log.Debug(log.CatEditor, "Editing session cancelled")
	return Exit()
}

// redraw repaints the entire line from column 1.
func (e *Editor) redraw() error {
	return e.write(ansi.CUP(1, e.row) + ansi.EraseEntireLine + string(e.buf))
}

func (e *Editor) write(s string) error {
	if _, err := io.WriteString(e.term, s); err != nil {
		log.ErrorErr(log.CatEditor, "Terminal write failed", err)
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func (e *Editor) query() (terminal.Position, error) {
	pos, err := e.term.CursorPosition()
	if err != nil {
		log.ErrorErr(log.CatEditor, "Cursor query failed", err)
		return terminal.Position{}, &IOError{Op: "cursor query", Err: err}
	}
	return pos, nil
}
