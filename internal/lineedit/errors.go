package lineedit

import (
	"errors"
	"fmt"
)

// Editor errors. Validation failures (ErrEmptyInput, ErrNotSingleByte) are
// recoverable and reported to the user; ErrTerminalIO aborts the session.
var (
	ErrEmptyInput    = errors.New("input was empty")
	ErrNotSingleByte = errors.New("character is not a single byte")
	ErrTerminalIO    = errors.New("terminal i/o failed")
	ErrFinished      = errors.New("editing session already finished")
)

// NotSingleByteError reports a character outside the ASCII range.
type NotSingleByteError struct {
	Rune rune
}

func (e *NotSingleByteError) Error() string {
	return fmt.Sprintf("character %q does not fit in a single byte", e.Rune)
}

// Is lets errors.Is match ErrNotSingleByte.
func (e *NotSingleByteError) Is(target error) bool {
	return target == ErrNotSingleByte
}

// IOError wraps a failed terminal write or cursor query.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrTerminalIO.
func (e *IOError) Is(target error) bool {
	return target == ErrTerminalIO
}
