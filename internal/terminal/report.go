package terminal

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// ErrInvalidReport indicates a malformed cursor position report.
var ErrInvalidReport = errors.New("invalid cursor position report")

// ParseCursorPositionReport parses a CPR reply of the form ESC [ row ; col R.
// seq must hold exactly one sequence.
func ParseCursorPositionReport(seq []byte) (Position, error) {
	if !ansi.HasCsiPrefix(seq) {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidReport, seq)
	}

	p := ansi.NewParser()
	_, _, n, _ := ansi.DecodeSequence(seq, ansi.NormalState, p)
	cmd := ansi.Cmd(p.Command())
	if n != len(seq) || cmd.Final() != 'R' || cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidReport, seq)
	}

	params := p.Params()
	if len(params) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidReport, seq)
	}

	row, _, _ := params.Param(0, 0)
	if row < 1 {
		return Position{}, fmt.Errorf("%w: bad row in %q", ErrInvalidReport, seq)
	}
	col, _, _ := params.Param(1, 0)
	if col < 1 {
		return Position{}, fmt.Errorf("%w: bad column in %q", ErrInvalidReport, seq)
	}

	return Position{Col: col, Row: row}, nil
}
