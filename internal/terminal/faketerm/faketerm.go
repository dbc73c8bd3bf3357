// Package faketerm provides an in-memory terminal for tests. It interprets
// the control sequences launchpad emits, tracks the cursor the way a real
// terminal would (clamping at the edges, wrapping long lines) and answers
// cursor position queries from that state.
package faketerm

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/launchpad/internal/terminal"
)

// ErrInjected is returned by writes or queries set to fail.
var ErrInjected = errors.New("injected terminal failure")

// Compile-time checks for the contracts the launcher consumes.
var (
	_ terminal.Oracle    = (*Terminal)(nil)
	_ terminal.KeyReader = (*Terminal)(nil)
	_ terminal.Suspender = (*Terminal)(nil)
)

// Terminal is a scripted fake terminal.
type Terminal struct {
	Width  int
	Height int

	col, row      int
	lines         map[int][]byte
	out           strings.Builder
	cursorVisible bool

	keys []terminal.Key

	// Queries counts CursorPosition calls.
	Queries int
	// Suspends and Resumes count raw-mode toggles.
	Suspends int
	Resumes  int

	// FailWritesAfter makes every write after the first N fail (-1 disables).
	FailWritesAfter int
	// FailQueriesAfter makes every query after the first N fail (-1 disables).
	FailQueriesAfter int
	writes           int

	// OnSuspend runs inside Suspend, letting tests observe raw-mode state.
	OnSuspend func()
}

// New returns an 80x24 terminal with the cursor at (1,1).
func New(keys ...terminal.Key) *Terminal {
	return &Terminal{
		Width:            80,
		Height:           24,
		col:              1,
		row:              1,
		lines:            make(map[int][]byte),
		cursorVisible:    true,
		keys:             keys,
		FailWritesAfter:  -1,
		FailQueriesAfter: -1,
	}
}

// Type queues a printable string followed by the given trailing keys.
func (t *Terminal) Type(s string, trailing ...terminal.Key) {
	for _, r := range s {
		t.keys = append(t.keys, terminal.RuneKey(r))
	}
	t.keys = append(t.keys, trailing...)
}

// Press queues keys.
func (t *Terminal) Press(keys ...terminal.Key) {
	t.keys = append(t.keys, keys...)
}

// ReadKey pops the next scripted key, or io.EOF when the script is done.
func (t *Terminal) ReadKey() (terminal.Key, error) {
	if len(t.keys) == 0 {
		return terminal.Key{}, io.EOF
	}
	k := t.keys[0]
	t.keys = t.keys[1:]
	return k, nil
}

// Remaining reports how many scripted keys have not been read.
func (t *Terminal) Remaining() int {
	return len(t.keys)
}

// MoveTo places the cursor without emitting output.
func (t *Terminal) MoveTo(col, row int) {
	t.col, t.row = col, row
	t.clamp()
}

// CursorPosition reports the emulated cursor.
func (t *Terminal) CursorPosition() (terminal.Position, error) {
	t.Queries++
	if t.FailQueriesAfter >= 0 && t.Queries > t.FailQueriesAfter {
		return terminal.Position{}, ErrInjected
	}
	return terminal.Position{Col: t.col, Row: t.row}, nil
}

// Suspend records a raw-mode suspension.
func (t *Terminal) Suspend() error {
	t.Suspends++
	if t.OnSuspend != nil {
		t.OnSuspend()
	}
	return nil
}

// Resume records a raw-mode resumption.
func (t *Terminal) Resume() error {
	t.Resumes++
	return nil
}

// CursorVisible reports whether the last visibility sequence showed the cursor.
func (t *Terminal) CursorVisible() bool {
	return t.cursorVisible
}

// Output returns everything written, control sequences included.
func (t *Terminal) Output() string {
	return t.out.String()
}

// PlainOutput returns everything written with control sequences removed.
func (t *Terminal) PlainOutput() string {
	return ansi.Strip(t.out.String())
}

// Line returns the visible contents of a row with trailing blanks trimmed.
func (t *Terminal) Line(row int) string {
	return strings.TrimRight(string(t.lines[row]), " ")
}

// Write interprets control output and updates the emulated screen.
func (t *Terminal) Write(p []byte) (int, error) {
	t.writes++
	if t.FailWritesAfter >= 0 && t.writes > t.FailWritesAfter {
		return 0, ErrInjected
	}
	t.out.Write(p)

	for i := 0; i < len(p); i++ {
		b := p[i]
		switch {
		case b == 0x1b && i+1 < len(p) && p[i+1] == '[':
			i = t.csi(p, i+2)
		case b == '\r':
			t.col = 1
		case b == '\n':
			t.row++
			t.clamp()
		case b >= 0x20 && b < 0x7f:
			t.put(b)
		}
	}
	return len(p), nil
}

// csi handles one CSI sequence whose parameters start at p[start] and
// returns the index of its final byte.
func (t *Terminal) csi(p []byte, start int) int {
	end := start
	for end < len(p) && (p[end] < 0x40 || p[end] > 0x7e) {
		end++
	}
	if end >= len(p) {
		return len(p) - 1
	}

	raw := string(p[start:end])
	private := strings.HasPrefix(raw, "?")
	params := parseParams(strings.TrimPrefix(raw, "?"))

	switch p[end] {
	case 'D':
		t.col -= param(params, 0, 1)
	case 'C':
		t.col += param(params, 0, 1)
	case 'A':
		t.row -= param(params, 0, 1)
	case 'B':
		t.row += param(params, 0, 1)
	case 'H':
		t.row = param(params, 0, 1)
		t.col = param(params, 1, 1)
	case 'K':
		if param(params, 0, 0) == 2 {
			delete(t.lines, t.row)
		}
	case 'J':
		if param(params, 0, 0) == 2 {
			t.lines = make(map[int][]byte)
		}
	case 'h':
		if private && param(params, 0, 0) == 25 {
			t.cursorVisible = true
		}
	case 'l':
		if private && param(params, 0, 0) == 25 {
			t.cursorVisible = false
		}
	}
	t.clamp()
	return end
}

func (t *Terminal) put(b byte) {
	line := t.lines[t.row]
	for len(line) < t.col {
		line = append(line, ' ')
	}
	line[t.col-1] = b
	t.lines[t.row] = line

	t.col++
	if t.col > t.Width {
		t.col = 1
		t.row++
		t.clamp()
	}
}

func (t *Terminal) clamp() {
	t.col = min(max(t.col, 1), t.Width)
	t.row = min(max(t.row, 1), t.Height)
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = -1
		}
		out[i] = n
	}
	return out
}

// param returns the i-th parameter, or def when it is missing or zero.
func param(params []int, i, def int) int {
	if i >= len(params) || params[i] <= 0 {
		return def
	}
	return params[i]
}
