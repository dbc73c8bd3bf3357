package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/zjrosen/launchpad/internal/log"
)

// ErrNotTerminal indicates stdin is not connected to a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Compile-time checks that TTY satisfies the launcher's terminal contracts.
var (
	_ Oracle    = (*TTY)(nil)
	_ KeyReader = (*TTY)(nil)
	_ Suspender = (*TTY)(nil)
)

// input is the raw byte stream from the terminal. Bytes that arrive while
// a cursor position report is awaited are stashed in pending and replayed
// before anything else is read.
type input struct {
	pending []byte
	r       *bufio.Reader

	last      byte
	canUnread bool
}

func (in *input) ReadByte() (byte, error) {
	var b byte
	if len(in.pending) > 0 {
		b = in.pending[0]
		in.pending = in.pending[1:]
	} else {
		var err error
		if b, err = in.r.ReadByte(); err != nil {
			in.canUnread = false
			return 0, err
		}
	}
	in.last, in.canUnread = b, true
	return b, nil
}

// UnreadByte puts the last byte read back in front of everything pending.
func (in *input) UnreadByte() error {
	if !in.canUnread {
		return bufio.ErrInvalidUnreadByte
	}
	in.pending = append([]byte{in.last}, in.pending...)
	in.canUnread = false
	return nil
}

func (in *input) Buffered() int {
	return len(in.pending) + in.r.Buffered()
}

func (in *input) stash(b ...byte) {
	in.pending = append(in.pending, b...)
}

// TTY is the real terminal in raw mode. Open acquires raw mode and Close
// restores it; callers defer Close so every exit path gives the user back a
// cooked terminal with a visible cursor.
type TTY struct {
	fd     int
	state  *term.State
	in     *input
	out    io.Writer
	closed bool
}

// Open puts the terminal attached to stdin into raw mode.
func Open() (*TTY, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	log.Debug(log.CatTerm, "Entered raw mode", "fd", fd)

	t := newTTY(os.Stdin, os.Stdout)
	t.fd = fd
	t.state = state
	return t, nil
}

// newTTY builds a TTY over arbitrary streams without touching terminal
// modes.
func newTTY(in io.Reader, out io.Writer) *TTY {
	return &TTY{
		fd:  -1,
		in:  &input{r: bufio.NewReader(in)},
		out: out,
	}
}

// Write sends control output to the terminal.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// CursorPosition asks the terminal for its cursor location and blocks
// until the report arrives. Key presses received in the meantime are kept
// for ReadKey.
func (t *TTY) CursorPosition() (Position, error) {
	if _, err := io.WriteString(t.out, ansi.RequestCursorPositionReport); err != nil {
		return Position{}, fmt.Errorf("requesting cursor position: %w", err)
	}

	pos, err := t.readReport()
	if err != nil {
		return Position{}, fmt.Errorf("reading cursor position: %w", err)
	}
	return pos, nil
}

// readReport scans the input for ESC [ row ; col R. Anything that does not
// belong to a report is stashed for ReadKey.
func (t *TTY) readReport() (Position, error) {
	var seq []byte
	for {
		b, err := t.in.r.ReadByte()
		if err != nil {
			if len(seq) > 0 {
				t.in.stash(seq...)
			}
			return Position{}, err
		}

		switch len(seq) {
		case 0:
			if b == 0x1b {
				seq = append(seq, b)
			} else {
				t.in.stash(b)
			}
		case 1:
			if b == '[' {
				seq = append(seq, b)
				continue
			}
			t.in.stash(seq...)
			seq = seq[:0]
			if b == 0x1b {
				seq = append(seq, b)
			} else {
				t.in.stash(b)
			}
		default:
			seq = append(seq, b)
			if (b >= '0' && b <= '9') || b == ';' {
				continue
			}
			if b == 'R' {
				if pos, err := ParseCursorPositionReport(seq); err == nil {
					return pos, nil
				}
			}
			log.Debug(log.CatTerm, "Stashing input received during cursor query", "bytes", fmt.Sprintf("%q", seq))
			t.in.stash(seq...)
			seq = seq[:0]
		}
	}
}

// ReadKey blocks until the next key press.
func (t *TTY) ReadKey() (Key, error) {
	return decodeKey(t.in)
}

// Size returns the terminal width and height. Falls back to 80x24 when the
// size cannot be determined.
func (t *TTY) Size() (width, height int) {
	if t.fd < 0 {
		return 80, 24
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		log.ErrorErr(log.CatTerm, "Failed to get terminal size", err)
		return 80, 24
	}
	return w, h
}

// Suspend leaves raw mode so a child process sees a normal terminal.
func (t *TTY) Suspend() error {
	if t.state == nil {
		return nil
	}
	if err := term.Restore(t.fd, t.state); err != nil {
		return fmt.Errorf("leaving raw mode: %w", err)
	}
	return nil
}

// Resume re-enters raw mode after Suspend.
func (t *TTY) Resume() error {
	if t.state == nil {
		return nil
	}
	if _, err := term.MakeRaw(t.fd); err != nil {
		return fmt.Errorf("re-entering raw mode: %w", err)
	}
	return nil
}

// Close shows the cursor and restores the terminal mode saved by Open.
// Safe to call more than once.
func (t *TTY) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	_, writeErr := io.WriteString(t.out, ansi.ShowCursor)
	if t.state != nil {
		if err := term.Restore(t.fd, t.state); err != nil {
			return fmt.Errorf("restoring terminal: %w", err)
		}
		log.Debug(log.CatTerm, "Restored terminal mode", "fd", t.fd)
	}
	return writeErr
}
