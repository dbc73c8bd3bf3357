package faketerm

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/terminal"
)

func position(t *testing.T, term *Terminal) terminal.Position {
	t.Helper()
	pos, err := term.CursorPosition()
	require.NoError(t, err)
	return pos
}

func TestTerminal_TextAdvancesCursor(t *testing.T) {
	term := New()
	_, err := fmt.Fprint(term, "hello")
	require.NoError(t, err)

	require.Equal(t, terminal.Position{Col: 6, Row: 1}, position(t, term))
	require.Equal(t, "hello", term.Line(1))
}

func TestTerminal_CursorMovementClamps(t *testing.T) {
	term := New()
	_, _ = fmt.Fprint(term, ansi.CUB(1))
	require.Equal(t, 1, position(t, term).Col)

	_, _ = fmt.Fprint(term, ansi.CUF(200))
	require.Equal(t, 80, position(t, term).Col)

	_, _ = fmt.Fprint(term, ansi.CUP(3, 5))
	require.Equal(t, terminal.Position{Col: 3, Row: 5}, position(t, term))
}

func TestTerminal_EraseLineAndNewlines(t *testing.T) {
	term := New()
	_, _ = fmt.Fprint(term, "first\r\nsecond")
	require.Equal(t, "first", term.Line(1))
	require.Equal(t, "second", term.Line(2))

	_, _ = fmt.Fprint(term, ansi.EraseEntireLine)
	require.Equal(t, "", term.Line(2))
	require.Equal(t, "first", term.Line(1))

	_, _ = fmt.Fprint(term, ansi.EraseEntireScreen)
	require.Equal(t, "", term.Line(1))
}

func TestTerminal_WrapsAtWidth(t *testing.T) {
	term := New()
	term.Width = 4
	_, _ = fmt.Fprint(term, "abcdef")

	require.Equal(t, "abcd", term.Line(1))
	require.Equal(t, "ef", term.Line(2))
	require.Equal(t, terminal.Position{Col: 3, Row: 2}, position(t, term))
}

func TestTerminal_CursorVisibility(t *testing.T) {
	term := New()
	_, _ = fmt.Fprint(term, ansi.HideCursor)
	require.False(t, term.CursorVisible())
	_, _ = fmt.Fprint(term, ansi.ShowCursor)
	require.True(t, term.CursorVisible())
}

func TestTerminal_ScriptedKeys(t *testing.T) {
	term := New()
	term.Type("ab", terminal.Key{Type: terminal.KeyEnter})

	for _, want := range []terminal.Key{terminal.RuneKey('a'), terminal.RuneKey('b'), {Type: terminal.KeyEnter}} {
		k, err := term.ReadKey()
		require.NoError(t, err)
		require.Equal(t, want, k)
	}
	_, err := term.ReadKey()
	require.ErrorIs(t, err, io.EOF)
}

func TestTerminal_InjectedFailures(t *testing.T) {
	term := New()
	term.FailWritesAfter = 1
	term.FailQueriesAfter = 0

	_, err := term.Write([]byte("ok"))
	require.NoError(t, err)
	_, err = term.Write([]byte("nope"))
	require.ErrorIs(t, err, ErrInjected)

	_, err = term.CursorPosition()
	require.ErrorIs(t, err, ErrInjected)
	require.Equal(t, 1, term.Queries)
}

func TestTerminal_PlainOutputStripsSequences(t *testing.T) {
	term := New()
	_, _ = fmt.Fprint(term, ansi.HideCursor+"menu"+ansi.ShowCursor)
	require.Equal(t, "menu", term.PlainOutput())
}
