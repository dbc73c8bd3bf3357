package keymap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gitStatus() Keymap {
	return Keymap{Key: 's', Description: "Run git status", Command: "git status"}
}

func echo() Keymap {
	return Keymap{Key: 'e', Description: "Echo text", Command: "echo {}", Placeholder: "{}"}
}

func TestKeymap_RequiresInput(t *testing.T) {
	require.False(t, gitStatus().RequiresInput())
	require.True(t, echo().RequiresInput())
}

func TestTable_Find(t *testing.T) {
	table := NewTable(gitStatus(), echo())

	km, ok := table.Find('e')
	require.True(t, ok)
	require.Equal(t, "echo {}", km.Command)

	_, ok = table.Find('x')
	require.False(t, ok)
}

func TestTable_FindFirstMatchWins(t *testing.T) {
	shadowed := Keymap{Key: 's', Description: "Second", Command: "git stash"}
	table := NewTable(gitStatus(), shadowed)

	km, ok := table.Find('s')
	require.True(t, ok)
	require.Equal(t, "git status", km.Command)
}

func TestTable_IsImmutable(t *testing.T) {
	maps := []Keymap{gitStatus()}
	table := NewTable(maps...)
	maps[0].Command = "rm -rf /"

	all := table.All()
	all[0].Command = "changed"

	km, _ := table.Find('s')
	require.Equal(t, "git status", km.Command)
	require.Equal(t, 1, table.Len())
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		maps    []Keymap
		wantErr error
	}{
		{name: "valid", maps: []Keymap{gitStatus(), echo()}},
		{name: "empty table", maps: nil},
		{
			name:    "duplicate key",
			maps:    []Keymap{gitStatus(), {Key: 's', Description: "Stash", Command: "git stash"}},
			wantErr: ErrDuplicateKey,
		},
		{
			name:    "quit key",
			maps:    []Keymap{{Key: 'q', Description: "Quit?", Command: "true"}},
			wantErr: ErrReservedKey,
		},
		{
			name:    "space key",
			maps:    []Keymap{{Key: ' ', Description: "Space", Command: "true"}},
			wantErr: ErrInvalidKey,
		},
		{
			name:    "control key",
			maps:    []Keymap{{Key: '\x01', Description: "Ctrl", Command: "true"}},
			wantErr: ErrInvalidKey,
		},
		{
			name:    "missing command",
			maps:    []Keymap{{Key: 'x', Description: "Nothing", Command: "  "}},
			wantErr: ErrMissingCommand,
		},
		{
			name:    "missing description",
			maps:    []Keymap{{Key: 'x', Command: "true"}},
			wantErr: ErrMissingDescription,
		},
		{
			name:    "placeholder not in command",
			maps:    []Keymap{{Key: 'x', Description: "Echo", Command: "echo", Placeholder: "{}"}},
			wantErr: ErrPlaceholderUnused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTable(tt.maps...).Validate('q')
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTable_ValidateNamesOffendingKeymap(t *testing.T) {
	err := NewTable(gitStatus(), echo(), Keymap{Key: 'e', Description: "Again", Command: "true"}).Validate('q')
	require.Error(t, err)
	require.Contains(t, err.Error(), "keymap 2 (e)")
	require.Contains(t, err.Error(), "already used by keymap 1")
}
