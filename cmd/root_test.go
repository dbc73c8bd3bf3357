package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/config"
)

func TestLauncherConfig_FromDefaults(t *testing.T) {
	lc := launcherConfig(config.Defaults(), 100)

	require.Equal(t, 'q', lc.QuitKey)
	require.Equal(t, config.DefaultPrompt, lc.Prompt)
	require.Equal(t, 100, lc.Width)
	require.Equal(t, len(config.DefaultKeymaps()), lc.Keymaps.Len())

	status, ok := lc.Keymaps.Find('s')
	require.True(t, ok)
	require.Equal(t, "git status", status.Command)
}

func TestLauncherConfig_Custom(t *testing.T) {
	c := config.Config{
		QuitKey: "x",
		Prompt:  "Value:",
		Keymaps: []config.KeymapConfig{
			{Key: "e", Description: "Echo", Command: "echo {}", Placeholder: "{}"},
		},
	}
	require.NoError(t, c.Validate())

	lc := launcherConfig(c, 0)
	require.Equal(t, 'x', lc.QuitKey)
	require.Equal(t, "Value:", lc.Prompt)
	require.Equal(t, 1, lc.Keymaps.Len())

	echo, ok := lc.Keymaps.Find('e')
	require.True(t, ok)
	require.True(t, echo.RequiresInput())
}

func TestListKeymaps_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listKeymaps(&buf, config.Defaults(), false))

	lines := strings.Split(strings.TrimRight(ansi.Strip(buf.String()), "\n"), "\n")
	require.Len(t, lines, len(config.DefaultKeymaps())+1)
	require.True(t, strings.HasPrefix(lines[0], "s  Run git status"))
	require.True(t, strings.HasSuffix(lines[0], "git status"))
	require.Contains(t, lines[2], `git commit -m "{}"`)
	require.Contains(t, lines[2], "(input)")
	require.NotContains(t, lines[0], "(input)")
	require.Equal(t, "q  quit", lines[len(lines)-1])
}

func TestListKeymaps_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listKeymaps(&buf, config.Config{}, true))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "keymaps:\n"))
	require.Contains(t, out, "key: s")
	require.Contains(t, out, "description: Run git status")
	require.Contains(t, out, "command: git status")
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quit_key: x\nprompt: \"Value:\"\n"), 0o644))

	c, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "x", c.QuitKey)
	require.Equal(t, "Value:", c.Prompt)
	require.Equal(t, config.Defaults().Shell, c.Shell)
}

func TestLoadConfig_TabIndentedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "keymaps:\n\t- key: s\n\t  command: git status\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := loadConfig(viper.New(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config "+path)
}

func TestLoadConfig_MissingExplicitPathFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "missing.yaml")

	_, err := loadConfig(viper.New(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config "+path)
	require.NoDirExists(t, filepath.Join(dir, ".launchpad"))
}

func TestLoadConfig_WrongTypeFailsDecoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quit_key: [a, b]\n"), 0o644))

	_, err := loadConfig(viper.New(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding config")
}

func TestKeymapsCmd_ReturnsConfigError(t *testing.T) {
	savedErr := configErr
	t.Cleanup(func() { configErr = savedErr })

	configErr = errors.New("reading config bad.yaml: boom")
	err := keymapsCmd.RunE(keymapsCmd, nil)
	require.ErrorIs(t, err, configErr)
}

func TestRunLauncher_ReturnsConfigError(t *testing.T) {
	savedErr := configErr
	t.Cleanup(func() { configErr = savedErr })
	t.Setenv("LAUNCHPAD_DEBUG", "")
	debugFlag = false

	configErr = errors.New("reading config bad.yaml: boom")
	err := runLauncher(rootCmd, nil)
	require.ErrorIs(t, err, configErr)
}

func TestInitLogging_DisabledByDefault(t *testing.T) {
	t.Setenv("LAUNCHPAD_DEBUG", "")
	debugFlag = false

	cleanup, err := initLogging("launchpad-test")
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestInitLogging_WritesToLogPath(t *testing.T) {
	path := t.TempDir() + "/launchpad.log"
	t.Setenv("LAUNCHPAD_DEBUG", "1")
	t.Setenv("LAUNCHPAD_LOG", path)

	cleanup, err := initLogging("launchpad-test")
	require.NoError(t, err)
	cleanup()

	require.FileExists(t, path)
}

func TestSetVersion(t *testing.T) {
	saved := version
	t.Cleanup(func() { SetVersion(saved) })

	SetVersion("1.2.3")
	require.Equal(t, "1.2.3", rootCmd.Version)
}
