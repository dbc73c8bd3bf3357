// Package config provides configuration types and defaults for launchpad.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/launchpad/internal/keymap"
	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/runner"
)

// DefaultPrompt is shown before text entry when a keymap sets no prompt.
const DefaultPrompt = "Enter input:"

// DefaultQuitKey ends the session from the menu.
const DefaultQuitKey = "q"

// KeymapConfig defines a single menu shortcut.
type KeymapConfig struct {
	Key         string `mapstructure:"key" yaml:"key"`
	Description string `mapstructure:"description" yaml:"description"`
	Command     string `mapstructure:"command" yaml:"command"`
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder,omitempty"` // e.g. "{}"; empty runs immediately
	Prompt      string `mapstructure:"prompt" yaml:"prompt,omitempty"`
}

// ThemeConfig holds color overrides. Values are hex colors e.g. "#54A0FF".
type ThemeConfig struct {
	Accent  string `mapstructure:"accent"`
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

// Config holds all configuration options for launchpad.
type Config struct {
	QuitKey string         `mapstructure:"quit_key"`
	Prompt  string         `mapstructure:"prompt"`
	Shell   string         `mapstructure:"shell"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Keymaps []KeymapConfig `mapstructure:"keymaps"`
}

// DefaultKeymaps returns the shortcuts used when none are configured.
func DefaultKeymaps() []KeymapConfig {
	return []KeymapConfig{
		{Key: "s", Description: "Run git status", Command: "git status"},
		{Key: "d", Description: "Show diff summary", Command: "git diff --stat"},
		{
			Key:         "c",
			Description: "Commit staged changes",
			Command:     `git commit -m "{}"`,
			Placeholder: "{}",
			Prompt:      "Enter commit message:",
		},
		{
			Key:         "b",
			Description: "Create and switch to a branch",
			Command:     "git switch -c {}",
			Placeholder: "{}",
			Prompt:      "New branch name:",
		},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		QuitKey: DefaultQuitKey,
		Prompt:  DefaultPrompt,
		Shell:   runner.DefaultShell,
		Keymaps: DefaultKeymaps(),
	}
}

// GetKeymaps returns the configured keymaps, or DefaultKeymaps() if none configured.
func (c Config) GetKeymaps() []KeymapConfig {
	if len(c.Keymaps) > 0 {
		return c.Keymaps
	}
	return DefaultKeymaps()
}

// QuitRune returns the quit key as a rune, falling back to DefaultQuitKey.
func (c Config) QuitRune() rune {
	key := c.QuitKey
	if key == "" {
		key = DefaultQuitKey
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r
}

// PromptText returns the configured default prompt.
func (c Config) PromptText() string {
	if c.Prompt == "" {
		return DefaultPrompt
	}
	return c.Prompt
}

// Table converts the configured keymaps into a dispatch table.
// Call Validate first; keys that are not a single character are skipped.
func (c Config) Table() keymap.Table {
	cfgs := c.GetKeymaps()
	maps := make([]keymap.Keymap, 0, len(cfgs))
	for _, k := range cfgs {
		if utf8.RuneCountInString(k.Key) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(k.Key)
		maps = append(maps, keymap.Keymap{
			Key:         r,
			Description: k.Description,
			Command:     k.Command,
			Placeholder: k.Placeholder,
			Prompt:      k.Prompt,
		})
	}
	return keymap.NewTable(maps...)
}

// ValidateQuitKey checks that the quit key is a single ASCII character.
func ValidateQuitKey(key string) error {
	if key == "" {
		return nil // Will use default
	}
	if len(key) != 1 || key[0] < 0x21 || key[0] > 0x7e {
		return fmt.Errorf("quit_key must be a single printable ASCII character, got %q", key)
	}
	return nil
}

// ValidateKeymaps checks every keymap entry and the table as a whole.
func ValidateKeymaps(cfgs []KeymapConfig, quit rune) error {
	if len(cfgs) == 0 {
		return nil // Will use defaults
	}

	for i, k := range cfgs {
		if utf8.RuneCountInString(k.Key) != 1 {
			return fmt.Errorf("keymap %d: key must be exactly one character, got %q", i, k.Key)
		}
	}

	c := Config{Keymaps: cfgs}
	if err := c.Table().Validate(quit); err != nil {
		return fmt.Errorf("invalid keymaps: %w", err)
	}
	return nil
}

// ValidateTheme checks that theme colors look like hex colors.
func ValidateTheme(theme ThemeConfig) error {
	colors := []struct {
		name, value string
	}{
		{"accent", theme.Accent},
		{"muted", theme.Muted},
		{"error", theme.Error},
		{"success", theme.Success},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if !isHexColor(c.value) {
			return fmt.Errorf("theme.%s must be a hex color like \"#54A0FF\", got %q", c.name, c.value)
		}
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateQuitKey(c.QuitKey); err != nil {
		return err
	}
	if err := ValidateKeymaps(c.Keymaps, c.QuitRune()); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	return nil
}

// MarshalKeymaps renders keymaps as a YAML document with a top-level
// "keymaps" key, ready to paste into a config file.
func MarshalKeymaps(cfgs []KeymapConfig) ([]byte, error) {
	doc := struct {
		Keymaps []KeymapConfig `yaml:"keymaps"`
	}{Keymaps: cfgs}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling keymaps: %w", err)
	}
	return data, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Launchpad Configuration

# Key that exits the menu (Ctrl+C and Ctrl+D always exit)
quit_key: q

# Prompt shown before text entry when a keymap has no prompt of its own
prompt: "Enter input:"

# Shell used to run commands (invoked as <shell> -c "<command>")
shell: /bin/sh

# Theme colors (hex). Leave unset to use the defaults.
# theme:
#   accent: "#54A0FF"
#   muted: "#696969"
#   error: "#FF8787"
#   success: "#73F59F"

# Menu shortcuts. Press the key to run the command.
keymaps:
  - key: s
    description: Run git status
    command: git status

  - key: d
    description: Show diff summary
    command: git diff --stat

  - key: c
    description: Commit staged changes
    command: git commit -m "{}"
    placeholder: "{}"
    prompt: "Enter commit message:"

  - key: b
    description: Create and switch to a branch
    command: git switch -c {}
    placeholder: "{}"
    prompt: "New branch name:"

# Keymap options:
#   key: Single character that triggers the command (required)
#   description: Text shown in the menu (required)
#   command: Shell command line (required)
#   placeholder: Token in command replaced by typed text (optional)
#                When set, the launcher asks for input first.
#   prompt: Prompt shown before text entry (optional)
#
# Typed text is substituted verbatim. Shell metacharacters are not escaped.
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
