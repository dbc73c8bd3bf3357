package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zjrosen/launchpad/internal/config"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

var keymapsYAML bool

var keymapsCmd = &cobra.Command{
	Use:   "keymaps",
	Short: "List the configured shortcuts",
	Long: `List the configured shortcuts without entering the launcher.

Shortcuts marked with "input" ask for text before running; the typed text
replaces the placeholder in the command.

Examples:
  # Show the shortcut table
  launchpad keymaps

  # Print the keymaps as YAML, ready to paste into a config file
  launchpad keymaps --yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configErr != nil {
			return configErr
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return listKeymaps(cmd.OutOrStdout(), cfg, keymapsYAML)
	},
}

func init() {
	rootCmd.AddCommand(keymapsCmd)

	keymapsCmd.Flags().BoolVar(&keymapsYAML, "yaml", false, "print keymaps as YAML")
}

// listKeymaps writes the configured keymaps to w, as a table or as YAML.
func listKeymaps(w io.Writer, c config.Config, asYAML bool) error {
	keymaps := c.GetKeymaps()

	if asYAML {
		data, err := config.MarshalKeymaps(keymaps)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	descWidth := 0
	for _, k := range keymaps {
		descWidth = max(descWidth, runewidth.StringWidth(k.Description))
	}

	var b strings.Builder
	for _, k := range keymaps {
		b.WriteString(styles.KeyStyle().Render(k.Key))
		b.WriteString("  ")
		b.WriteString(styles.DescriptionStyle().Render(runewidth.FillRight(k.Description, descWidth)))
		b.WriteString("  ")
		b.WriteString(k.Command)
		if k.Placeholder != "" {
			b.WriteString(styles.MutedStyle().Render("  (input)"))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedStyle().Render(fmt.Sprintf("%s  quit", string(c.QuitRune()))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
