package launcher

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/launchpad/internal/lineedit"
	"github.com/zjrosen/launchpad/internal/runner"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

const (
	menuTitle = "Please select a command:"
	crlf      = "\r\n"
)

// renderMenu builds the full-screen menu: clear, home, hide cursor, title,
// one "<key>  <description>" line per keymap and the quit footer.
func (l *Launcher) renderMenu() string {
	var b strings.Builder
	b.WriteString(ansi.EraseEntireScreen)
	b.WriteString(ansi.CUP(1, 1))
	b.WriteString(ansi.HideCursor)
	b.WriteString(styles.TitleStyle().Render(menuTitle))
	b.WriteString(crlf)

	for _, k := range l.cfg.Keymaps.All() {
		desc := k.Description
		if l.cfg.Width > 0 {
			// key + two spaces
			desc = styles.TruncateString(desc, l.cfg.Width-3)
		}
		b.WriteString(styles.KeyStyle().Render(string(k.Key)))
		b.WriteString("  ")
		b.WriteString(styles.DescriptionStyle().Render(desc))
		b.WriteString(crlf)
	}

	b.WriteString(crlf)
	b.WriteString(styles.MutedStyle().Render(fmt.Sprintf("Press %c to quit.", l.cfg.QuitKey)))
	b.WriteString(crlf)
	return b.String()
}

func renderPrompt(prompt string) string {
	return crlf + ansi.ShowCursor + styles.PromptStyle().Render(prompt) + crlf
}

func renderCommand(command string) string {
	return crlf + styles.MutedStyle().Render("$ "+command) + crlf
}

func renderHint(quit rune) string {
	hint := fmt.Sprintf("Press a key to run another command, %c to quit.", quit)
	return ansi.HideCursor + styles.MutedStyle().Render(hint) + crlf
}

// renderResult frames a result line with line terminators.
func renderResult(line string) string {
	return crlf + line + crlf
}

func renderCancelled() string {
	return renderResult(styles.WarningStyle().Render("Cancelled"))
}

func renderOutcome(o runner.Outcome) string {
	switch o.Kind {
	case runner.Success:
		return renderResult(styles.SuccessStyle().Render("Command succeeded"))
	case runner.NonZeroExit:
		return renderResult(styles.ErrorStyle().Render(fmt.Sprintf("Command failed (exit status %d)", o.ExitCode)))
	default:
		return renderResult(styles.ErrorStyle().Render(fmt.Sprintf("Failed to run command: %v", o.Err)))
	}
}

func renderInvalidInput(err error) string {
	return renderResult(styles.ErrorStyle().Render("Invalid input: " + describeInputError(err)))
}

func renderTerminalError(err error) string {
	return renderResult(styles.ErrorStyle().Render(fmt.Sprintf("Terminal error: %v", err)))
}

// describeInputError turns a validation error into a user-facing sentence.
func describeInputError(err error) string {
	var nsb *lineedit.NotSingleByteError
	switch {
	case errors.Is(err, lineedit.ErrEmptyInput):
		return "Input was empty"
	case errors.As(err, &nsb):
		return fmt.Sprintf("Character %q is not supported (ASCII only)", nsb.Rune)
	default:
		msg := err.Error()
		if msg == "" {
			return msg
		}
		r, size := utf8.DecodeRuneInString(msg)
		return string(unicode.ToUpper(r)) + msg[size:]
	}
}
