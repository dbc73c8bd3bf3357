// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"} // Menu title
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"} // Hints, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Keymap descriptions

	// Accent color for trigger keys and prompts
	AccentPrimaryColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Cancellation
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors
)

// TitleStyle renders the menu heading.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
}

// KeyStyle renders a trigger key in the menu.
func KeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(AccentPrimaryColor)
}

// DescriptionStyle renders a keymap description.
func DescriptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TextDescriptionColor)
}

// PromptStyle renders the text-entry prompt.
func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(AccentPrimaryColor)
}

// MutedStyle renders hints and the echoed command line.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TextMutedColor)
}

// SuccessStyle renders successful outcomes.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusSuccessColor)
}

// WarningStyle renders cancellations.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusWarningColor)
}

// ErrorStyle renders failures and invalid input.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
}

// ApplyTheme applies custom theme colors from configuration.
// Empty strings are ignored, keeping the default values.
// Parameters use semantic names matching the color constants:
// - accent: AccentPrimaryColor (keys, prompts)
// - muted: TextMutedColor (hints, echoed commands)
// - errorColor: StatusErrorColor (failures)
// - success: StatusSuccessColor (success lines)
func ApplyTheme(accent, muted, errorColor, success string) {
	if accent != "" {
		AccentPrimaryColor = lipgloss.AdaptiveColor{Light: accent, Dark: accent}
	}
	if muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
	}
	if success != "" {
		StatusSuccessColor = lipgloss.AdaptiveColor{Light: success, Dark: success}
	}
}
