package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("6")   // Teal
	ColorMuted   = lipgloss.Color("241") // Gray
	ColorSuccess = lipgloss.Color("42")  // Green
	ColorError   = lipgloss.Color("9")   // Red
)

// EditorTheme returns the form theme used by the terminal editor
func EditorTheme() *huh.Theme {
	t := huh.ThemeCharm()

	t.Focused.Title = t.Focused.Title.
		Foreground(ColorPrimary).
		Bold(true)

	t.Focused.SelectedOption = t.Focused.SelectedOption.
		Foreground(ColorSuccess)

	t.Focused.Description = t.Focused.Description.
		Foreground(ColorMuted)

	t.Blurred.Title = t.Blurred.Title.
		Foreground(ColorMuted)

	return t
}

// TitleStyle returns style for section titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
}

// SuccessStyle returns style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorSuccess)
}

// ErrorStyle returns style for validation and save errors
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
}

// MutedStyle returns style for muted/secondary text
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorMuted)
}
