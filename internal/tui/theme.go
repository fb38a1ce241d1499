package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette for the relbump theme. Light values are used on light terminals.
var (
	relbumpBluePrimary = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	relbumpBlueBright  = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#93c5fd"}
	relbumpBlueAccent  = lipgloss.AdaptiveColor{Light: "#1e40af", Dark: "#bfdbfe"}

	relbumpTextStrong = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	relbumpTextNormal = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#e5e7eb"}
	relbumpTextMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	relbumpTextFaint  = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}

	relbumpBorderFocused = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	relbumpBorderNormal  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}

	relbumpButtonBg          = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#3b82f6"}
	relbumpButtonBgBlurred   = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	relbumpButtonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}
	relbumpButtonTextBlurred = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
)

// currentName is the resolved theme selected by SetTheme. Empty means
// nothing was configured yet.
var (
	currentName  string
	currentTheme *huh.Theme
)

// SetTheme selects the prompt theme from the config "theme" value.
// Unknown or empty names fall back to DefaultTheme.
func SetTheme(name string) {
	currentName = ResolveTheme(name)
	currentTheme = buildTheme(currentName)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return relbumpTheme()
	}
	return currentTheme
}

func resetTheme() {
	currentName = ""
	currentTheme = nil
}

// relbumpTheme builds the default prompt theme on top of huh.ThemeBase.
func relbumpTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(relbumpBorderFocused).
		PaddingLeft(1)
	t.Focused.Title = t.Focused.Title.Foreground(relbumpBluePrimary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(relbumpBluePrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(relbumpTextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(lipgloss.Color("1"))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("1"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(relbumpBlueBright)
	t.Focused.Option = t.Focused.Option.Foreground(relbumpTextNormal)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(relbumpBlueAccent)

	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(relbumpButtonText).
		Background(relbumpButtonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(relbumpButtonTextBlurred).
		Background(relbumpButtonBgBlurred).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(relbumpBorderNormal)
	t.Blurred.Title = t.Blurred.Title.Foreground(relbumpTextStrong)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(relbumpTextMuted)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(relbumpTextFaint)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(relbumpTextFaint)
	t.Help.FullKey = t.Help.FullKey.Foreground(relbumpTextMuted)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(relbumpTextFaint)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(relbumpTextFaint)

	return t
}
