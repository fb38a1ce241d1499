package tui

// Test hooks for the external tui_test package.
var (
	ConfirmForm = confirmForm
	ResetTheme  = resetTheme
)

func CurrentThemeName() string { return currentName }
