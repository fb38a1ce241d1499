package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ConfirmFn is a function variable so tests can answer prompts without a terminal.
var ConfirmFn = Confirm

// Confirm asks a yes/no question using the current theme.
// Aborting the prompt (Ctrl+C, Esc) counts as "no".
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := confirmForm(title, description, &ok).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// confirmForm builds the release prompt. ok receives the answer.
func confirmForm(title, description string, ok *bool) *huh.Form {
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(ok)

	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault())
}
