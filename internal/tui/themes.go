package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when the config leaves theme empty or names one
// that does not exist.
const DefaultTheme = "relbump"

// promptThemes maps the values accepted by the config "theme" key to the
// huh theme the confirmation prompt is drawn with.
var promptThemes = []struct {
	name  string
	build func() *huh.Theme
}{
	{DefaultTheme, relbumpTheme},
	{"base", huh.ThemeBase},
	{"base16", huh.ThemeBase16},
	{"catppuccin", huh.ThemeCatppuccin},
	{"charm", huh.ThemeCharm},
	{"dracula", huh.ThemeDracula},
}

// ValidThemes lists the accepted theme names in display order.
var ValidThemes = func() []string {
	names := make([]string, 0, len(promptThemes))
	for _, t := range promptThemes {
		names = append(names, t.name)
	}
	return names
}()

// IsValidTheme reports whether name is an accepted theme. Names are case
// sensitive.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// ResolveTheme returns the theme the prompt will use for a configured name.
func ResolveTheme(name string) string {
	if IsValidTheme(name) {
		return name
	}
	return DefaultTheme
}

func buildTheme(name string) *huh.Theme {
	for _, t := range promptThemes {
		if t.name == name {
			return t.build()
		}
	}
	return relbumpTheme()
}
