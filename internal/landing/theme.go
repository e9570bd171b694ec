package landing

import "strings"

// Theme is the value of the page's data-theme attribute.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeAttribute is the document attribute carrying the theme.
const ThemeAttribute = "data-theme"

// ParseTheme accepts "dark" (case-insensitive); anything else is light.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool { return t == ThemeDark }

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Dark() {
		return ThemeLight
	}
	return ThemeDark
}
