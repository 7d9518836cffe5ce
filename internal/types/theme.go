package types

import "strings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NormalizeTheme maps anything that is not exactly "dark" to the light theme,
// so a corrupt or stale persisted value can never leave the UI unstyled.
func NormalizeTheme(raw string) Theme {
	if strings.ToLower(strings.TrimSpace(raw)) == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}
