package ui

import "github.com/charmbracelet/lipgloss"

// Theme represents the user interface color theme
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DetectTheme returns the detected terminal theme (Dark or Light)
func DetectTheme() Theme {
	if lipgloss.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ApplyTheme sets the active palette from a config/SEAL_THEME value
// ("dark", "light", or "auto"/anything else, which falls back to
// DetectTheme), superseding whatever init() picked by auto-detection.
func ApplyTheme(theme string) {
	switch Theme(theme) {
	case ThemeDark:
		SetDarkTheme()
	case ThemeLight:
		SetLightTheme()
	default:
		if DetectTheme() == ThemeDark {
			SetDarkTheme()
		} else {
			SetLightTheme()
		}
	}
}
