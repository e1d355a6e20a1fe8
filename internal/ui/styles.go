package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha (dark theme)
var mocha = struct {
	Red, Green, Yellow, Peach, Mauve, Teal, Blue lipgloss.Color
	Text, Subtext, Overlay                       lipgloss.Color
}{
	Red: "#f38ba8", Green: "#a6e3a1", Yellow: "#f9e2af", Peach: "#fab387",
	Mauve: "#cba6f7", Teal: "#94e2d5", Blue: "#89b4fa",
	Text: "#cdd6f4", Subtext: "#bac2de", Overlay: "#7f849c",
}

// Catppuccin Latte (light theme)
var latte = struct {
	Red, Green, Yellow, Peach, Mauve, Teal, Blue lipgloss.Color
	Text, Subtext, Overlay                       lipgloss.Color
}{
	Red: "#d20f39", Green: "#40a02b", Yellow: "#df8e1d", Peach: "#fe640b",
	Mauve: "#8839ef", Teal: "#179299", Blue: "#1e66f5",
	Text: "#4c4f69", Subtext: "#5c5f77", Overlay: "#8c8fa1",
}

// ThemePalette holds the current color scheme.
type ThemePalette struct {
	Red, Green, Yellow, Peach, Mauve, Teal, Blue lipgloss.Color
	Text, Subtext, Overlay                       lipgloss.Color
}

var currentTheme ThemePalette

func init() {
	if DetectTheme() == ThemeDark {
		SetDarkTheme()
	} else {
		SetLightTheme()
	}
}

// SetDarkTheme switches to Catppuccin Mocha.
func SetDarkTheme() {
	currentTheme = ThemePalette(mocha)
	refreshStyles()
}

// SetLightTheme switches to Catppuccin Latte.
func SetLightTheme() {
	currentTheme = ThemePalette(latte)
	refreshStyles()
}

// Semantic styles used by the `jobs` table and shell diagnostics.
var (
	ErrorStyle      lipgloss.Style
	WarningStyle    lipgloss.Style
	SuccessStyle    lipgloss.Style
	MutedStyle      lipgloss.Style
	HeaderStyle     lipgloss.Style
	RunningStyle    lipgloss.Style
	StoppedStyle    lipgloss.Style
	DoneStyle       lipgloss.Style
	PgidStyle       lipgloss.Style
	CommandStyle    lipgloss.Style
)

func refreshStyles() {
	ErrorStyle = lipgloss.NewStyle().Foreground(currentTheme.Red).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(currentTheme.Peach)
	SuccessStyle = lipgloss.NewStyle().Foreground(currentTheme.Green)
	MutedStyle = lipgloss.NewStyle().Foreground(currentTheme.Overlay)
	HeaderStyle = lipgloss.NewStyle().Foreground(currentTheme.Mauve).Bold(true)

	RunningStyle = lipgloss.NewStyle().Foreground(currentTheme.Green)
	StoppedStyle = lipgloss.NewStyle().Foreground(currentTheme.Yellow)
	DoneStyle = lipgloss.NewStyle().Foreground(currentTheme.Subtext)

	PgidStyle = lipgloss.NewStyle().Foreground(currentTheme.Blue)
	CommandStyle = lipgloss.NewStyle().Foreground(currentTheme.Text)
}

// StyleForState returns the style used to render a job state label.
func StyleForState(state string) lipgloss.Style {
	switch state {
	case "Running":
		return RunningStyle
	case "Stopped":
		return StoppedStyle
	case "Done":
		return DoneStyle
	default:
		return CommandStyle
	}
}
