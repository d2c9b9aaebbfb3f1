// Package ui provides the visual styling for the umami storefront TUI.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette. Warm tones to match the storefront.
var (
	// Light mode colors (default)
	LightForeground = lipgloss.Color("#2d1b12")
	LightPrimary    = lipgloss.Color("#c2410c") // burnt orange
	LightAccent     = lipgloss.Color("#16a34a") // green
	LightMuted      = lipgloss.Color("#8a8178")
	LightBorder     = lipgloss.Color("#d6cec7")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#f5efe9")
	DarkPrimary    = lipgloss.Color("#fb923c")
	DarkAccent     = lipgloss.Color("#4ade80")
	DarkMuted      = lipgloss.Color("#7d756c")
	DarkBorder     = lipgloss.Color("#4a423b")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode when the environment asks for it.
func DetectTheme() Theme {
	if os.Getenv("UMAMI_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	Header   lipgloss.Style
	Title    lipgloss.Style
	Bold     lipgloss.Style
	Price    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	BadgeNew lipgloss.Style
	BadgeOut lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Panel    lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Bold:     lipgloss.NewStyle().Bold(true),
		Price:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Reverse(true),
		BadgeNew: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		BadgeOut: lipgloss.NewStyle().Bold(true).Foreground(Warning),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
		Help: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// DefaultStyles builds styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
