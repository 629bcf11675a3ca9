package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Dark        bool
	Title       lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Card        lipgloss.Style
	Badge       lipgloss.Style
	Heading     lipgloss.Style
	Body        lipgloss.Style
	Disabled    lipgloss.Style
	Inspector   lipgloss.Style
	StatusError lipgloss.Style
	Playing     lipgloss.Style
	Paused      lipgloss.Style

	// default accent when an item carries no color of its own
	accent string
}

// NewStyles creates the palette for the given theme
func NewStyles(dark bool) *Styles {
	fg, muted, border, accent := "235", "244", "250", "#16a34a"
	if dark {
		fg, muted, border, accent = "252", "241", "238", "#4ade80"
	}

	return &Styles{
		Dark: dark,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Bold(true).Underline(true).Padding(0, 1),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(1, 3).
			Width(56),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg)),
		Body:        lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color(border)),
		Inspector:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Playing:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Paused:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		accent:      accent,
	}
}

// AccentColor returns color, or the theme default when it is empty
func (s *Styles) AccentColor(color string) string {
	if color == "" {
		return s.accent
	}
	return color
}

// Accent returns a bold style in the item's accent color
func (s *Styles) Accent(color string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.AccentColor(color)))
}

// Surface applies an item's background, if it has one
func (s *Styles) Surface(style lipgloss.Style, bg string) lipgloss.Style {
	if bg == "" {
		return style
	}
	return style.Background(lipgloss.Color(bg))
}
