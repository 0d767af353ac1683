// Package theme defines the color palettes the UI can switch between.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette.
type Theme struct {
	Name      string
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Error     lipgloss.Color
	Highlight lipgloss.Color
	Border    lipgloss.Color
}

var builtin = []Theme{
	{Name: "midnight", Accent: "#8AB4F8", Muted: "#7F8491", Text: "#E8EAED", Error: "#F28B82", Highlight: "#30343C", Border: "#5F6368"},
	{Name: "ember", Accent: "#F6AE2D", Muted: "#9A8C7B", Text: "#F4EDE4", Error: "#E63946", Highlight: "#3D2C1E", Border: "#86624A"},
	{Name: "forest", Accent: "#8FD694", Muted: "#7E9C83", Text: "#E6F2E8", Error: "#FF7B72", Highlight: "#1F3326", Border: "#4F7A5A"},
	{Name: "paper", Accent: "#1A73E8", Muted: "#6B6B6B", Text: "#202124", Error: "#C5221F", Highlight: "#E8F0FE", Border: "#BDC1C6"},
}

// DefaultName is the theme used when none is configured.
const DefaultName = "midnight"

// All returns the built-in themes in display order.
func All() []Theme {
	return append([]Theme(nil), builtin...)
}

// Lookup finds a theme by case-insensitive name.
func Lookup(name string) (Theme, bool) {
	for _, t := range builtin {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return Theme{}, false
}

// Resolve returns the named theme or the default one.
func Resolve(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	t, _ := Lookup(DefaultName)
	return t
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	SectionHeader lipgloss.Style
	Helper        lipgloss.Style
	Error         lipgloss.Style
	Label         lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	Indicator     lipgloss.Style
	PopupBox      lipgloss.Style
	ComposerBox   lipgloss.Style
	StatusBar     lipgloss.Style
	Token         lipgloss.Style
}

// NewStyles builds the UI styles for t.
func NewStyles(t Theme) Styles {
	return Styles{
		SectionHeader: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Helper:        lipgloss.NewStyle().Foreground(t.Muted),
		Error:         lipgloss.NewStyle().Foreground(t.Error),
		Label:         lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Selected:      lipgloss.NewStyle().Foreground(t.Accent).Background(t.Highlight),
		Indicator:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		PopupBox:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Accent).Padding(0, 1),
		ComposerBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		StatusBar:     lipgloss.NewStyle().Foreground(t.Muted),
		Token:         lipgloss.NewStyle().Foreground(t.Accent),
	}
}
