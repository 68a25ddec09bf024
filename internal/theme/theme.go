package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Page         *lipgloss.Style
	Frame        *lipgloss.Style
	FocusedFrame *lipgloss.Style
	Title        *lipgloss.Style
	Body         *lipgloss.Style
	Backdrop     *lipgloss.Style
	StatusHeader *lipgloss.Style
	Status       *lipgloss.Style
	Footer       *lipgloss.Style
	Error        *lipgloss.Style
}

const DefaultName = "default"

var themes = map[string]Styles{
	DefaultName: {
		Page: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		),
		Frame: ptr(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		),
		FocusedFrame: ptr(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
		),
		Title: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		),
		Body: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		),
		Backdrop: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true),
		),
		StatusHeader: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		),
		Status: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
	},
	"contrast": {
		Page: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		),
		Frame: ptr(
			lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
		),
		FocusedFrame: ptr(
			lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("226")).Padding(0, 1),
		),
		Title: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("226")).Bold(true),
		),
		Body: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		),
		Backdrop: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		),
		StatusHeader: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		),
		Status: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Underline(true),
		),
	},
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	s := themes[DefaultName]
	return &s
}

// Named returns the style set registered under name.
func Named(name string) (*Styles, bool) {
	s, ok := themes[name]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Names lists the registered themes in sorted order.
func Names() []string {
	out := make([]string, 0, len(themes))
	for name := range themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve builds the styles for a theme with popup titles taken from the
// header theme. Unknown names fall back to the default set.
func Resolve(name, header string) *Styles {
	s, ok := Named(name)
	if !ok {
		s = Default()
	}
	if h, ok := Named(header); ok {
		s.Title = h.Title
	}
	return s
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
