package view

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent      = lipgloss.Color("#8BC34A")
	colorMuted       = lipgloss.Color("#7a8699")
	colorDestructive = lipgloss.Color("#e53935")
	colorInfo        = lipgloss.Color("#2196F3")
)

// Styles holds every style Render uses.
type Styles struct {
	Title      lipgloss.Style
	Stats      lipgloss.Style
	Filter     lipgloss.Style
	FilterOn   lipgloss.Style
	Error      lipgloss.Style
	Loading    lipgloss.Style
	Input      lipgloss.Style
	Row        lipgloss.Style
	RowDone    lipgloss.Style
	RowCursor  lipgloss.Style
	Hint       lipgloss.Style
	Action     lipgloss.Style
	ActionOff  lipgloss.Style
	Prompt     lipgloss.Style
	EmptyState lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Stats:      lipgloss.NewStyle().Foreground(colorMuted),
		Filter:     lipgloss.NewStyle().Foreground(colorMuted),
		FilterOn:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(colorDestructive),
		Loading:    lipgloss.NewStyle().Italic(true).Foreground(colorInfo),
		Input:      lipgloss.NewStyle(),
		Row:        lipgloss.NewStyle(),
		RowDone:    lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted),
		RowCursor:  lipgloss.NewStyle().Bold(true),
		Hint:       lipgloss.NewStyle().Faint(true),
		Action:     lipgloss.NewStyle().Foreground(colorAccent),
		ActionOff:  lipgloss.NewStyle().Faint(true).Foreground(colorMuted),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(colorDestructive),
		EmptyState: lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
	}
}

// PlainStyles renders text with no decoration.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title: s, Stats: s, Filter: s, FilterOn: s, Error: s, Loading: s,
		Input: s, Row: s, RowDone: s, RowCursor: s, Hint: s, Action: s,
		ActionOff: s, Prompt: s, EmptyState: s,
	}
}
