// Package view renders the task list state as terminal text.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todoapp/internal/todo"
)

const (
	heading          = "To-Do List"
	inputPlaceholder = "Add new task"
	loadingText      = "Loading..."
	emptyText        = "No tasks."
	clearLabel       = "Clear Completed"
)

// Options tunes a render. Cursor indexes the filtered rows; a negative
// Cursor hides the row marker.
type Options struct {
	Cursor int
	Width  int
	// Input replaces the add line's text (used by the terminal UI to show
	// its live input widget).
	Input string
	// Prompt is a pending question, shown last.
	Prompt string
	Styles *Styles
}

func Render(s todo.State, opts Options) string {
	st := DefaultStyles()
	if opts.Styles != nil {
		st = *opts.Styles
	}

	lines := []string{
		st.Title.Render(heading),
		renderStats(st, todo.StatsOf(s)),
		renderFilters(st, s.Filter),
	}
	if s.Error != "" {
		lines = append(lines, st.Error.Render("! "+s.Error))
	}
	if s.Loading {
		lines = append(lines, st.Loading.Render(loadingText))
	}
	lines = append(lines, renderInput(st, s, opts.Input), "")

	rows := todo.Filtered(s)
	if len(rows) == 0 {
		lines = append(lines, st.EmptyState.Render(emptyText))
	}
	for i, t := range rows {
		lines = append(lines, renderRow(st, s, t, i == opts.Cursor))
	}

	lines = append(lines, "", renderClear(st, todo.StatsOf(s).Completed))
	if opts.Prompt != "" {
		lines = append(lines, st.Prompt.Render(opts.Prompt+" (y/n)"))
	}

	out := strings.Join(lines, "\n")
	if opts.Width > 0 {
		out = lipgloss.NewStyle().MaxWidth(opts.Width).Render(out)
	}
	return out
}

func renderStats(st Styles, stats todo.Stats) string {
	return st.Stats.Render(fmt.Sprintf("Total: %d  Active: %d  Completed: %d",
		stats.Total, stats.Active, stats.Completed))
}

func renderFilters(st Styles, active todo.Filter) string {
	parts := make([]string, 0, len(todo.Filters))
	for i, f := range todo.Filters {
		label := fmt.Sprintf("%d:%s", i+1, f.Label())
		if f == active {
			parts = append(parts, st.FilterOn.Render("["+label+"]"))
			continue
		}
		parts = append(parts, st.Filter.Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

func renderInput(st Styles, s todo.State, input string) string {
	text := input
	if text == "" {
		text = s.Draft
	}
	if text == "" {
		text = st.Hint.Render(inputPlaceholder)
	}
	return st.Input.Render("+ "+text) + "  " + st.Hint.Render("(a) Add")
}

func renderRow(st Styles, s todo.State, t todo.Task, selected bool) string {
	marker := "  "
	if selected {
		marker = st.RowCursor.Render("> ")
	}

	if s.Editing(t.ID) {
		return marker + st.Input.Render("~ "+s.EditTitle) + "  " +
			st.Hint.Render("(enter) Save  (esc) Cancel")
	}

	box, title, toggle := "[ ]", st.Row.Render(t.Title), "Complete"
	if t.Completed {
		box, title, toggle = "[x]", st.RowDone.Render(t.Title), "Mark Active"
	}
	return marker + box + " " + title + "  " +
		st.Hint.Render(fmt.Sprintf("(space) %s  (e) Edit  (d) Delete", toggle))
}

func renderClear(st Styles, completed int) string {
	if completed == 0 {
		return st.ActionOff.Render(clearLabel + " (nothing completed)")
	}
	return st.Action.Render(fmt.Sprintf("(c) %s [%d]", clearLabel, completed))
}
