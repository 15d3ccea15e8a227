// Package tui is the interactive terminal front end for the task list.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoapp/internal/todo"
	"todoapp/internal/view"
)

type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeEditing
	modeConfirming
)

const helpLine = "j/k move  a add  e edit  space toggle  d delete  c clear  1/2/3 filter  r reload  esc dismiss  q quit"

// actionMsg carries the result of an effect back into Update.
type actionMsg struct{ action todo.Action }

// refreshMsg asks for a reload, e.g. after a remote change.
type refreshMsg struct{}

type Options struct {
	Filter        todo.Filter
	ConfirmDelete bool
	Styles        *view.Styles
}

type Model struct {
	ctx    context.Context
	api    todo.API
	opts   Options
	state  todo.State
	mode   mode
	cursor int
	width  int
	input  textinput.Model
	// pendingDelete is the task awaiting a y/n answer.
	pendingDelete string
	// reloadPending is set when a refresh arrived while a request was in
	// flight; the reload runs once that request settles.
	reloadPending bool
}

func New(ctx context.Context, api todo.API, opts Options) Model {
	in := textinput.New()
	in.Placeholder = "Add new task"
	in.CharLimit = 500

	st := todo.NewState()
	st = todo.Reduce(st, todo.SetFilter{Filter: opts.Filter})
	st = todo.Reduce(st, todo.Begin{})
	return Model{ctx: ctx, api: api, opts: opts, state: st, input: in}
}

// State returns the current list state.
func (m Model) State() todo.State { return m.state }

func (m Model) Init() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg { return actionMsg{todo.LoadTasks(ctx, api)} }
}

// effect marks the request in flight and returns the command running it.
func (m Model) effect(fn func(ctx context.Context, api todo.API) todo.Action) (Model, tea.Cmd) {
	m.state = todo.Reduce(m.state, todo.Begin{})
	ctx, api := m.ctx, m.api
	return m, func() tea.Msg { return actionMsg{fn(ctx, api)} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case actionMsg:
		m.state = todo.Reduce(m.state, msg.action)
		if m.mode == modeEditing && m.state.EditID == "" {
			m.mode = modeNormal
			m.input.Blur()
		}
		m.clampCursor()
		if m.reloadPending && !m.state.Loading {
			m.reloadPending = false
			return m.effect(todo.LoadTasks)
		}
		return m, nil
	case refreshMsg:
		if m.state.Loading {
			m.reloadPending = true
			return m, nil
		}
		return m.effect(todo.LoadTasks)
	case tea.KeyMsg:
		switch m.mode {
		case modeAdding:
			return m.updateAdding(msg)
		case modeEditing:
			return m.updateEditing(msg)
		case modeConfirming:
			return m.updateConfirming(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		m.clampCursor()
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "a":
		m.mode = modeAdding
		m.input.SetValue(m.state.Draft)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.state = todo.Reduce(m.state, todo.StartEdit{Task: task})
		m.mode = modeEditing
		m.input.SetValue(task.Title)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case " ", "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.effect(func(ctx context.Context, api todo.API) todo.Action {
			return todo.ToggleTask(ctx, api, task)
		})
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.opts.ConfirmDelete {
			m.mode = modeConfirming
			m.pendingDelete = task.ID
			return m, nil
		}
		return m.deleteTask(task.ID)
	case "c":
		if todo.StatsOf(m.state).Completed == 0 {
			return m, nil
		}
		tasks := m.state.Tasks
		return m.effect(func(ctx context.Context, api todo.API) todo.Action {
			return todo.ClearCompleted(ctx, api, tasks)
		})
	case "1", "2", "3":
		f := todo.Filters[msg.String()[0]-'1']
		m.state = todo.Reduce(m.state, todo.SetFilter{Filter: f})
		m.clampCursor()
	case "r":
		return m.effect(todo.LoadTasks)
	case "esc":
		m.state = todo.Reduce(m.state, todo.DismissError{})
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		draft := m.input.Value()
		m.state = todo.Reduce(m.state, todo.SetDraft{Title: draft})
		m.mode = modeNormal
		m.input.Blur()
		if strings.TrimSpace(draft) == "" {
			return m, nil
		}
		return m.effect(func(ctx context.Context, api todo.API) todo.Action {
			return todo.AddTask(ctx, api, draft)
		})
	case tea.KeyEsc:
		m.state = todo.Reduce(m.state, todo.SetDraft{Title: m.input.Value()})
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = todo.Reduce(m.state, todo.SetDraft{Title: m.input.Value()})
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		id, title := m.state.EditID, m.input.Value()
		if strings.TrimSpace(title) == "" {
			return m, nil
		}
		return m.effect(func(ctx context.Context, api todo.API) todo.Action {
			return todo.SaveTitle(ctx, api, id, title)
		})
	case tea.KeyEsc:
		m.state = todo.Reduce(m.state, todo.CancelEdit{})
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = todo.Reduce(m.state, todo.SetEditTitle{Title: m.input.Value()})
	return m, cmd
}

func (m Model) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	switch msg.String() {
	case "y", "Y":
		m.mode = modeNormal
		m.pendingDelete = ""
		return m.deleteTask(id)
	case "n", "N", "esc", "q":
		m.mode = modeNormal
		m.pendingDelete = ""
	}
	return m, nil
}

func (m Model) deleteTask(id string) (tea.Model, tea.Cmd) {
	return m.effect(func(ctx context.Context, api todo.API) todo.Action {
		return todo.DeleteTask(ctx, api, id)
	})
}

func (m Model) selected() (todo.Task, bool) {
	rows := todo.Filtered(m.state)
	if m.cursor < 0 || m.cursor >= len(rows) {
		return todo.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(todo.Filtered(m.state))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	opts := view.Options{Cursor: m.cursor, Width: m.width, Styles: m.opts.Styles}
	if m.mode == modeAdding {
		opts.Input = m.input.View()
	}
	if m.mode == modeConfirming {
		opts.Prompt = todo.DeletePrompt
	}
	return view.Render(m.state, opts) + "\n\n" + helpLine + "\n"
}
