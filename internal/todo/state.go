// Package todo holds the client-side task list state. Reduce is a pure
// function from (State, Action) to State; effects perform one network call
// each and hand back the action describing its outcome.
package todo

import (
	"fmt"
	"strings"

	"todoapp/internal/apiclient"
)

type Task = apiclient.Task

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, active or completed)", s)
	}
}

func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// User-facing failure messages.
const (
	MsgLoadFailed   = "Failed to load tasks. Backend may not be running or API route is incorrect."
	MsgNotArray     = "API did not return an array."
	MsgAddFailed    = "Failed to add task."
	MsgDeleteFailed = "Failed to delete task."
	MsgUpdateFailed = "Failed to update task."
	MsgClearFailed  = "Failed to clear completed tasks."
)

type State struct {
	Tasks     []Task
	Filter    Filter
	Draft     string
	EditID    string
	EditTitle string
	Error     string
	Loading   bool
}

func NewState() State {
	return State{Tasks: []Task{}, Filter: FilterAll}
}

func (s State) Editing(id string) bool {
	return s.EditID != "" && s.EditID == id
}

func (s State) Find(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Filtered returns the tasks that pass the active filter, in list order.
func Filtered(s State) []Task {
	out := make([]Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if s.Filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

type Stats struct {
	Total     int
	Active    int
	Completed int
}

func StatsOf(s State) Stats {
	st := Stats{Total: len(s.Tasks)}
	for _, t := range s.Tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	return st
}
