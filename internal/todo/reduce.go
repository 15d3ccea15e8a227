package todo

import (
	"errors"

	"todoapp/internal/apiclient"
)

// Reduce returns the state after applying a. The input state, including its
// Tasks slice, is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetFilter:
		if a.Filter.valid() {
			s.Filter = a.Filter
		}
	case SetDraft:
		s.Draft = a.Title
	case StartEdit:
		s.EditID = a.Task.ID
		s.EditTitle = a.Task.Title
	case CancelEdit:
		s.EditID = ""
		s.EditTitle = ""
	case SetEditTitle:
		s.EditTitle = a.Title
	case DismissError:
		s.Error = ""
	case Begin:
		s.Loading = true

	case Loaded:
		s.Loading = false
		if a.Err != nil {
			s.Tasks = []Task{}
			s.Error = MsgLoadFailed
			if errors.Is(a.Err, apiclient.ErrNotArray) {
				s.Error = MsgNotArray
			}
			return s
		}
		s.Tasks = cloneTasks(a.Tasks)
		s.Error = ""
	case Added:
		s.Loading = false
		if a.Err != nil {
			s.Error = MsgAddFailed
			return s
		}
		tasks := make([]Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, s.Tasks...)
		s.Tasks = append(tasks, a.Task)
		s.Draft = ""
		s.Error = ""
	case Deleted:
		s.Loading = false
		if a.Err != nil {
			s.Error = MsgDeleteFailed
			return s
		}
		s.Tasks = removeIDs(s.Tasks, map[string]struct{}{a.ID: {}})
		if s.EditID == a.ID {
			s.EditID = ""
			s.EditTitle = ""
		}
		s.Error = ""
	case Updated:
		s.Loading = false
		if a.Err != nil {
			s.Error = MsgUpdateFailed
			return s
		}
		s.Tasks = replaceTask(s.Tasks, a.Task)
		s.EditID = ""
		s.EditTitle = ""
		s.Error = ""
	case Toggled:
		s.Loading = false
		if a.Err != nil {
			s.Error = MsgUpdateFailed
			return s
		}
		s.Tasks = replaceTask(s.Tasks, a.Task)
		s.Error = ""
	case Cleared:
		s.Loading = false
		if a.Reconciled {
			s.Tasks = cloneTasks(a.Fresh)
		} else {
			removed := make(map[string]struct{}, len(a.Removed))
			for _, id := range a.Removed {
				removed[id] = struct{}{}
			}
			s.Tasks = removeIDs(s.Tasks, removed)
		}
		if _, ok := s.Find(s.EditID); !ok {
			s.EditID = ""
			s.EditTitle = ""
		}
		if a.Err != nil {
			s.Error = MsgClearFailed
		} else {
			s.Error = ""
		}
	}
	return s
}

func (f Filter) valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

func cloneTasks(in []Task) []Task {
	out := make([]Task, len(in))
	copy(out, in)
	return out
}

func replaceTask(in []Task, updated Task) []Task {
	out := make([]Task, len(in))
	for i, t := range in {
		if t.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = t
	}
	return out
}

func removeIDs(in []Task, ids map[string]struct{}) []Task {
	out := make([]Task, 0, len(in))
	for _, t := range in {
		if _, drop := ids[t.ID]; drop {
			continue
		}
		out = append(out, t)
	}
	return out
}
