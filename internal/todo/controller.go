package todo

import (
	"context"
	"strings"
	"sync"
)

// Confirmer answers a yes/no question synchronously.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

const DeletePrompt = "Are you sure you want to delete this task?"

// Controller runs transitions one at a time: Begin, the effect, then the
// result action, all through Reduce.
type Controller struct {
	mu      sync.Mutex
	state   State
	api     API
	confirm Confirmer
}

func NewController(api API, confirm Confirmer) *Controller {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &Controller{state: NewState(), api: api, confirm: confirm}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, a)
	return c.state
}

func (c *Controller) run(effect func() Action) State {
	c.Dispatch(Begin{})
	return c.Dispatch(effect())
}

func (c *Controller) Load(ctx context.Context) State {
	return c.run(func() Action { return LoadTasks(ctx, c.api) })
}

func (c *Controller) SetDraft(title string) State {
	return c.Dispatch(SetDraft{Title: title})
}

// Add submits the draft. A blank draft sends nothing.
func (c *Controller) Add(ctx context.Context) State {
	draft := c.State().Draft
	if strings.TrimSpace(draft) == "" {
		return c.State()
	}
	return c.run(func() Action { return AddTask(ctx, c.api, draft) })
}

// Delete asks for confirmation first; a declined prompt sends nothing.
func (c *Controller) Delete(ctx context.Context, id string) State {
	if !c.confirm.Confirm(DeletePrompt) {
		return c.State()
	}
	return c.run(func() Action { return DeleteTask(ctx, c.api, id) })
}

// StartEdit reports false when id is not in the local list.
func (c *Controller) StartEdit(id string) bool {
	task, ok := c.State().Find(id)
	if !ok {
		return false
	}
	c.Dispatch(StartEdit{Task: task})
	return true
}

func (c *Controller) CancelEdit() State {
	return c.Dispatch(CancelEdit{})
}

func (c *Controller) SetEditTitle(title string) State {
	return c.Dispatch(SetEditTitle{Title: title})
}

// SaveEdit sends the edited title. Nothing is sent without an edit in
// progress or with a blank title.
func (c *Controller) SaveEdit(ctx context.Context) State {
	st := c.State()
	if st.EditID == "" || strings.TrimSpace(st.EditTitle) == "" {
		return st
	}
	return c.run(func() Action { return SaveTitle(ctx, c.api, st.EditID, st.EditTitle) })
}

func (c *Controller) Toggle(ctx context.Context, id string) State {
	task, ok := c.State().Find(id)
	if !ok {
		return c.State()
	}
	return c.run(func() Action { return ToggleTask(ctx, c.api, task) })
}

// ClearCompleted does nothing when no task is completed.
func (c *Controller) ClearCompleted(ctx context.Context) State {
	st := c.State()
	if StatsOf(st).Completed == 0 {
		return st
	}
	return c.run(func() Action { return ClearCompleted(ctx, c.api, st.Tasks) })
}

func (c *Controller) SetFilter(f Filter) State {
	return c.Dispatch(SetFilter{Filter: f})
}
