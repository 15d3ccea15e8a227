package todo

// Action is anything Reduce understands.
type Action interface {
	isAction()
}

// Local actions.
type (
	SetFilter    struct{ Filter Filter }
	SetDraft     struct{ Title string }
	StartEdit    struct{ Task Task }
	CancelEdit   struct{}
	SetEditTitle struct{ Title string }
	DismissError struct{}
)

// Begin marks a network call in flight.
type Begin struct{}

// Result actions. Each one clears Loading.
type (
	Loaded struct {
		Tasks []Task
		Err   error
	}
	Added struct {
		Task Task
		Err  error
	}
	Deleted struct {
		ID  string
		Err error
	}
	Updated struct {
		Task Task
		Err  error
	}
	Toggled struct {
		Task Task
		Err  error
	}
	// Cleared reports a clear-completed run. Removed holds ids whose delete
	// succeeded; Fresh is the list fetched afterwards when Reconciled is set.
	Cleared struct {
		Removed    []string
		Fresh      []Task
		Reconciled bool
		Err        error
	}
)

func (SetFilter) isAction()    {}
func (SetDraft) isAction()     {}
func (StartEdit) isAction()    {}
func (CancelEdit) isAction()   {}
func (SetEditTitle) isAction() {}
func (DismissError) isAction() {}
func (Begin) isAction()        {}
func (Loaded) isAction()       {}
func (Added) isAction()        {}
func (Deleted) isAction()      {}
func (Updated) isAction()      {}
func (Toggled) isAction()      {}
func (Cleared) isAction()      {}
