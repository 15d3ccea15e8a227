package todo

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"todoapp/internal/apiclient"
)

// fakeAPI is an in-memory task API with error injection.
type fakeAPI struct {
	mu    sync.Mutex
	tasks []Task
	seq   int
	calls map[string]int

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr map[string]error
	// ListErrAfter makes List fail once it has been called this many times.
	ListErrAfter int
}

func newFakeAPI(tasks ...Task) *fakeAPI {
	return &fakeAPI{
		tasks:     append([]Task{}, tasks...),
		calls:     map[string]int{},
		DeleteErr: map[string]error{},
	}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) List(context.Context) ([]Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if f.ListErrAfter > 0 && f.calls["list"] > f.ListErrAfter {
		return nil, fmt.Errorf("list unavailable")
	}
	return append([]Task{}, f.tasks...), nil
}

func (f *fakeAPI) Create(_ context.Context, title string) (Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.CreateErr != nil {
		return Task{}, f.CreateErr
	}
	f.seq++
	t := Task{ID: fmt.Sprintf("t%d", f.seq), Title: title}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeAPI) Update(_ context.Context, id string, patch apiclient.Patch) (Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.UpdateErr != nil {
		return Task{}, f.UpdateErr
	}
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		f.tasks[i] = t
		return t, nil
	}
	return Task{}, &apiclient.Error{Status: http.StatusNotFound, Code: "TASK_NOT_FOUND", Message: "not found"}
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if err := f.DeleteErr[id]; err != nil {
		return err
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &apiclient.Error{Status: http.StatusNotFound, Code: "TASK_NOT_FOUND", Message: "not found"}
}
