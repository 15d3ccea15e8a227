package todo

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"todoapp/internal/apiclient"
)

// API is the slice of the task API the client needs.
type API interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, title string) (Task, error)
	Update(ctx context.Context, id string, patch apiclient.Patch) (Task, error)
	Delete(ctx context.Context, id string) error
}

// maxParallelDeletes bounds clear-completed fan-out.
const maxParallelDeletes = 8

func LoadTasks(ctx context.Context, api API) Action {
	rows, err := api.List(ctx)
	return Loaded{Tasks: rows, Err: err}
}

func AddTask(ctx context.Context, api API, title string) Action {
	task, err := api.Create(ctx, title)
	return Added{Task: task, Err: err}
}

func DeleteTask(ctx context.Context, api API, id string) Action {
	return Deleted{ID: id, Err: api.Delete(ctx, id)}
}

func SaveTitle(ctx context.Context, api API, id, title string) Action {
	task, err := api.Update(ctx, id, apiclient.Patch{Title: &title})
	return Updated{Task: task, Err: err}
}

func ToggleTask(ctx context.Context, api API, task Task) Action {
	next := !task.Completed
	updated, err := api.Update(ctx, task.ID, apiclient.Patch{Completed: &next})
	return Toggled{Task: updated, Err: err}
}

// ClearCompleted deletes every completed task in parallel, then fetches the
// list again so local state matches the store even after a partial failure.
func ClearCompleted(ctx context.Context, api API, tasks []Task) Action {
	var (
		mu      sync.Mutex
		removed []string
		g       errgroup.Group
	)
	g.SetLimit(maxParallelDeletes)
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		id := t.ID
		g.Go(func() error {
			err := api.Delete(ctx, id)
			if err != nil && !apiclient.IsNotFound(err) {
				return err
			}
			mu.Lock()
			removed = append(removed, id)
			mu.Unlock()
			return nil
		})
	}
	deleteErr := g.Wait()

	fresh, listErr := api.List(ctx)
	out := Cleared{Removed: removed, Err: deleteErr}
	if listErr == nil {
		out.Fresh = fresh
		out.Reconciled = true
	}
	return out
}
