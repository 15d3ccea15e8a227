// Package service maps task operations onto the task store and owns input
// validation and the error taxonomy the HTTP layer reports.
package service

import (
	"context"
	"errors"
	"strings"

	"todoapp/internal/taskstore"
)

type Task = taskstore.Task

type Patch = taskstore.Patch

// Store is the persistence the service needs.
type Store interface {
	List(ctx context.Context) ([]taskstore.Task, error)
	Create(ctx context.Context, title string) (taskstore.Task, error)
	Update(ctx context.Context, id string, patch taskstore.Patch) (taskstore.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService struct {
	store Store
}

func New(store Store) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) List(ctx context.Context) ([]Task, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, NewStoreError("list tasks", err)
	}
	if rows == nil {
		rows = []Task{}
	}
	return rows, nil
}

func (s *TaskService) Create(ctx context.Context, title string) (Task, error) {
	if err := validateTitle(title); err != nil {
		return Task{}, err
	}
	task, err := s.store.Create(ctx, strings.TrimSpace(title))
	if err != nil {
		return Task{}, NewStoreError("create task", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch Patch) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, NewNotFoundError(id)
	}
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return Task{}, err
		}
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	task, err := s.store.Update(ctx, id, patch)
	if errors.Is(err, taskstore.ErrNotFound) {
		return Task{}, NewNotFoundError(id)
	}
	if err != nil {
		return Task{}, NewStoreError("update task", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewNotFoundError(id)
	}
	err := s.store.Delete(ctx, id)
	if errors.Is(err, taskstore.ErrNotFound) {
		return NewNotFoundError(id)
	}
	if err != nil {
		return NewStoreError("delete task", err)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title is required")
	}
	return nil
}
