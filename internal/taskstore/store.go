package taskstore

import (
	"context"
	"errors"
	"time"

	dbmodel "todoapp/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no task carries the requested id.
var ErrNotFound = errors.New("task not found")

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Patch carries the fields of an update; nil means leave unchanged.
type Patch struct {
	Title     *string
	Completed *bool
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Completed == nil
}

type Store struct {
	db     *gorm.DB
	now    func() time.Time
	nextID func() string
}

// NewStore wraps an open, migrated db. Caller owns closing the db.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &Store{db: db, now: time.Now, nextID: uuid.NewString}, nil
}

func (s *Store) List(ctx context.Context) ([]Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows := make([]dbmodel.Task, 0)
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (Task, error) {
	if err := s.ready(); err != nil {
		return Task{}, err
	}
	row, err := findByID(s.db.WithContext(ctx), id)
	if err != nil {
		return Task{}, err
	}
	return fromRow(row), nil
}

func (s *Store) Create(ctx context.Context, title string) (Task, error) {
	if err := s.ready(); err != nil {
		return Task{}, err
	}
	now := s.now().UTC().Unix()
	row := dbmodel.Task{
		ID:        s.nextID(),
		Title:     title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Task{}, err
	}
	return fromRow(row), nil
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) (Task, error) {
	if err := s.ready(); err != nil {
		return Task{}, err
	}
	var out dbmodel.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findByID(tx, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			out = row
			return nil
		}
		assignments := map[string]any{"updated_at": s.now().UTC().Unix()}
		if patch.Title != nil {
			assignments["title"] = *patch.Title
		}
		if patch.Completed != nil {
			assignments["completed"] = *patch.Completed
		}
		if err := tx.Model(&dbmodel.Task{}).Where("id = ?", id).Updates(assignments).Error; err != nil {
			return err
		}
		out, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return Task{}, err
	}
	return fromRow(out), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&dbmodel.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return errors.New("task store is not initialized")
	}
	return nil
}

func findByID(tx *gorm.DB, id string) (dbmodel.Task, error) {
	var row dbmodel.Task
	err := tx.Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return dbmodel.Task{}, err
	}
	if row.ID == "" {
		return dbmodel.Task{}, ErrNotFound
	}
	return row, nil
}

func fromRow(row dbmodel.Task) Task {
	return Task{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
