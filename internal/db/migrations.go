package db

import (
	"errors"
	"log/slog"

	"todoapp/internal/db/migration"

	"gorm.io/gorm"
)

// SyncSchema creates/updates tables and indexes from models. Table structure changes do not use versioned migrations.
func SyncSchema(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is required")
	}
	if err := db.AutoMigrate(&Task{}); err != nil {
		return err
	}
	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at_id ON tasks(created_at ASC, id ASC);`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// MigrateUp syncs schema then runs the registered data migrations. lg may be nil.
func MigrateUp(db *gorm.DB, lg *slog.Logger) error {
	if err := SyncSchema(db); err != nil {
		return err
	}
	return migration.RunAll(db, lg)
}
