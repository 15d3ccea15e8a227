package migration

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"todoapp/internal/logging"
)

type step struct {
	name string
	run  func(*Migration) error
}

var steps = []step{
	{name: "trim_task_titles", run: trimTaskTitles},
}

// Migration is passed to each migration step. DB is set by RunAll.
type Migration struct {
	DB   *gorm.DB
	logs []string
}

func (m *Migration) Log(v ...interface{}) {
	m.logs = append(m.logs, fmt.Sprint(v...))
}

// RunAll runs all registered migrations in order and logs what each step
// recorded. Steps must be safe to repeat; schema is synced via db.SyncSchema.
func RunAll(db *gorm.DB, lg *slog.Logger) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if lg == nil {
		lg = logging.Discard()
	}
	ctx := &Migration{DB: db}
	for _, s := range steps {
		ctx.logs = nil
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("migration %s failed: %w", s.name, err)
		}
		for _, line := range ctx.logs {
			lg.Info("migration step", "step", s.name, "detail", line)
		}
	}
	return nil
}

// trimTaskTitles normalizes titles written before the service trimmed them.
func trimTaskTitles(m *Migration) error {
	res := m.DB.Exec(`UPDATE tasks SET title = TRIM(title, ' ' || char(9) || char(10) || char(13)) WHERE title <> TRIM(title, ' ' || char(9) || char(10) || char(13))`)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		m.Log("trimmed task titles: ", res.RowsAffected)
	}
	return nil
}
