package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"task-reminder-bot/internal/task/repository"
)

type implRepository struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

var _ repository.Repository = (*implRepository)(nil)

// New opens or creates the task database at dbPath. Stored timestamps are read back in loc.
func New(dbPath string, loc *time.Location) (*implRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	if loc == nil {
		loc = time.Local
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// single connection: writes from the webhook and the reminder loop are serialized
	db.SetMaxOpenConns(1)

	r := &implRepository{db: db, loc: loc, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

// Ping checks that the database is reachable.
func (r *implRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the database handle.
func (r *implRepository) Close() error {
	return r.db.Close()
}

func (r *implRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		chat_id           INTEGER NOT NULL,
		title             TEXT NOT NULL,
		deadline          TEXT,
		deadline_unix     INTEGER,
		reminder          TEXT,
		reminder_unix     INTEGER,
		reminder_sent     INTEGER NOT NULL DEFAULT 0,
		done              INTEGER NOT NULL DEFAULT 0,
		calendar_event_id TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_chat ON tasks(chat_id, done);
	CREATE INDEX IF NOT EXISTS idx_tasks_reminder ON tasks(reminder_sent, done, reminder_unix);
	`
	_, err := r.db.Exec(schema)
	return err
}
