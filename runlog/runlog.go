// Package runlog records batch processing events in SQLite so that
// failure detail survives the run without cluttering the console.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/registolab/registo/dbopen"
)

const schema = `
CREATE TABLE IF NOT EXISTS processing_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT NOT NULL,
	path       TEXT NOT NULL,
	detail     TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processing_events_created ON processing_events(created_at);`

// Event is one recorded processing event.
type Event struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Detail    string `json:"detail"`
	OK        bool   `json:"ok"`
	CreatedAt int64  `json:"created_at"`
}

// Logger writes processing events and manages retention cleanup.
type Logger struct {
	db *sql.DB
}

// New creates a Logger backed by the given database.
func New(db *sql.DB) *Logger {
	return &Logger{db: db}
}

// Init creates the events table. Idempotent.
func (l *Logger) Init(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("runlog: init: %w", err)
	}
	return nil
}

// Event records one processing event. Non-blocking: errors are logged
// via slog but do not propagate, so a failing run log never stops the
// batch.
func (l *Logger) Event(ctx context.Context, kind, path, detail string, ok bool) {
	_, err := dbopen.Exec(ctx, l.db, `
		INSERT INTO processing_events (kind, path, detail, ok, created_at)
		VALUES (?,?,?,?,?)`,
		kind, path, detail, ok, time.Now().Unix())
	if err != nil {
		slog.Warn("runlog event failed", "error", err, "kind", kind, "path", path)
	}
}

// Recent returns the newest events, most recent first.
func (l *Logger) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, kind, path, detail, ok, created_at
		FROM processing_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: recent: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.Path, &e.Detail, &e.OK, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("runlog: scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runlog: rows: %w", err)
	}
	return out, nil
}

// Cleanup deletes events older than the retention threshold. Zero days
// disables cleanup.
func (l *Logger) Cleanup(ctx context.Context, days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().Unix() - int64(days)*86400
	if _, err := l.db.ExecContext(ctx,
		"DELETE FROM processing_events WHERE created_at < ?", cutoff); err != nil {
		return fmt.Errorf("runlog: cleanup: %w", err)
	}
	return nil
}
