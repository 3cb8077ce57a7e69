// Package state persists run history so operators can inspect past
// generation outcomes.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/moddoc/internal/report"
)

// Store persists run reports.
type Store interface {
	// Append records a finished run.
	Append(ctx context.Context, r *report.RunReport) error
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]*report.RunReport, error)
	// Close releases resources.
	Close() error
}

// SQLiteStore implements Store using SQLite.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (creating if needed) the run history database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		started INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		report BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, r *report.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (run_id, started, outcome, report) VALUES (?, ?, ?, ?)",
		r.RunID, r.Started.Unix(), string(r.Outcome()), payload,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*report.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT report FROM runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []*report.RunReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		var r report.RunReport
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// noopStore drops reports when no state database is configured.
type noopStore struct{}

func (noopStore) Append(context.Context, *report.RunReport) error { return nil }
func (noopStore) Recent(context.Context, int) ([]*report.RunReport, error) {
	return nil, nil
}
func (noopStore) Close() error { return nil }

// Open returns the configured store; an empty path yields a no-op store.
func Open(dbPath string) (Store, error) {
	if dbPath == "" {
		return noopStore{}, nil
	}
	return NewSQLiteStore(dbPath)
}

// Timestamp formats run times consistently for CLI output.
func Timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
