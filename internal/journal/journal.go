package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"broom/internal/engine"
)

// Store manages the run history database.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded engine run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     engine.Counts
}

// Move is one performed action within a run.
type Move struct {
	RunID       string
	Stage       string
	Rule        string
	Source      string
	Destination string
}

// Open initializes or connects to the journal database and applies
// migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	scanned INTEGER NOT NULL,
	keyword INTEGER NOT NULL,
	extension INTEGER NOT NULL,
	mime INTEGER NOT NULL,
	archived INTEGER NOT NULL,
	errors INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS moves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	stage TEXT NOT NULL,
	rule TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL,
	destination TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_run ON moves(run_id);
`

func (s *Store) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record persists a completed run and its performed moves in one
// transaction. Error actions contribute to the counts but are not stored as
// moves since nothing moved.
func (s *Store) Record(ctx context.Context, summary *engine.Summary) error {
	if summary == nil {
		return errors.New("summary required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, scanned, keyword, extension, mime, archived, errors)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
		summary.Counts.Scanned,
		summary.Counts.Keyword,
		summary.Counts.Extension,
		summary.Counts.Mime,
		summary.Counts.Archived,
		summary.Counts.Errors,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, action := range summary.Actions {
		if action.Stage == engine.StageError || action.Destination == "" {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO moves (run_id, stage, rule, source, destination) VALUES (?, ?, ?, ?, ?)`,
			summary.RunID,
			string(action.Stage),
			action.Rule,
			action.Source,
			action.Destination,
		)
		if err != nil {
			return fmt.Errorf("insert move: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal tx: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, scanned, keyword, extension, mime, archived, errors
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished,
			&run.Counts.Scanned, &run.Counts.Keyword, &run.Counts.Extension,
			&run.Counts.Mime, &run.Counts.Archived, &run.Counts.Errors); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Moves returns the recorded moves for one run in insertion order.
func (s *Store) Moves(ctx context.Context, runID string) ([]Move, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, stage, rule, source, destination FROM moves WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var move Move
		if err := rows.Scan(&move.RunID, &move.Stage, &move.Rule, &move.Source, &move.Destination); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, move)
	}
	return moves, rows.Err()
}
