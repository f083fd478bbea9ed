package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded execution of the daily pipeline.
type Run struct {
	ID           int64
	Date         string
	FactText     string
	FactYear     int
	EpisodeID    int
	EpisodeTitle string
	MatchReason  string
	Published    bool
	CreatedAt    time.Time
}

// Store is a local SQLite log of daily pipeline runs. It is operational
// bookkeeping only; the durable artifact lives in the publication target.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS daily_runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	date          TEXT NOT NULL,
	fact_text     TEXT NOT NULL,
	fact_year     INTEGER NOT NULL,
	episode_id    INTEGER NOT NULL,
	episode_title TEXT NOT NULL,
	match_reason  TEXT NOT NULL,
	published     INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_daily_runs_date ON daily_runs(date);
`

// NewStore opens (and initializes) the run log at the given path.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	slog.Debug("run log opened", "path", dbPath)
	return &Store{db: db}, nil
}

// RecordRun appends one run to the log.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_runs (date, fact_text, fact_year, episode_id, episode_title, match_reason, published)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Date, run.FactText, run.FactYear, run.EpisodeID, run.EpisodeTitle, run.MatchReason, run.Published,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, fact_text, fact_year, episode_id, episode_title, match_reason, published, created_at
		FROM daily_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Date, &run.FactText, &run.FactYear,
			&run.EpisodeID, &run.EpisodeTitle, &run.MatchReason, &run.Published, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
