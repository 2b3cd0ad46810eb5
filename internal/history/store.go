// Package history persists completed tally runs to PostgreSQL.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

const pingTimeout = 5 * time.Second

// Schema creates the table the store writes to.
const Schema = `CREATE TABLE IF NOT EXISTS tally_runs (
    run_id       TEXT PRIMARY KEY,
    matchup_id   TEXT NOT NULL DEFAULT '',
    query        TEXT NOT NULL,
    votes_a      INTEGER NOT NULL,
    votes_b      INTEGER NOT NULL,
    ambiguous    INTEGER NOT NULL,
    dominant     TEXT NOT NULL,
    result       JSONB NOT NULL,
    generated_at TIMESTAMPTZ NOT NULL
)`

type db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store records tally runs.
type Store struct {
	db     db
	closer func() error
	logger *slog.Logger
}

// Open connects to Postgres, verifies the connection and ensures the schema exists.
func Open(ctx context.Context, cfg config.HistoryConfig, logger *slog.Logger) (*Store, error) {
	conn, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := conn.ExecContext(ctx, Schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("creating tally_runs table: %w", err)
	}
	s := NewStore(conn, logger)
	s.closer = conn.Close
	return s, nil
}

// NewStore wraps an existing handle.
func NewStore(handle db, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: handle, logger: logger.With("component", "history-store")}
}

// Save inserts res; re-saving the same run ID is a no-op.
func (s *Store) Save(ctx context.Context, res predictions.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tally_runs (run_id, matchup_id, query, votes_a, votes_b, ambiguous, dominant, result, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (run_id) DO NOTHING`,
		res.RunID, res.MatchupID, res.Query,
		res.Tally.VotesA, res.Tally.VotesB, res.Tally.Ambiguous,
		res.Dominant, data, res.GeneratedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving tally run: %w", err)
	}
	s.logger.Debug("tally run saved", "run_id", res.RunID, "dominant", res.Dominant)
	return nil
}

// Get loads one run by ID. It returns false when no such run exists.
func (s *Store) Get(ctx context.Context, runID string) (predictions.Result, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT result FROM tally_runs WHERE run_id = $1`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return predictions.Result{}, false, nil
	}
	if err != nil {
		return predictions.Result{}, false, fmt.Errorf("querying tally run: %w", err)
	}
	var res predictions.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return predictions.Result{}, false, fmt.Errorf("unmarshaling tally run: %w", err)
	}
	return res, true, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]predictions.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT result FROM tally_runs ORDER BY generated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing tally runs: %w", err)
	}
	defer rows.Close()

	out := make([]predictions.Result, 0, limit)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning tally run: %w", err)
		}
		var res predictions.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("unmarshaling tally run: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Close releases the connection pool when the store owns it.
func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
