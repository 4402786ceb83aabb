package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// PostgresPostingLog is a durable PostingLog backed by Postgres, for
// deployments that already run one.
type PostgresPostingLog struct {
	db *sql.DB
}

// Compile-time check that PostgresPostingLog implements PostingLog.
var _ PostingLog = (*PostgresPostingLog)(nil)

// NewPostgresPostingLog connects to Postgres with the given DSN and ensures
// the posting log table exists.
func NewPostgresPostingLog(dsn string) (*PostgresPostingLog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open posting log: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping posting log: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS posting_log (
		key TEXT PRIMARY KEY,
		posted_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init posting log schema: %w", err)
	}
	slog.Debug("PostgresPostingLog connected")
	return &PostgresPostingLog{db: db}, nil
}

func (l *PostgresPostingLog) Seen(ctx context.Context, key string) (bool, error) {
	var k string
	err := l.db.QueryRowContext(ctx, `SELECT key FROM posting_log WHERE key = $1`, key).Scan(&k)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("posting log check failed: %w", err)
	}
	return true, nil
}

func (l *PostgresPostingLog) Mark(ctx context.Context, key string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO posting_log (key, posted_at) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
		key, time.Now())
	if err != nil {
		return fmt.Errorf("posting log mark failed: %w", err)
	}
	return nil
}

func (l *PostgresPostingLog) Close() error {
	return l.db.Close()
}
