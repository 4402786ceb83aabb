package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLitePostingLog is a durable PostingLog backed by a local SQLite file.
type SQLitePostingLog struct {
	db *sql.DB
}

// Compile-time check that SQLitePostingLog implements PostingLog.
var _ PostingLog = (*SQLitePostingLog)(nil)

// NewSQLitePostingLog opens (creating if needed) the posting log database at
// the given path.
func NewSQLitePostingLog(path string) (*SQLitePostingLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open posting log: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS posting_log (
		key TEXT PRIMARY KEY,
		posted_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init posting log schema: %w", err)
	}
	slog.Debug("SQLitePostingLog opened", "path", path)
	return &SQLitePostingLog{db: db}, nil
}

func (l *SQLitePostingLog) Seen(ctx context.Context, key string) (bool, error) {
	var k string
	err := l.db.QueryRowContext(ctx, `SELECT key FROM posting_log WHERE key = ?`, key).Scan(&k)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("posting log check failed: %w", err)
	}
	return true, nil
}

func (l *SQLitePostingLog) Mark(ctx context.Context, key string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO posting_log (key, posted_at) VALUES (?, ?)`,
		key, time.Now())
	if err != nil {
		return fmt.Errorf("posting log mark failed: %w", err)
	}
	return nil
}

func (l *SQLitePostingLog) Close() error {
	return l.db.Close()
}
