// Package store provides the PostingLog used to deduplicate automatic
// recurring-entry postings, with in-memory, SQLite and Postgres backends.
package store

import (
	"context"
	"sync"
)

// PostingLog records which recurring postings already happened so a rerun of
// the daily job (restart, crash recovery, overlapping schedule) cannot post
// the same entry twice for the same day. Keys are caller-defined strings
// combining the posting date with the entry's identity.
type PostingLog interface {
	// Seen reports whether the key was already marked.
	Seen(ctx context.Context, key string) (bool, error)

	// Mark records the key. Marking an already-marked key is a no-op.
	Mark(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// InMemoryPostingLog keeps markings in a process-local set. Used in tests and
// as the fallback when no durable driver is configured; a restart forgets the
// log, so a same-day restart may repost.
type InMemoryPostingLog struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// Compile-time check that InMemoryPostingLog implements PostingLog.
var _ PostingLog = (*InMemoryPostingLog)(nil)

// NewInMemoryPostingLog creates an empty in-memory log.
func NewInMemoryPostingLog() *InMemoryPostingLog {
	return &InMemoryPostingLog{seen: make(map[string]struct{})}
}

func (l *InMemoryPostingLog) Seen(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[key]
	return ok, nil
}

func (l *InMemoryPostingLog) Mark(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[key] = struct{}{}
	return nil
}

func (l *InMemoryPostingLog) Close() error {
	return nil
}
