// Package recurring posts due recurring entries into the ledger. The daily
// cron job calls PostDue; the posting log makes the job safe to rerun.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BTreeMap/PennyPipe/internal/ledger"
	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/store"
)

// Poster appends one ledger entry per recurring entry whose day of month
// matches today, at most once per entry per day.
type Poster struct {
	ledger ledger.Ledger
	log    store.PostingLog
	now    func() time.Time
}

// NewPoster creates a poster over the given ledger and posting log.
func NewPoster(led ledger.Ledger, log store.PostingLog) *Poster {
	return &Poster{ledger: led, log: log, now: time.Now}
}

// PostDue posts every recurring entry due today that the posting log has not
// seen yet. Individual failures are logged and skipped so one broken entry
// does not block the rest; the first error is returned for visibility.
func (p *Poster) PostDue(ctx context.Context) error {
	today := p.now()
	entries, err := p.ledger.Recurring(ctx)
	if err != nil {
		return fmt.Errorf("load recurring entries: %w", err)
	}

	var firstErr error
	due := 0
	for _, entry := range entries {
		if entry.DayOfMonth != today.Day() {
			continue
		}
		due++
		key := postingKey(entry, today)
		seen, err := p.log.Seen(ctx, key)
		if err != nil {
			slog.Error("Posting log check failed", "key", key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if seen {
			slog.Debug("Recurring entry already posted today", "key", key)
			continue
		}

		draft := models.TransactionDraft{
			ID:          uuid.NewString(),
			Kind:        entry.Kind,
			Amount:      entry.Amount,
			Category:    entry.Category,
			Account:     entry.Account,
			Description: entry.Description,
		}
		if _, err := p.ledger.Append(ctx, draft); err != nil {
			slog.Error("Recurring posting failed", "description", entry.Description, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := p.log.Mark(ctx, key); err != nil {
			// The entry is posted; a failed mark only risks a duplicate on
			// the next rerun.
			slog.Error("Posting log mark failed", "key", key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		slog.Info("Recurring entry posted", "description", entry.Description, "amount", entry.Amount, "day", entry.DayOfMonth)
	}
	slog.Debug("Recurring posting run finished", "due", due, "date", today.Format("2006-01-02"))
	return firstErr
}

// postingKey identifies one posting of one recurring entry on one day. It is
// built from the entry's content rather than its row number, since rows shift
// when entries above are deleted.
func postingKey(entry models.RecurringEntry, day time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d",
		day.Format("2006-01-02"), entry.Description, entry.Amount.String(), entry.Account, entry.DayOfMonth)
}
