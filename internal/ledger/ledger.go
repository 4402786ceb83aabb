// Package ledger defines the persistence contract for transactions, recurring
// entries and budgets, plus its Google Sheets implementation.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

// Ledger is the storage abstraction the bot writes transactions through.
// Row arguments are 1-based sheet rows as reported by Entries/Recurring; they
// shift when rows above them are deleted, so callers must re-list before
// acting on a handle that may be stale.
type Ledger interface {
	// ListCategories returns the configured category names for the given kind,
	// in sheet order.
	ListCategories(ctx context.Context, kind models.EntryKind) ([]string, error)

	// ListAccounts returns the configured account names in sheet order.
	ListAccounts(ctx context.Context) ([]string, error)

	// Append persists a completed transaction draft and returns the stored
	// entry. The draft's ID is written alongside the row so retried appends
	// can be reconciled downstream.
	Append(ctx context.Context, draft models.TransactionDraft) (models.LedgerEntry, error)

	// AddRecurring persists a completed recurring entry draft.
	AddRecurring(ctx context.Context, draft models.RecurringEntryDraft) error

	// UpdateCell overwrites one cell of the entries sheet.
	UpdateCell(ctx context.Context, row int, column string, value string) error

	// Entries returns all persisted transactions, oldest first.
	Entries(ctx context.Context) ([]models.LedgerEntry, error)

	// Recurring returns all persisted recurring entries.
	Recurring(ctx context.Context) ([]models.RecurringEntry, error)

	// DeleteRow removes one row from the entries sheet.
	DeleteRow(ctx context.Context, row int) error

	// DeleteRecurringRow removes one row from the recurring sheet.
	DeleteRecurringRow(ctx context.Context, row int) error

	// Budgets returns the per-category monthly limits.
	Budgets(ctx context.Context) (models.Budgets, error)
}

// PersistenceError wraps a backend failure. Flow handlers branch on it to
// keep the conversation in its pre-commit step so the user can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
