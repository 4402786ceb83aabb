// Package models defines the domain types shared across PennyPipe components.
package models

import (
	"github.com/shopspring/decimal"
)

// EntryKind distinguishes money coming in from money going out.
type EntryKind string

// Entry kind constants. The values are written verbatim into the ledger.
const (
	KindIncome  EntryKind = "Income"
	KindExpense EntryKind = "Expense"
)

// Valid reports whether k is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// TransactionDraft accumulates the fields of a transaction while the user is
// walking through the entry flow. ID is generated at flow start so a commit
// retried after an ambiguous failure carries the same identifier.
type TransactionDraft struct {
	ID          string          `json:"id"`
	Kind        EntryKind       `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	Description string          `json:"description"`
}

// RecurringEntryDraft accumulates the fields of a recurring entry. Unlike
// TransactionDraft the kind is collected mid-flow rather than fixed at start.
type RecurringEntryDraft struct {
	TransactionDraft
	DayOfMonth int `json:"day_of_month"`
}

// EditFieldRequest identifies one mutable cell of a persisted entry. Row is a
// 1-based sheet row and shifts when rows above it are deleted; callers must
// treat it as valid only for the lifetime of the management listing that
// produced it.
type EditFieldRequest struct {
	Row       int    `json:"row"`
	Column    string `json:"column"`
	FieldName string `json:"field_name"`
}

// LedgerEntry is a persisted transaction as read back from the ledger.
type LedgerEntry struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        EntryKind       `json:"kind"`
	Account     string          `json:"account"`
	Note        string          `json:"note"`
	ID          string          `json:"id"`
	Row         int             `json:"row"`
}

// RecurringEntry is a persisted recurring entry.
type RecurringEntry struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        EntryKind       `json:"kind"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	DayOfMonth  int             `json:"day_of_month"`
	Row         int             `json:"row"`
}

// Budgets maps a category name to its monthly spending limit.
type Budgets map[string]decimal.Decimal
