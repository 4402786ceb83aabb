package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/BTreeMap/PennyPipe/internal/ledger"
	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
)

// fakeTransport records outbound traffic for assertions.
type fakeTransport struct {
	mu     sync.Mutex
	sent   []sentMessage
	edits  []keyboardEdit
	acks   []string
	nextID int
}

type sentMessage struct {
	ChatID int64
	Text   string
	Opts   *messaging.Options
}

type keyboardEdit struct {
	ChatID   int64
	Ref      messaging.MessageRef
	Keyboard messaging.Keyboard
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{}
}

func (t *fakeTransport) Send(ctx context.Context, chatID int64, text string, opts *messaging.Options) (messaging.MessageRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.sent = append(t.sent, sentMessage{ChatID: chatID, Text: text, Opts: opts})
	return messaging.MessageRef{MessageID: t.nextID}, nil
}

func (t *fakeTransport) EditText(ctx context.Context, chatID int64, ref messaging.MessageRef, text string, opts *messaging.Options) error {
	return nil
}

func (t *fakeTransport) EditKeyboard(ctx context.Context, chatID int64, ref messaging.MessageRef, kb messaging.Keyboard) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.edits = append(t.edits, keyboardEdit{ChatID: chatID, Ref: ref, Keyboard: kb})
	return nil
}

func (t *fakeTransport) Acknowledge(callbackID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.acks = append(t.acks, callbackID)
}

func (t *fakeTransport) Start(ctx context.Context) error { return nil }
func (t *fakeTransport) Stop()                           {}
func (t *fakeTransport) Events() <-chan messaging.Event  { return nil }

func (t *fakeTransport) sentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

func (t *fakeTransport) lastSent() sentMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.sent) == 0 {
		return sentMessage{}
	}
	return t.sent[len(t.sent)-1]
}

// fakeLedger is an in-memory Ledger with switchable failure modes.
type fakeLedger struct {
	categories map[models.EntryKind][]string
	accounts   []string

	appended    []models.TransactionDraft
	recAppended []models.RecurringEntryDraft
	updates     []cellUpdate

	entries    []models.LedgerEntry
	recEntries []models.RecurringEntry
	budgets    models.Budgets

	deleted    []int
	recDeleted []int

	failAppend    bool
	failRecurring bool
	failUpdate    bool
	failRead      bool
}

type cellUpdate struct {
	Row    int
	Column string
	Value  string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		categories: map[models.EntryKind][]string{
			models.KindExpense: {"Food", "Housing", "Transport"},
			models.KindIncome:  {"Salary", "Other Income"},
		},
		accounts: []string{"Cash", "Bank"},
		budgets:  models.Budgets{},
	}
}

func (l *fakeLedger) ListCategories(ctx context.Context, kind models.EntryKind) ([]string, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list categories", Err: errors.New("backend down")}
	}
	return l.categories[kind], nil
}

func (l *fakeLedger) ListAccounts(ctx context.Context) ([]string, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list accounts", Err: errors.New("backend down")}
	}
	return l.accounts, nil
}

func (l *fakeLedger) Append(ctx context.Context, draft models.TransactionDraft) (models.LedgerEntry, error) {
	if l.failAppend {
		return models.LedgerEntry{}, &ledger.PersistenceError{Op: "append entry", Err: errors.New("backend down")}
	}
	l.appended = append(l.appended, draft)
	return models.LedgerEntry{
		Description: draft.Description,
		Category:    draft.Category,
		Amount:      draft.Amount,
		Kind:        draft.Kind,
		Account:     draft.Account,
		ID:          draft.ID,
		Row:         len(l.appended) + 1,
	}, nil
}

func (l *fakeLedger) AddRecurring(ctx context.Context, draft models.RecurringEntryDraft) error {
	if l.failRecurring {
		return &ledger.PersistenceError{Op: "append recurring", Err: errors.New("backend down")}
	}
	l.recAppended = append(l.recAppended, draft)
	return nil
}

func (l *fakeLedger) UpdateCell(ctx context.Context, row int, column string, value string) error {
	if l.failUpdate {
		return &ledger.PersistenceError{Op: "update cell", Err: errors.New("backend down")}
	}
	l.updates = append(l.updates, cellUpdate{Row: row, Column: column, Value: value})
	return nil
}

func (l *fakeLedger) Entries(ctx context.Context) ([]models.LedgerEntry, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list entries", Err: errors.New("backend down")}
	}
	return l.entries, nil
}

func (l *fakeLedger) Recurring(ctx context.Context) ([]models.RecurringEntry, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list recurring", Err: errors.New("backend down")}
	}
	return l.recEntries, nil
}

func (l *fakeLedger) DeleteRow(ctx context.Context, row int) error {
	l.deleted = append(l.deleted, row)
	return nil
}

func (l *fakeLedger) DeleteRecurringRow(ctx context.Context, row int) error {
	l.recDeleted = append(l.recDeleted, row)
	return nil
}

func (l *fakeLedger) Budgets(ctx context.Context) (models.Budgets, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list budgets", Err: errors.New("backend down")}
	}
	return l.budgets, nil
}

// newTestEngine wires an engine over fresh fakes.
func newTestEngine() (*Engine, *fakeLedger, *fakeTransport) {
	led := newFakeLedger()
	transport := newFakeTransport()
	eng := NewEngine(NewConversationStore(), led, transport)
	return eng, led, transport
}
