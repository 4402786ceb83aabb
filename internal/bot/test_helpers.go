package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/BTreeMap/PennyPipe/internal/flow"
	"github.com/BTreeMap/PennyPipe/internal/ledger"
	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
)

// fakeTransport records outbound traffic for assertions.
type fakeTransport struct {
	mu     sync.Mutex
	sent   []sentMessage
	acks   []string
	nextID int
}

type sentMessage struct {
	ChatID int64
	Text   string
	Opts   *messaging.Options
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

// fakeLedger is an in-memory Ledger for router tests.
type fakeLedger struct {
	entries    []models.LedgerEntry
	recurring  []models.RecurringEntry
	appended   []models.TransactionDraft
	updates    []struct {
		Row    int
		Column string
		Value  string
	}
	deleted    []int
	recDeleted []int
	failRead   bool
}

func (l *fakeLedger) ListCategories(ctx context.Context, kind models.EntryKind) ([]string, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list categories", Err: errors.New("down")}
	}
	if kind == models.KindIncome {
		return []string{"Salary"}, nil
	}
	return []string{"Food", "Housing"}, nil
}

func (l *fakeLedger) ListAccounts(ctx context.Context) ([]string, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list accounts", Err: errors.New("down")}
	}
	return []string{"Cash", "Bank"}, nil
}

func (l *fakeLedger) Append(ctx context.Context, draft models.TransactionDraft) (models.LedgerEntry, error) {
	l.appended = append(l.appended, draft)
	return models.LedgerEntry{
		Description: draft.Description,
		Category:    draft.Category,
		Amount:      draft.Amount,
		Kind:        draft.Kind,
		Account:     draft.Account,
		ID:          draft.ID,
	}, nil
}

func (l *fakeLedger) AddRecurring(ctx context.Context, draft models.RecurringEntryDraft) error {
	return nil
}

func (l *fakeLedger) UpdateCell(ctx context.Context, row int, column, value string) error {
	l.updates = append(l.updates, struct {
		Row    int
		Column string
		Value  string
	}{row, column, value})
	return nil
}

func (l *fakeLedger) Entries(ctx context.Context) ([]models.LedgerEntry, error) {
	if l.failRead {
		return nil, &ledger.PersistenceError{Op: "list entries", Err: errors.New("down")}
	}
	return l.entries, nil
}

func (l *fakeLedger) Recurring(ctx context.Context) ([]models.RecurringEntry, error) {
	return l.recurring, nil
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
	return models.Budgets{}, nil
}

// newTestBot wires a bot over fresh fakes.
func newTestBot() (*Bot, *fakeLedger, *fakeTransport) {
	led := &fakeLedger{}
	transport := &fakeTransport{}
	engine := flow.NewEngine(flow.NewConversationStore(), led, transport)
	return New(engine, led, transport), led, transport
}
