package flow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BTreeMap/PennyPipe/internal/ledger"
	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/ui"
)

// User-facing prompts shared across flows.
const (
	msgInvalidAmount  = "❌ Invalid amount. Send a positive number."
	msgUseButtons     = "Please pick one of the buttons above."
	msgPersistFailed  = "⚠️ Couldn't reach the spreadsheet. Nothing was saved — please try again."
	msgLedgerReadFail = "⚠️ Couldn't read the spreadsheet. Please try again."
)

// Engine advances per-chat conversations one inbound event at a time. Every
// valid event mutates the chat's state exactly once and emits the next
// prompt; invalid input re-prompts and leaves state untouched. Callers must
// serialize events per chat (the bot dispatcher does).
type Engine struct {
	states    *ConversationStore
	ledger    ledger.Ledger
	transport messaging.ChatTransport
}

// NewEngine creates a flow engine with its collaborators injected.
func NewEngine(states *ConversationStore, led ledger.Ledger, transport messaging.ChatTransport) *Engine {
	return &Engine{states: states, ledger: led, transport: transport}
}

// States exposes the conversation store for routing decisions.
func (e *Engine) States() *ConversationStore {
	return e.states
}

// Active reports whether the chat has a flow in progress.
func (e *Engine) Active(chatID int64) bool {
	return e.states.Active(chatID)
}

// input is one inbound event normalized for step handlers. Exactly one of
// text or callback is meaningful.
type input struct {
	text     string
	callback *models.Callback
	msg      messaging.MessageRef
}

func (in input) isButton() bool {
	return in.callback != nil
}

// StartTransaction begins a NewTransaction flow for the chat, discarding any
// flow already in progress. The draft carries a client-generated id from the
// start so a commit retried after an ambiguous failure is dedupable.
func (e *Engine) StartTransaction(ctx context.Context, chatID int64, kind models.EntryKind) error {
	draft := &models.TransactionDraft{ID: uuid.NewString(), Kind: kind}
	e.states.Start(chatID, &models.ConversationState{
		Flow:        models.FlowNewTransaction,
		Transaction: draft,
	})
	prompt := "💸 How much was the expense?"
	if kind == models.KindIncome {
		prompt = "💰 How much did you receive?"
	}
	return e.send(ctx, chatID, prompt)
}

// StartRecurring begins a NewRecurringEntry flow. Description comes first
// here, unlike the transaction flow; the two orderings are intentional.
func (e *Engine) StartRecurring(ctx context.Context, chatID int64) error {
	draft := &models.RecurringEntryDraft{}
	draft.ID = uuid.NewString()
	e.states.Start(chatID, &models.ConversationState{
		Flow:      models.FlowNewRecurring,
		Recurring: draft,
	})
	return e.send(ctx, chatID, "📅 Let's set up a recurring entry. What is it for?")
}

// StartEdit begins a single-step EditField flow for one cell of a persisted
// entry.
func (e *Engine) StartEdit(ctx context.Context, chatID int64, req models.EditFieldRequest) error {
	e.states.Start(chatID, &models.ConversationState{
		Flow: models.FlowEditField,
		Edit: &req,
	})
	return e.sendMarkdown(ctx, chatID, "✏️ Send the new value for *"+req.FieldName+"*:")
}

// HandleText feeds a plain text message into the chat's active flow.
// It is a no-op when the chat has no active conversation.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) error {
	state := e.states.Get(chatID)
	if state == nil {
		return nil
	}
	return e.dispatch(ctx, chatID, state, input{text: text})
}

// HandleButton feeds a button press into the chat's active flow. The payload
// is decoded here once; step handlers match the resulting callback against
// what their step expects and silently ignore anything else, so buttons left
// over on earlier messages are inert.
func (e *Engine) HandleButton(ctx context.Context, chatID int64, msg messaging.MessageRef, payload string) error {
	state := e.states.Get(chatID)
	if state == nil {
		return nil
	}
	cb := models.ParseCallback(payload)
	return e.dispatch(ctx, chatID, state, input{callback: &cb, msg: msg})
}

func (e *Engine) dispatch(ctx context.Context, chatID int64, state *models.ConversationState, in input) error {
	slog.Debug("Engine dispatch", "chat_id", chatID, "flow", state.Flow, "step", state.Step, "button", in.isButton())
	switch state.Flow {
	case models.FlowNewTransaction:
		return e.handleTransaction(ctx, chatID, state, in)
	case models.FlowNewRecurring:
		return e.handleRecurring(ctx, chatID, state, in)
	case models.FlowEditField:
		return e.handleEdit(ctx, chatID, state, in)
	default:
		slog.Error("Engine dispatch unknown flow", "chat_id", chatID, "flow", state.Flow)
		e.states.Clear(chatID)
		return nil
	}
}

func (e *Engine) send(ctx context.Context, chatID int64, text string) error {
	_, err := e.transport.Send(ctx, chatID, text, nil)
	return err
}

func (e *Engine) sendMarkdown(ctx context.Context, chatID int64, text string) error {
	_, err := e.transport.Send(ctx, chatID, text, &messaging.Options{Markdown: true})
	return err
}

func (e *Engine) sendKeyboard(ctx context.Context, chatID int64, text string, kb messaging.Keyboard) error {
	_, err := e.transport.Send(ctx, chatID, text, &messaging.Options{Keyboard: kb})
	return err
}

// retract strips the inline keyboard from the message whose button was just
// consumed, so it cannot be pressed again for effect. Failures are logged and
// swallowed: the router's stale-payload rule already keeps leftover buttons
// inert, retraction is the visible half of that.
func (e *Engine) retract(ctx context.Context, chatID int64, in input) {
	if !in.isButton() {
		return
	}
	if err := e.transport.EditKeyboard(ctx, chatID, in.msg, messaging.RetractKeyboard); err != nil {
		slog.Warn("Engine keyboard retraction failed", "chat_id", chatID, "message_id", in.msg.MessageID, "error", err)
	}
}

// categoriesKeyboard fetches the category list for the kind and renders it.
func (e *Engine) categoriesKeyboard(ctx context.Context, kind models.EntryKind) (messaging.Keyboard, error) {
	categories, err := e.ledger.ListCategories(ctx, kind)
	if err != nil {
		return nil, err
	}
	return ui.ChoiceKeyboard(categories), nil
}

func (e *Engine) accountsKeyboard(ctx context.Context) (messaging.Keyboard, error) {
	accounts, err := e.ledger.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return ui.ChoiceKeyboard(accounts), nil
}
