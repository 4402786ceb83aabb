// Package flow implements the conversation state machine driving multi-step
// data entry: new transactions, new recurring entries and single-field edits.
package flow

import (
	"log/slog"
	"sync"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

// ConversationStore maps a chat id to its active conversation state. A chat
// has at most one active flow; starting a new one discards the old state
// entirely. State lives in memory only: a restart drops all conversations and
// users start their flow again.
type ConversationStore struct {
	mu     sync.RWMutex
	states map[int64]*models.ConversationState
}

// NewConversationStore creates an empty store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{states: make(map[int64]*models.ConversationState)}
}

// Start creates (or overwrites) the state for a chat and positions it at the
// flow's entry step.
func (s *ConversationStore) Start(chatID int64, state *models.ConversationState) {
	state.Step = state.Flow.EntryStep()
	s.mu.Lock()
	s.states[chatID] = state
	s.mu.Unlock()
	slog.Debug("ConversationStore started flow", "chat_id", chatID, "flow", state.Flow, "step", state.Step)
}

// Get returns the active state for a chat, or nil when the chat has none.
// The returned pointer is the live state; the dispatcher serializes events
// per chat, so step handlers may mutate it directly.
func (s *ConversationStore) Get(chatID int64) *models.ConversationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[chatID]
}

// Active reports whether the chat has an active flow.
func (s *ConversationStore) Active(chatID int64) bool {
	return s.Get(chatID) != nil
}

// Clear removes the state for a chat. It is a no-op when none exists.
func (s *ConversationStore) Clear(chatID int64) {
	s.mu.Lock()
	delete(s.states, chatID)
	s.mu.Unlock()
	slog.Debug("ConversationStore cleared", "chat_id", chatID)
}
