package flow

import (
	"testing"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

func TestStartSetsEntryStep(t *testing.T) {
	s := NewConversationStore()
	s.Start(1, &models.ConversationState{Flow: models.FlowNewTransaction, Transaction: &models.TransactionDraft{}})
	if got := s.Get(1).Step; got != models.StepAwaitingAmount {
		t.Errorf("transaction entry step = %s", got)
	}
	s.Start(2, &models.ConversationState{Flow: models.FlowNewRecurring, Recurring: &models.RecurringEntryDraft{}})
	if got := s.Get(2).Step; got != models.StepAwaitingDescription {
		t.Errorf("recurring entry step = %s", got)
	}
}

func TestStartOverwritesActiveFlow(t *testing.T) {
	s := NewConversationStore()
	draft := &models.TransactionDraft{Kind: models.KindExpense, Category: "Food"}
	s.Start(7, &models.ConversationState{Flow: models.FlowNewTransaction, Transaction: draft})
	s.Get(7).Step = models.StepAwaitingAccount // simulate mid-flow progress

	s.Start(7, &models.ConversationState{Flow: models.FlowNewRecurring, Recurring: &models.RecurringEntryDraft{}})

	state := s.Get(7)
	if state.Flow != models.FlowNewRecurring {
		t.Fatalf("flow = %s, want recurring", state.Flow)
	}
	if state.Transaction != nil {
		t.Error("old transaction draft should be discarded")
	}
	if state.Step != models.StepAwaitingDescription {
		t.Errorf("step = %s, want recurring entry step", state.Step)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewConversationStore()
	s.Clear(99) // no-op when absent
	s.Start(99, &models.ConversationState{Flow: models.FlowEditField, Edit: &models.EditFieldRequest{}})
	s.Clear(99)
	s.Clear(99)
	if s.Active(99) {
		t.Error("state should be gone after Clear")
	}
}
