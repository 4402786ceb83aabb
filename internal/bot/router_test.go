package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
)

const testChat int64 = 42

func buttonEvent(payload string, msgID int) messaging.Event {
	return messaging.Event{
		ChatID:     testChat,
		Payload:    payload,
		CallbackID: "cb-1",
		Message:    messaging.MessageRef{MessageID: msgID},
	}
}

func textEvent(text string) messaging.Event {
	return messaging.Event{ChatID: testChat, Text: text}
}

func TestButtonAlwaysAcknowledged(t *testing.T) {
	b, _, tr := newTestBot()
	b.dispatch(context.Background(), buttonEvent("nonsense", 1))
	if len(tr.acks) != 1 || tr.acks[0] != "cb-1" {
		t.Errorf("acks = %v", tr.acks)
	}
}

func TestStartExpenseEntersFlow(t *testing.T) {
	b, _, tr := newTestBot()
	ctx := context.Background()

	b.dispatch(ctx, buttonEvent("start_expense", 1))
	if !b.engine.Active(testChat) {
		t.Fatal("flow should be active")
	}
	if !strings.Contains(tr.lastSent().Text, "How much") {
		t.Errorf("prompt = %q", tr.lastSent().Text)
	}
}

func TestActiveFlowCapturesAllInput(t *testing.T) {
	b, led, tr := newTestBot()
	ctx := context.Background()
	led.entries = []models.LedgerEntry{{Description: "x", Row: 2}}

	b.dispatch(ctx, buttonEvent("start_expense", 1))
	before := tr.sentCount()

	// A leftover menu button mid-flow must reach the flow (which ignores it),
	// not run the summary action.
	b.dispatch(ctx, buttonEvent("show_summary", 2))
	if tr.sentCount() != before {
		t.Errorf("mid-flow menu press should be inert, sent %q", tr.lastSent().Text)
	}

	// Plain text mid-flow feeds the flow, not the quick-entry parser.
	b.dispatch(ctx, textEvent("12.50"))
	if len(led.appended) != 0 {
		t.Error("amount text must not be treated as a quick entry")
	}
	if !strings.Contains(tr.lastSent().Text, "category") {
		t.Errorf("expected category prompt, got %q", tr.lastSent().Text)
	}
}

func TestEditFieldPayloadPrepopulatesFlow(t *testing.T) {
	b, led, _ := newTestBot()
	ctx := context.Background()

	b.dispatch(ctx, buttonEvent("edit_field:12:B:Description", 1))
	if !b.engine.Active(testChat) {
		t.Fatal("edit flow should be active")
	}

	b.dispatch(ctx, textEvent("new description"))
	if len(led.updates) != 1 {
		t.Fatalf("updates = %d", len(led.updates))
	}
	got := led.updates[0]
	if got.Row != 12 || got.Column != "B" || got.Value != "new description" {
		t.Errorf("update = %+v", got)
	}
	if b.engine.Active(testChat) {
		t.Error("edit flow should finish after one text")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	b, led, tr := newTestBot()
	ctx := context.Background()

	b.dispatch(ctx, buttonEvent("delete:7", 1))
	if len(led.deleted) != 0 {
		t.Fatal("delete must wait for confirmation")
	}
	if !strings.Contains(tr.lastSent().Text, "Delete this entry?") {
		t.Errorf("confirm prompt = %q", tr.lastSent().Text)
	}

	b.dispatch(ctx, buttonEvent("confirm_delete:7", 2))
	if len(led.deleted) != 1 || led.deleted[0] != 7 {
		t.Errorf("deleted = %v", led.deleted)
	}
}

func TestMalformedRowIsIgnored(t *testing.T) {
	b, led, tr := newTestBot()
	ctx := context.Background()

	before := tr.sentCount()
	b.dispatch(ctx, buttonEvent("confirm_delete:zero", 1))
	b.dispatch(ctx, buttonEvent("confirm_delete:1", 1)) // header row
	if len(led.deleted) != 0 {
		t.Errorf("deleted = %v", led.deleted)
	}
	if tr.sentCount() != before {
		t.Error("malformed payloads should stay silent")
	}
}

func TestQuickEntryOutsideFlow(t *testing.T) {
	b, led, tr := newTestBot()
	ctx := context.Background()

	b.dispatch(ctx, textEvent("spent 45 on food with cash"))
	if len(led.appended) != 1 {
		t.Fatalf("appended = %d, want 1", len(led.appended))
	}
	got := led.appended[0]
	if got.Kind != models.KindExpense || got.Category != "Food" || got.Account != "Cash" {
		t.Errorf("quick entry = %+v", got)
	}
	if got.ID == "" {
		t.Error("quick entry should carry a generated id")
	}
	if !strings.Contains(tr.lastSent().Text, "recorded") {
		t.Errorf("confirmation = %q", tr.lastSent().Text)
	}
}

func TestUnknownTextGetsMenu(t *testing.T) {
	b, led, tr := newTestBot()
	b.dispatch(context.Background(), textEvent("what can you do"))
	if len(led.appended) != 0 {
		t.Error("non-entry text must not write")
	}
	last := tr.lastSent()
	if last.Opts == nil || last.Opts.Keyboard == nil {
		t.Error("fallback reply should carry the main menu")
	}
}

func TestHelpCommand(t *testing.T) {
	b, _, tr := newTestBot()
	b.dispatch(context.Background(), textEvent("/help"))
	last := tr.lastSent()
	if !strings.Contains(last.Text, "PennyPipe") || last.Opts == nil || last.Opts.Keyboard == nil {
		t.Errorf("help reply = %+v", last)
	}
}
