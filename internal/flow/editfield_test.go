package flow

import (
	"context"
	"testing"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

func TestEditFieldWritesNextText(t *testing.T) {
	eng, led, _ := newTestEngine()
	ctx := context.Background()

	req := models.EditFieldRequest{Row: 12, Column: "B", FieldName: "Description"}
	if err := eng.StartEdit(ctx, testChat, req); err != nil {
		t.Fatal(err)
	}
	if got := eng.States().Get(testChat).Step; got != models.StepAwaitingNewValue {
		t.Fatalf("step = %s", got)
	}

	if err := eng.HandleText(ctx, testChat, "groceries"); err != nil {
		t.Fatal(err)
	}
	if len(led.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(led.updates))
	}
	got := led.updates[0]
	if got.Row != 12 || got.Column != "B" || got.Value != "groceries" {
		t.Errorf("update = %+v", got)
	}
	if eng.Active(testChat) {
		t.Error("state should clear after the single step")
	}
}

func TestEditFieldIgnoresButtons(t *testing.T) {
	eng, led, _ := newTestEngine()
	ctx := context.Background()

	if err := eng.StartEdit(ctx, testChat, models.EditFieldRequest{Row: 3, Column: "D", FieldName: "Amount"}); err != nil {
		t.Fatal(err)
	}
	if err := eng.HandleButton(ctx, testChat, msgRef(1), "data:Food"); err != nil {
		t.Fatal(err)
	}
	if len(led.updates) != 0 {
		t.Error("buttons must not trigger the edit write")
	}
	if !eng.Active(testChat) {
		t.Error("state should persist until a text arrives")
	}
}

func TestEditFieldFailureKeepsState(t *testing.T) {
	eng, led, tr := newTestEngine()
	ctx := context.Background()

	led.failUpdate = true
	if err := eng.StartEdit(ctx, testChat, models.EditFieldRequest{Row: 3, Column: "C", FieldName: "Category"}); err != nil {
		t.Fatal(err)
	}
	if err := eng.HandleText(ctx, testChat, "Transport"); err != nil {
		t.Fatal(err)
	}
	if got := tr.lastSent().Text; got != msgPersistFailed {
		t.Errorf("failure message = %q", got)
	}
	if !eng.Active(testChat) {
		t.Error("state must survive a failed update for retry")
	}

	led.failUpdate = false
	if err := eng.HandleText(ctx, testChat, "Transport"); err != nil {
		t.Fatal(err)
	}
	if len(led.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(led.updates))
	}
	if eng.Active(testChat) {
		t.Error("state should clear after successful retry")
	}
}
