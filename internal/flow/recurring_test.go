package flow

import (
	"context"
	"testing"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

func TestRecurringEndToEnd(t *testing.T) {
	eng, led, tr := newTestEngine()
	ctx := context.Background()

	if err := eng.StartRecurring(ctx, testChat); err != nil {
		t.Fatal(err)
	}
	steps := []struct {
		text    string
		payload string
		ref     int
		want    models.Step
	}{
		{text: "Rent", want: models.StepAwaitingAmount},
		{text: "1200", want: models.StepAwaitingType},
		{payload: "data:Expense", ref: 3, want: models.StepAwaitingCategory},
		{payload: "data:Housing", ref: 4, want: models.StepAwaitingAccount},
		{payload: "data:Bank", ref: 5, want: models.StepAwaitingDayOfMonth},
	}
	for _, s := range steps {
		var err error
		if s.payload != "" {
			err = eng.HandleButton(ctx, testChat, msgRef(s.ref), s.payload)
		} else {
			err = eng.HandleText(ctx, testChat, s.text)
		}
		if err != nil {
			t.Fatalf("step to %s: %v", s.want, err)
		}
		if got := eng.States().Get(testChat).Step; got != s.want {
			t.Fatalf("step = %s, want %s", got, s.want)
		}
	}

	// Day 31 is accepted even though not every month has it.
	if err := eng.HandleText(ctx, testChat, "31"); err != nil {
		t.Fatal(err)
	}
	if len(led.recAppended) != 1 {
		t.Fatalf("recurring writes = %d, want 1", len(led.recAppended))
	}
	got := led.recAppended[0]
	if got.Description != "Rent" || got.Amount.String() != "1200" ||
		got.Kind != models.KindExpense || got.Category != "Housing" ||
		got.Account != "Bank" || got.DayOfMonth != 31 {
		t.Errorf("persisted recurring draft = %+v", got)
	}
	if eng.Active(testChat) {
		t.Error("state should clear after save; recurring entries have no confirmation step")
	}
	if tr.lastSent().Opts != nil && tr.lastSent().Opts.Keyboard != nil {
		t.Error("final message should not carry a confirmation keyboard")
	}
}

func TestRecurringInvalidDayReprompts(t *testing.T) {
	eng, led, _ := newTestEngine()
	ctx := context.Background()

	if err := eng.StartRecurring(ctx, testChat); err != nil {
		t.Fatal(err)
	}
	_ = eng.HandleText(ctx, testChat, "Gym")
	_ = eng.HandleText(ctx, testChat, "80")
	_ = eng.HandleButton(ctx, testChat, msgRef(3), "data:Expense")
	_ = eng.HandleButton(ctx, testChat, msgRef(4), "data:Transport")
	_ = eng.HandleButton(ctx, testChat, msgRef(5), "data:Cash")

	for _, in := range []string{"0", "32", "soon"} {
		if err := eng.HandleText(ctx, testChat, in); err != nil {
			t.Fatal(err)
		}
		if got := eng.States().Get(testChat).Step; got != models.StepAwaitingDayOfMonth {
			t.Errorf("step advanced on %q", in)
		}
		if len(led.recAppended) != 0 {
			t.Errorf("wrote on invalid day %q", in)
		}
	}
}

func TestRecurringStaleKindTokenIgnored(t *testing.T) {
	eng, _, tr := newTestEngine()
	ctx := context.Background()

	if err := eng.StartRecurring(ctx, testChat); err != nil {
		t.Fatal(err)
	}
	_ = eng.HandleText(ctx, testChat, "Rent")
	_ = eng.HandleText(ctx, testChat, "1200")

	// A category button from an older keyboard is not a valid kind.
	before := tr.sentCount()
	if err := eng.HandleButton(ctx, testChat, msgRef(9), "data:Housing"); err != nil {
		t.Fatal(err)
	}
	if tr.sentCount() != before {
		t.Error("stale kind token should stay silent")
	}
	if got := eng.States().Get(testChat).Step; got != models.StepAwaitingType {
		t.Errorf("step = %s, want unchanged", got)
	}
}
