package parser

import (
	"testing"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

var testCatalog = Catalog{
	ExpenseCategories: []string{"Groceries", "Transport", "Crédito"},
	IncomeCategories:  []string{"Salary"},
	Accounts:          []string{"Cash", "Bank"},
}

func TestQuickEntryExpense(t *testing.T) {
	draft := QuickEntry("spent 45.50 on groceries with cash", testCatalog)
	if draft == nil {
		t.Fatal("expected a quick entry")
	}
	if draft.Kind != models.KindExpense {
		t.Errorf("kind = %s", draft.Kind)
	}
	if draft.Amount.String() != "45.5" {
		t.Errorf("amount = %s", draft.Amount)
	}
	if draft.Category != "Groceries" || draft.Account != "Cash" {
		t.Errorf("matched %q via %q", draft.Category, draft.Account)
	}
	if draft.Description != "spent 45.50 on groceries with cash" {
		t.Errorf("description = %q", draft.Description)
	}
}

func TestQuickEntryIncome(t *testing.T) {
	draft := QuickEntry("received 1200 salary in the bank", testCatalog)
	if draft == nil {
		t.Fatal("expected a quick entry")
	}
	if draft.Kind != models.KindIncome || draft.Category != "Salary" || draft.Account != "Bank" {
		t.Errorf("draft = %+v", draft)
	}
}

func TestQuickEntryFallbacks(t *testing.T) {
	draft := QuickEntry("paid 10 for mystery thing", testCatalog)
	if draft == nil {
		t.Fatal("expected a quick entry")
	}
	if draft.Category != FallbackCategory || draft.Account != FallbackAccount {
		t.Errorf("fallbacks = %q / %q", draft.Category, draft.Account)
	}
}

func TestQuickEntryRejectsNonEntries(t *testing.T) {
	for _, text := range []string{
		"hello there",        // no amount, no verb
		"spent a lot",        // verb but no amount
		"45.50 at the store", // amount but no verb
	} {
		if QuickEntry(text, testCatalog) != nil {
			t.Errorf("QuickEntry(%q) should be nil", text)
		}
	}
}

func TestNormalizeStripsDiacritics(t *testing.T) {
	if got := Normalize("  CRÉDITO "); got != "credito" {
		t.Errorf("Normalize = %q", got)
	}
	draft := QuickEntry("paid 99 on credito", testCatalog)
	if draft == nil || draft.Category != "Crédito" {
		t.Errorf("accent-insensitive match failed: %+v", draft)
	}
}
