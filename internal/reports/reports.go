// Package reports renders read-only summaries over ledger data.
package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/ui"
)

const dateLayout = "02/01/2006"

// Summary renders income, expenses and balance for the month of now, plus
// per-category spending against any configured budgets. Entries with
// unparseable dates are skipped.
func Summary(entries []models.LedgerEntry, budgets models.Budgets, now time.Time) string {
	income := decimal.Zero
	expense := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, entry := range entries {
		date, err := time.Parse(dateLayout, entry.Date)
		if err != nil || date.Year() != now.Year() || date.Month() != now.Month() {
			continue
		}
		switch entry.Kind {
		case models.KindIncome:
			income = income.Add(entry.Amount)
		case models.KindExpense:
			expense = expense.Add(entry.Amount)
			byCategory[entry.Category] = byCategory[entry.Category].Add(entry.Amount)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Summary for %s*\n\n", now.Format("January 2006"))
	fmt.Fprintf(&b, "💰 Income: %s\n", income.StringFixed(2))
	fmt.Fprintf(&b, "💸 Expenses: %s\n", expense.StringFixed(2))
	fmt.Fprintf(&b, "🧮 Balance: %s\n", income.Sub(expense).StringFixed(2))

	if len(byCategory) > 0 {
		b.WriteString("\n*By category:*\n")
		categories := make([]string, 0, len(byCategory))
		for category := range byCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			spent := byCategory[category]
			if limit, ok := budgets[category]; ok && limit.IsPositive() {
				marker := ""
				if spent.GreaterThan(limit) {
					marker = " ⚠️"
				}
				fmt.Fprintf(&b, "• %s: %s / %s%s\n", category, spent.StringFixed(2), limit.StringFixed(2), marker)
			} else {
				fmt.Fprintf(&b, "• %s: %s\n", category, spent.StringFixed(2))
			}
		}
	}
	return b.String()
}

// LastEntries renders the n most recent entries, newest first. The ledger
// returns rows oldest first, so the tail is taken and reversed.
func LastEntries(entries []models.LedgerEntry, n int) string {
	if len(entries) == 0 {
		return "🧾 No entries yet."
	}
	if n <= 0 {
		n = 5
	}
	start := len(entries) - n
	if start < 0 {
		start = 0
	}
	recent := entries[start:]

	var b strings.Builder
	fmt.Fprintf(&b, "🧾 *Last %d entries:*\n\n", len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		b.WriteString(ui.EntryLine(recent[i]))
		b.WriteString("\n")
	}
	return b.String()
}
