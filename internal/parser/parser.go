// Package parser implements the legacy free-text quick entry: a message like
// "spent 45 on groceries with cash" becomes a transaction without entering
// the step-by-step flow. Matching is a heuristic keyword scan against the
// configured category and account names.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/BTreeMap/PennyPipe/internal/flow"
	"github.com/BTreeMap/PennyPipe/internal/models"
)

// Fallbacks when no configured name matches the text.
const (
	FallbackCategory = "Other"
	FallbackAccount  = "Unspecified"
)

var (
	incomeVerbs  = regexp.MustCompile(`\b(received|earned|got|income)\b`)
	expenseVerbs = regexp.MustCompile(`\b(spent|paid|bought|expense)\b`)

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize lowercases, trims and strips diacritics so "Crédito" matches
// "credito".
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Catalog is the set of configured names quick entries are matched against.
type Catalog struct {
	ExpenseCategories []string
	IncomeCategories  []string
	Accounts          []string
}

// QuickEntry parses free text into a transaction draft, or nil when the text
// is not a quick entry (no amount, or no spend/receive verb). The caller owns
// assigning the draft id before persisting.
func QuickEntry(text string, catalog Catalog) *models.TransactionDraft {
	normalized := Normalize(text)

	amount, err := flow.ParseAmount(normalized)
	if err != nil {
		return nil
	}

	isIncome := incomeVerbs.MatchString(normalized)
	isExpense := expenseVerbs.MatchString(normalized)
	if !isIncome && !isExpense {
		return nil
	}
	kind := models.KindExpense
	categories := catalog.ExpenseCategories
	if isIncome {
		kind = models.KindIncome
		categories = catalog.IncomeCategories
	}

	return &models.TransactionDraft{
		Kind:        kind,
		Amount:      amount,
		Category:    matchName(normalized, categories, FallbackCategory),
		Account:     matchName(normalized, catalog.Accounts, FallbackAccount),
		Description: strings.TrimSpace(text),
	}
}

// matchName returns the first configured name whose normalized form occurs in
// the text, or the fallback.
func matchName(normalizedText string, names []string, fallback string) string {
	for _, name := range names {
		if strings.Contains(normalizedText, Normalize(name)) {
			return name
		}
	}
	return fallback
}
