package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// cellString reads column i of a raw sheet row as a trimmed string.
func cellString(row []interface{}, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[i]))
}

// parseMoneyCell parses a money cell as written by spreadsheet locales that
// either use a plain dot decimal ("1234.56") or a currency-formatted value
// with dot thousand separators and a comma decimal ("R$ 1.234,56").
// Unparseable cells read as zero.
func parseMoneyCell(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
