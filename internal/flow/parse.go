package flow

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// errInvalidInput marks locally recoverable validation failures. Step
// handlers translate it into a re-prompt without touching state.
var errInvalidInput = errors.New("invalid input")

// amountPattern grabs the first run of digits with an optional decimal part,
// accepting both "." and "," as the decimal separator.
var amountPattern = regexp.MustCompile(`\d+[.,]?\d*`)

// ParseAmount extracts a positive decimal amount from free text.
// "50.25", "50,25" and "lunch 12,5 today" all parse; zero, negatives and
// text without digits do not.
func ParseAmount(text string) (decimal.Decimal, error) {
	match := amountPattern.FindString(text)
	if match == "" {
		return decimal.Zero, errInvalidInput
	}
	d, err := decimal.NewFromString(strings.Replace(match, ",", ".", 1))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, errInvalidInput
	}
	return d, nil
}

// ParseDayOfMonth parses an integer day in [1,31]. Day 31 is accepted for
// every month; the recurring poster simply never fires it in shorter months.
func ParseDayOfMonth(text string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || day < 1 || day > 31 {
		return 0, errInvalidInput
	}
	return day, nil
}
