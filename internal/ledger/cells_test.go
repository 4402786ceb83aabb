package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoneyCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234.56", "1234.56"},
		{"R$ 1.234,56", "1234.56"},
		{"$50", "50"},
		{"1200", "1200"},
		{"45,9", "45.9"},
		{"", "0"},
		{"abc", "0"},
	}
	for _, c := range cases {
		got := parseMoneyCell(c.in)
		want, _ := decimal.NewFromString(c.want)
		if !got.Equal(want) {
			t.Errorf("parseMoneyCell(%q) = %s, want %s", c.in, got, want)
		}
	}
}

func TestCellString(t *testing.T) {
	row := []interface{}{" Food ", 42, nil}
	if got := cellString(row, 0); got != "Food" {
		t.Errorf("cellString(0) = %q", got)
	}
	if got := cellString(row, 1); got != "42" {
		t.Errorf("cellString(1) = %q", got)
	}
	if got := cellString(row, 5); got != "" {
		t.Errorf("out of range should be empty, got %q", got)
	}
}

func TestPersistenceErrorWrapping(t *testing.T) {
	base := errors.New("backend down")
	err := persistence("append entry", base)
	if !IsPersistence(err) {
		t.Error("expected IsPersistence to be true")
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped error to unwrap to base")
	}
	if persistence("x", nil) != nil {
		t.Error("nil error should stay nil")
	}
}
