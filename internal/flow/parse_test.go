package flow

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmountAcceptsBothSeparators(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"50.25", "50.25"},
		{"50,25", "50.25"},
		{"1200", "1200"},
		{"0.5", "0.5"},
		{"lunch 12,5 today", "12.5"},
		{"  7 ", "7"},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", c.in, err)
			continue
		}
		want, _ := decimal.NewFromString(c.want)
		if !got.Equal(want) {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.in, got, want)
		}
	}
}

func TestParseAmountRejectsNonPositive(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "0", "0,0", "zero"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) should fail", in)
		}
	}
}

func TestParseDayOfMonthRange(t *testing.T) {
	for day := 1; day <= 31; day++ {
		got, err := ParseDayOfMonth(" " + strconv.Itoa(day) + " ")
		if err != nil || got != day {
			t.Errorf("ParseDayOfMonth(%d) = %d, %v", day, got, err)
		}
	}
	for _, in := range []string{"0", "32", "-1", "ten", "1.5", ""} {
		if _, err := ParseDayOfMonth(in); err == nil {
			t.Errorf("ParseDayOfMonth(%q) should fail", in)
		}
	}
}
