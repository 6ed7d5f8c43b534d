package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "EGP 0.00"},
		{amount: "12.5", want: "EGP 12.50"},
		{amount: "1250", want: "EGP 1,250.00"},
		{amount: "1234567.891", want: "EGP 1,234,567.891"},
		{amount: "999.9999", want: "EGP 1,000.00"},
		{amount: "0.1235", want: "EGP 0.124"},
		{amount: "-42.1", want: "EGP -42.10"},
		{amount: "100000", want: "EGP 100,000.00"},
	}

	for _, tt := range tests {
		got := Format("EGP", decimal.RequireFromString(tt.amount))
		if got != tt.want {
			t.Fatalf("Format(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatWithoutLabel(t *testing.T) {
	if got := Format("", decimal.NewFromInt(3)); got != "3.00" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestNumberDropsNegativeZero(t *testing.T) {
	if got := Number(decimal.RequireFromString("-0.0001")); got != "0.00" {
		t.Fatalf("expected 0.00, got %q", got)
	}
}

func TestFormatRoundsHalfAwayFromZero(t *testing.T) {
	tests := map[float64]string{
		1.0005:  "EGP 1.001",
		2.0015:  "EGP 2.002",
		-1.0005: "EGP -1.001",
	}
	for price, want := range tests {
		if got := Format("EGP", decimal.NewFromFloat(price)); got != want {
			t.Fatalf("Format(%v) = %q, want %q", price, got, want)
		}
	}
}
