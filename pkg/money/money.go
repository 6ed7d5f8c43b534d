// Package money formats storefront amounts the way the shop pages display them.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	minFractionDigits = 2
	maxFractionDigits = 3
)

// Format renders amount as "<label> 1,234.50": en-US grouping, at least two and
// at most three fraction digits, half-away-from-zero rounding.
func Format(label string, amount decimal.Decimal) string {
	formatted := Number(amount)
	if label == "" {
		return formatted
	}
	return label + " " + formatted
}

// Number renders amount without a currency label. Fractions round half away
// from zero to at most three digits.
func Number(amount decimal.Decimal) string {
	fixed := amount.Round(maxFractionDigits).StringFixed(maxFractionDigits)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	for len(frac) > minFractionDigits && strings.HasSuffix(frac, "0") {
		frac = strings.TrimSuffix(frac, "0")
	}

	var b strings.Builder
	if negative && (strings.Trim(intPart, "0") != "" || strings.Trim(frac, "0") != "") {
		b.WriteByte('-')
	}
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
