package catalog

import (
	"regexp"
	"strconv"
)

var (
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)
	leadingNumber = regexp.MustCompile(`^[0-9]*(\.[0-9]*)?`)
)

// ParsePrice strips everything but digits and dots from a displayed price and
// reads the longest leading decimal number, so "EGP 1,250.00" is 1250 and
// "1.2.3" is 1.2. Text without a number yields 0.
func ParsePrice(text string) float64 {
	digits := nonPriceChars.ReplaceAllString(text, "")
	prefix := leadingNumber.FindString(digits)
	if prefix == "" || prefix == "." {
		return 0
	}
	value, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return value
}
