package promo

import "strings"

// DemoCode is the only accepted promo code. Applying it announces a discount
// but does not change the total.
const DemoCode = "VELORA10"

const (
	MessageApplied  = "Promo code applied! 10% discount"
	MessageInvalid  = "Invalid promo code"
	MessageEmpty    = "Your cart is empty!"
	MessageCheckout = "Proceeding to checkout... (Demo)"
)

// Result is the outcome of applying a code. Message is empty when nothing
// should be announced.
type Result struct {
	Code    string `json:"code"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Apply normalizes the code (trimmed, upper-cased) and checks it.
func Apply(code string) Result {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case normalized == DemoCode:
		return Result{Code: normalized, Valid: true, Message: MessageApplied}
	case normalized != "":
		return Result{Code: normalized, Message: MessageInvalid}
	default:
		return Result{}
	}
}

// Checkout is the outcome of pressing the checkout button.
type Checkout struct {
	Proceed bool   `json:"proceed"`
	Message string `json:"message"`
}

// StartCheckout only announces; no order is created.
func StartCheckout(lineCount int) Checkout {
	if lineCount == 0 {
		return Checkout{Message: MessageEmpty}
	}
	return Checkout{Proceed: true, Message: MessageCheckout}
}
