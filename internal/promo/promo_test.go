package promo

import "testing"

func TestApply(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		code  string
		valid bool
		msg   string
	}{
		{name: "exact", code: "VELORA10", valid: true, msg: MessageApplied},
		{name: "normalized", code: "  velora10 ", valid: true, msg: MessageApplied},
		{name: "invalid", code: "SAVE50", msg: MessageInvalid},
		{name: "empty", code: "   "},
	}
	for _, tc := range cases {
		got := Apply(tc.code)
		if got.Valid != tc.valid || got.Message != tc.msg {
			t.Fatalf("%s: got %+v", tc.name, got)
		}
	}
}

func TestStartCheckout(t *testing.T) {
	t.Parallel()

	if got := StartCheckout(0); got.Proceed || got.Message != "Your cart is empty!" {
		t.Fatalf("unexpected empty checkout %+v", got)
	}
	if got := StartCheckout(2); !got.Proceed || got.Message != "Proceeding to checkout... (Demo)" {
		t.Fatalf("unexpected checkout %+v", got)
	}
}
