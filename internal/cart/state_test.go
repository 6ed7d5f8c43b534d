package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func product(id string, price float64) Product {
	return Product{ID: id, Name: "Item " + id, Brand: "Atelier Velora", Price: price, Image: "img/" + id + ".jpg"}
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	t.Parallel()

	state := NewState(nil, nil)
	state.AddItem(product("a", 100))
	state.AddItem(product("a", 100))

	items := state.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItemAppliesDefaults(t *testing.T) {
	t.Parallel()

	state := NewState(nil, nil)
	item := state.AddItem(product("a", 10))
	if item.Size != DefaultSize || item.Color != DefaultColor || item.Quantity != 1 {
		t.Fatalf("unexpected defaults: %+v", item)
	}

	custom := product("b", 10)
	custom.Size = "L"
	custom.Color = "Noir"
	item = state.AddItem(custom)
	if item.Size != "L" || item.Color != "Noir" {
		t.Fatalf("expected posted size and color, got %+v", item)
	}
}

func TestRemoveMissingItemIsNoop(t *testing.T) {
	t.Parallel()

	state := NewState([]Item{{ID: "a", Price: 5, Quantity: 2}}, nil)
	if state.RemoveItem("missing") {
		t.Fatal("expected nothing removed")
	}
	if state.LineCount() != 1 || state.ItemCount() != 2 {
		t.Fatalf("state changed: %+v", state.Items())
	}
	if !state.RemoveItem("a") || state.LineCount() != 0 {
		t.Fatalf("expected line removed, got %+v", state.Items())
	}
}

func TestUpdateQuantityBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		qty     int
		applied bool
		want    int
	}{
		{name: "zero", qty: 0, want: 3},
		{name: "negative", qty: -2, want: 3},
		{name: "above max", qty: 11, want: 3},
		{name: "min", qty: 1, applied: true, want: 1},
		{name: "max", qty: 10, applied: true, want: 10},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := NewState([]Item{{ID: "a", Price: 5, Quantity: 3}}, nil)
			if got := state.UpdateQuantity("a", tc.qty); got != tc.applied {
				t.Fatalf("applied = %v, want %v", got, tc.applied)
			}
			item, _ := state.Find("a")
			if item.Quantity != tc.want {
				t.Fatalf("quantity = %d, want %d", item.Quantity, tc.want)
			}
		})
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	t.Parallel()

	state := NewState(nil, nil)
	if state.UpdateQuantity("missing", 2) {
		t.Fatal("expected unknown item to be ignored")
	}
}

func TestIncreaseDecreaseStopAtBounds(t *testing.T) {
	t.Parallel()

	state := NewState([]Item{{ID: "a", Quantity: 9}, {ID: "b", Quantity: 2}}, nil)
	if !state.Increase("a") {
		t.Fatal("expected increase to 10")
	}
	if state.Increase("a") {
		t.Fatal("expected increase past 10 to be ignored")
	}
	if !state.Decrease("b") {
		t.Fatal("expected decrease to 1")
	}
	if state.Decrease("b") {
		t.Fatal("expected decrease below 1 to be ignored")
	}
	a, _ := state.Find("a")
	b, _ := state.Find("b")
	if a.Quantity != 10 || b.Quantity != 1 {
		t.Fatalf("unexpected quantities a=%d b=%d", a.Quantity, b.Quantity)
	}
}

func TestSubtotalSumsLines(t *testing.T) {
	t.Parallel()

	state := NewState([]Item{
		{ID: "a", Price: 1250, Quantity: 2},
		{ID: "b", Price: 0.1, Quantity: 3},
		{ID: "c", Price: 19.99, Quantity: 1},
	}, nil)

	want := decimal.RequireFromString("2520.29")
	if !state.Subtotal().Equal(want) {
		t.Fatalf("subtotal = %s, want %s", state.Subtotal(), want)
	}
	summary := state.Summary()
	if !summary.Total.Equal(want) || !summary.Tax.IsZero() || !summary.Shipping.IsZero() {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !state.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", state.Total(), want)
	}
}

func TestUnitPriceUsesShortestDecimal(t *testing.T) {
	t.Parallel()

	item := Item{ID: "a", Price: 1.0005, Quantity: 2}
	if got := item.UnitPrice().String(); got != "1.0005" {
		t.Fatalf("unit price = %s, want 1.0005", got)
	}
	if got := item.LineTotal().String(); got != "2.001" {
		t.Fatalf("line total = %s, want 2.001", got)
	}
}

func TestEmptyStateTotals(t *testing.T) {
	t.Parallel()

	state := NewState(nil, nil)
	if !state.Total().IsZero() || state.ItemCount() != 0 || state.LineCount() != 0 {
		t.Fatal("expected empty totals")
	}
	if state.Items() == nil || state.Wishlist() == nil {
		t.Fatal("expected non-nil empty slices")
	}
}

func TestToggleWishlistTwiceRestoresMembership(t *testing.T) {
	t.Parallel()

	state := NewState(nil, []Item{{ID: "kept"}})
	p := product("x", 40)

	if !state.ToggleWishlist(p) || !state.InWishlist("x") {
		t.Fatal("expected product added to wishlist")
	}
	if state.ToggleWishlist(p) || state.InWishlist("x") {
		t.Fatal("expected product removed from wishlist")
	}
	if len(state.Wishlist()) != 1 || !state.InWishlist("kept") {
		t.Fatalf("unexpected wishlist %+v", state.Wishlist())
	}
}

func TestSaveForLater(t *testing.T) {
	t.Parallel()

	state := NewState([]Item{{ID: "a", Name: "Coat", Price: 10, Quantity: 2, Size: "S", Color: "Red"}}, nil)

	in, found := state.SaveForLater("a")
	if !found || !in {
		t.Fatalf("expected line moved to wishlist, in=%v found=%v", in, found)
	}
	if state.LineCount() != 0 {
		t.Fatal("expected cart line removed")
	}
	saved := state.Wishlist()[0]
	if saved.Name != "Coat" || saved.Size != "S" {
		t.Fatalf("unexpected wishlist entry %+v", saved)
	}

	if _, found := state.SaveForLater("a"); found {
		t.Fatal("expected missing line to report not found")
	}
}

func TestSaveForLaterAlreadyWishlistedTogglesOut(t *testing.T) {
	t.Parallel()

	state := NewState([]Item{{ID: "a", Quantity: 1}}, []Item{{ID: "a"}})
	in, found := state.SaveForLater("a")
	if !found || in {
		t.Fatalf("expected toggle out of wishlist, in=%v found=%v", in, found)
	}
	if state.LineCount() != 0 || len(state.Wishlist()) != 0 {
		t.Fatal("expected both lists empty")
	}
}

func TestNewStateCopiesInput(t *testing.T) {
	t.Parallel()

	items := []Item{{ID: "a", Quantity: 1}}
	state := NewState(items, nil)
	state.Increase("a")
	if items[0].Quantity != 1 {
		t.Fatal("expected caller slice untouched")
	}
}
