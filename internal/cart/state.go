package cart

import "github.com/shopspring/decimal"

// State is the in-memory cart and wishlist of one shopper. It performs no I/O;
// Service loads it from and writes it back to a SlotStore.
type State struct {
	items    []Item
	wishlist []Item
}

// NewState builds a state from restored lists. The slices are copied.
func NewState(items, wishlist []Item) *State {
	return &State{
		items:    append([]Item(nil), items...),
		wishlist: append([]Item(nil), wishlist...),
	}
}

// Items returns a copy of the cart lines in insertion order.
func (s *State) Items() []Item {
	return append([]Item{}, s.items...)
}

// Wishlist returns a copy of the wishlist entries in insertion order.
func (s *State) Wishlist() []Item {
	return append([]Item{}, s.wishlist...)
}

// Find returns the cart line with the given id.
func (s *State) Find(id string) (Item, bool) {
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return Item{}, false
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1 and default size/color.
func (s *State) AddItem(p Product) Item {
	if idx := s.indexOf(p.ID); idx >= 0 {
		s.items[idx].Quantity++
		return s.items[idx]
	}
	item := newCartItem(p)
	s.items = append(s.items, item)
	return item
}

// RemoveItem drops every line with the given id. It reports whether anything
// was removed.
func (s *State) RemoveItem(id string) bool {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(s.items)
	s.items = kept
	return removed
}

// UpdateQuantity sets the quantity when the line exists and qty is within
// [MinQuantity, MaxQuantity]. Anything else is ignored.
func (s *State) UpdateQuantity(id string, qty int) bool {
	idx := s.indexOf(id)
	if idx < 0 || qty < MinQuantity || qty > MaxQuantity {
		return false
	}
	s.items[idx].Quantity = qty
	return true
}

// Increase bumps the quantity by one unless it is already at the maximum.
func (s *State) Increase(id string) bool {
	item, ok := s.Find(id)
	if !ok || item.Quantity >= MaxQuantity {
		return false
	}
	return s.UpdateQuantity(id, item.Quantity+1)
}

// Decrease lowers the quantity by one unless it is already at the minimum.
func (s *State) Decrease(id string) bool {
	item, ok := s.Find(id)
	if !ok || item.Quantity <= MinQuantity {
		return false
	}
	return s.UpdateQuantity(id, item.Quantity-1)
}

// ToggleWishlist removes the product from the wishlist if present, otherwise
// appends it. It returns the resulting membership.
func (s *State) ToggleWishlist(p Product) bool {
	return s.toggleWishlistItem(newWishlistItem(p))
}

func (s *State) toggleWishlistItem(item Item) bool {
	for idx, existing := range s.wishlist {
		if existing.ID == item.ID {
			s.wishlist = append(s.wishlist[:idx], s.wishlist[idx+1:]...)
			return false
		}
	}
	s.wishlist = append(s.wishlist, item)
	return true
}

// InWishlist reports whether the product id is saved in the wishlist.
func (s *State) InWishlist(id string) bool {
	for _, item := range s.wishlist {
		if item.ID == id {
			return true
		}
	}
	return false
}

// SaveForLater toggles the cart line into the wishlist and removes it from the
// cart. A line that is already wishlisted is toggled out of the wishlist, the
// same as pressing the heart twice. found is false when no such line exists.
func (s *State) SaveForLater(id string) (inWishlist, found bool) {
	item, ok := s.Find(id)
	if !ok {
		return false, false
	}
	inWishlist = s.toggleWishlistItem(item)
	s.RemoveItem(id)
	return inWishlist, true
}

// ItemCount is the total number of units in the cart (the badge value).
func (s *State) ItemCount() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// LineCount is the number of distinct cart lines.
func (s *State) LineCount() int {
	return len(s.items)
}

// Subtotal is the sum of price × quantity over all lines.
func (s *State) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Summary computes the order summary. No tax or shipping is charged, so Total
// always equals Subtotal.
func (s *State) Summary() Summary {
	subtotal := s.Subtotal()
	tax := decimal.Zero
	shipping := decimal.Zero
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// Total equals Summary().Total.
func (s *State) Total() decimal.Decimal {
	return s.Summary().Total
}

func (s *State) indexOf(id string) int {
	for idx, item := range s.items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}
