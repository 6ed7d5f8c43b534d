package cart

import "github.com/shopspring/decimal"

// Slot keys under which a session's lists are persisted.
const (
	CartSlot     = "veloraCart"
	WishlistSlot = "veloraWishlist"
)

const (
	MinQuantity = 1
	MaxQuantity = 10

	DefaultSize  = "M"
	DefaultColor = "Default"
)

// Product is the data a product card (or API client) supplies when adding to
// the cart or toggling the wishlist. Price is trusted as posted.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Size  string  `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Item is a cart line or a wishlist entry. Quantity is only meaningful in the
// cart and is omitted from wishlist records that never had one.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity,omitempty"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// UnitPrice returns the price as a decimal. The float converts through its
// shortest decimal form, so 1.0005 stays 1.0005 and later rounds half away
// from zero to 1.001 rather than following the binary value down to 1.000.
func (i Item) UnitPrice() decimal.Decimal {
	return decimal.NewFromFloat(i.Price)
}

// LineTotal returns price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Product strips the cart-only fields from the item.
func (i Item) Product() Product {
	return Product{
		ID:    i.ID,
		Name:  i.Name,
		Brand: i.Brand,
		Price: i.Price,
		Image: i.Image,
		Size:  i.Size,
		Color: i.Color,
	}
}

func newCartItem(p Product) Item {
	size := p.Size
	if size == "" {
		size = DefaultSize
	}
	color := p.Color
	if color == "" {
		color = DefaultColor
	}
	return Item{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    p.Brand,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
		Size:     size,
		Color:    color,
	}
}

func newWishlistItem(p Product) Item {
	return Item{
		ID:    p.ID,
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Image: p.Image,
		Size:  p.Size,
		Color: p.Color,
	}
}

// Summary is the order summary shown next to the cart.
type Summary struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}
