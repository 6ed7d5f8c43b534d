package render

import (
	"fmt"

	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/layout"
	"github.com/angelmondragon/velora-storefront/internal/notifications"
)

// CartLine is one rendered cart row.
type CartLine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LinePrice string `json:"line_price"`
	MinQty    int    `json:"min_quantity"`
	MaxQty    int    `json:"max_quantity"`
}

// CartView is the cart page model.
type CartView struct {
	Title     string     `json:"title"`
	Empty     bool       `json:"empty"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"item_count"`
	Subtotal  string     `json:"subtotal"`
	Tax       string     `json:"tax"`
	Shipping  string     `json:"shipping"`
	Total     string     `json:"total"`
	ShopURL   string     `json:"shop_url"`
	Badge     BadgeView  `json:"badge"`
}

// BadgeView is the header cart badge.
type BadgeView struct {
	Count   int    `json:"count"`
	Text    string `json:"text"`
	Display string `json:"display"`
}

// WishlistButton is the state of one product card's heart button.
type WishlistButton struct {
	ProductID string `json:"product_id"`
	Active    bool   `json:"active"`
	Class     string `json:"class"`
	IconClass string `json:"icon_class"`
}

// NotificationView is the toast element.
type NotificationView struct {
	Present bool   `json:"present"`
	Class   string `json:"class"`
	Message string `json:"message"`
	Phase   string `json:"phase"`
}

// HeaderView is the site header.
type HeaderView struct {
	HeaderClass      string `json:"header_class"`
	NavClass         string `json:"nav_class"`
	AriaExpanded     string `json:"aria_expanded"`
	PreloaderVisible bool   `json:"preloader_visible"`
}

// Cart builds the cart page model.
func (r *Renderer) Cart(state *cart.State) CartView {
	summary := state.Summary()
	view := CartView{
		ItemCount: state.ItemCount(),
		Subtotal:  r.money(summary.Subtotal),
		Tax:       r.money(summary.Tax),
		Shipping:  r.money(summary.Shipping),
		Total:     r.money(summary.Total),
		ShopURL:   r.opts.ShopURL,
		Badge:     Badge(state.ItemCount()),
		Lines:     []CartLine{},
	}
	if state.LineCount() == 0 {
		view.Empty = true
		view.Title = "Your Shopping Bag (0)"
		return view
	}
	view.Title = fmt.Sprintf("Items in Your Bag (%d)", state.LineCount())
	for _, item := range state.Items() {
		view.Lines = append(view.Lines, CartLine{
			ID:        item.ID,
			Name:      item.Name,
			Brand:     item.Brand,
			Image:     item.Image,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			UnitPrice: r.money(item.UnitPrice()),
			LinePrice: r.money(item.LineTotal()),
			MinQty:    cart.MinQuantity,
			MaxQty:    cart.MaxQuantity,
		})
	}
	return view
}

// Badge shows the unit count and hides itself when the cart is empty.
func Badge(count int) BadgeView {
	display := "none"
	if count > 0 {
		display = "flex"
	}
	return BadgeView{Count: count, Text: fmt.Sprint(count), Display: display}
}

// WishlistButtons returns the heart state for each product id, in order.
func WishlistButtons(state *cart.State, productIDs []string) []WishlistButton {
	buttons := make([]WishlistButton, 0, len(productIDs))
	for _, id := range productIDs {
		button := WishlistButton{ProductID: id, Class: "wishlist-btn", IconClass: "fa-regular fa-heart"}
		if state.InWishlist(id) {
			button.Active = true
			button.Class = "wishlist-btn active"
			button.IconClass = "fa-solid fa-heart"
		}
		buttons = append(buttons, button)
	}
	return buttons
}

// Notification maps a toast view to its element.
func Notification(view notifications.View) NotificationView {
	if !view.Present() {
		return NotificationView{Phase: string(notifications.PhaseRemoved)}
	}
	class := "velora-notification"
	if view.Show {
		class += " show"
	}
	return NotificationView{Present: true, Class: class, Message: view.Message, Phase: string(view.Phase)}
}

// Header maps the header state to its classes.
func Header(h layout.Header, preloaderVisible bool) HeaderView {
	view := HeaderView{
		HeaderClass:      "site-header",
		NavClass:         "nav-left",
		AriaExpanded:     h.AriaExpanded(),
		PreloaderVisible: preloaderVisible,
	}
	if h.Scrolled {
		view.HeaderClass += " scrolled"
	}
	if h.MenuOpen {
		view.NavClass += " active"
	}
	return view
}
