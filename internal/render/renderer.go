package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/pkg/money"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	cartTemplate         = "cart.html"
	badgeTemplate        = "badge.html"
	notificationTemplate = "notification.html"
	wishlistTemplate     = "wishlist_buttons.html"
	headerTemplate       = "header.html"
)

// Options configures labels and links used by the templates.
type Options struct {
	CurrencyLabel string
	ShopURL       string
}

// Renderer turns cart, wishlist, toast and header state into HTML.
type Renderer struct {
	opts Options
	tpl  *template.Template
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	if opts.CurrencyLabel == "" {
		opts.CurrencyLabel = "EGP"
	}
	if opts.ShopURL == "" {
		opts.ShopURL = "shop.html"
	}
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, tpl: tpl}, nil
}

func (r *Renderer) money(amount decimal.Decimal) string {
	return money.Format(r.opts.CurrencyLabel, amount)
}

// RenderCart writes the cart page body.
func (r *Renderer) RenderCart(w io.Writer, state *cart.State) error {
	return r.tpl.ExecuteTemplate(w, cartTemplate, r.Cart(state))
}

// RenderBadge writes the header badge.
func (r *Renderer) RenderBadge(w io.Writer, count int) error {
	return r.tpl.ExecuteTemplate(w, badgeTemplate, Badge(count))
}

// RenderNotification writes the toast element, or nothing once it is removed.
func (r *Renderer) RenderNotification(w io.Writer, view NotificationView) error {
	return r.tpl.ExecuteTemplate(w, notificationTemplate, view)
}

// RenderWishlistButtons writes one heart button per product.
func (r *Renderer) RenderWishlistButtons(w io.Writer, buttons []WishlistButton) error {
	return r.tpl.ExecuteTemplate(w, wishlistTemplate, buttons)
}

// RenderHeader writes the site header shell.
func (r *Renderer) RenderHeader(w io.Writer, view HeaderView) error {
	return r.tpl.ExecuteTemplate(w, headerTemplate, view)
}
