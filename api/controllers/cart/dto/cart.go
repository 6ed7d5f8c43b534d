package cartdto

import "github.com/angelmondragon/velora-storefront/internal/render"

// MutationResponse is returned by every cart mutation.
type MutationResponse struct {
	Applied    bool            `json:"applied"`
	InWishlist *bool           `json:"in_wishlist,omitempty"`
	Message    string          `json:"message,omitempty"`
	Cart       render.CartView `json:"cart"`
}
