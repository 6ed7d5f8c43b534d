package cart

import (
	cartdto "github.com/angelmondragon/velora-storefront/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/render"
)

func newMutationResponse(rnd *render.Renderer, res cartsvc.MutationResult, withWishlist bool) cartdto.MutationResponse {
	resp := cartdto.MutationResponse{
		Applied: res.Applied,
		Message: res.Message,
		Cart:    rnd.Cart(res.State),
	}
	if withWishlist {
		in := res.InWishlist
		resp.InWishlist = &in
	}
	return resp
}
