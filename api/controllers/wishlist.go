package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/velora-storefront/api/responses"
	"github.com/angelmondragon/velora-storefront/api/validators"
	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/catalog"
	"github.com/angelmondragon/velora-storefront/internal/render"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

const maxWishlistLimit = 100

// wishlistTogglePayload accepts either product fields or the card markup the
// heart button sits in.
type wishlistTogglePayload struct {
	ID    string  `json:"id" validate:"required_without=HTML,max=64"`
	Name  string  `json:"name" validate:"max=200"`
	Brand string  `json:"brand" validate:"max=200"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image" validate:"max=2048"`
	Size  string  `json:"size" validate:"max=32"`
	Color string  `json:"color" validate:"max=64"`
	HTML  string  `json:"html" validate:"max=65536"`
}

type wishlistButtonsPayload struct {
	ProductIDs []string `json:"product_ids" validate:"required,max=200,dive,required,max=64"`
}

type wishlistResponse struct {
	Items []cart.Item `json:"items"`
	Count int         `json:"count"`
}

type wishlistToggleResponse struct {
	InWishlist bool                  `json:"in_wishlist"`
	Message    string                `json:"message"`
	Button     render.WishlistButton `json:"button"`
}

// WishlistList returns the saved items in insertion order, optionally limited.
func WishlistList(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxWishlistLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.Snapshot(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items := state.Wishlist()
		count := len(items)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		responses.WriteSuccess(w, wishlistResponse{Items: items, Count: count})
	}
}

// WishlistToggle adds the product to the wishlist or removes it.
func WishlistToggle(svc cart.Service, extractor *catalog.Extractor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || extractor == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload wishlistTogglePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product := cart.Product{
			ID:    validators.SanitizeString(payload.ID, 64),
			Name:  validators.SanitizeString(payload.Name, 200),
			Brand: validators.SanitizeString(payload.Brand, 200),
			Price: payload.Price,
			Image: strings.TrimSpace(payload.Image),
			Size:  validators.SanitizeString(payload.Size, 32),
			Color: validators.SanitizeString(payload.Color, 64),
		}
		if strings.TrimSpace(payload.HTML) != "" {
			product, err = extractor.ParseCard(payload.HTML)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		res, err := svc.ToggleWishlist(ctx, sessionID, product)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		buttons := render.WishlistButtons(res.State, []string{product.ID})
		responses.WriteSuccess(w, wishlistToggleResponse{
			InWishlist: res.InWishlist,
			Message:    res.Message,
			Button:     buttons[0],
		})
	}
}

// WishlistButtons reports the heart state for each product card on a page.
func WishlistButtons(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload wishlistButtonsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.Snapshot(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, render.WishlistButtons(state, payload.ProductIDs))
	}
}
