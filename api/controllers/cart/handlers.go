package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/velora-storefront/api/controllers/cart/dto"
	"github.com/angelmondragon/velora-storefront/api/middleware"
	"github.com/angelmondragon/velora-storefront/api/responses"
	"github.com/angelmondragon/velora-storefront/api/validators"
	cartsvc "github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/catalog"
	"github.com/angelmondragon/velora-storefront/internal/render"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

// CartFetch returns the rendered cart model for the session.
func CartFetch(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || rnd == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Snapshot(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rnd.Cart(state))
	}
}

// CartAddItem adds a posted product, or bumps its quantity when already present.
func CartAddItem(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || rnd == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.ProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.AddToCart(r.Context(), sessionID, toProduct(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(rnd, res, false))
	}
}

// CartAddFromCard extracts the product from posted card markup and adds it.
func CartAddFromCard(svc cartsvc.Service, extractor *catalog.Extractor, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || extractor == nil || rnd == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.CardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := extractor.ParseCard(payload.HTML)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.AddToCart(r.Context(), sessionID, product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(rnd, res, false))
	}
}

// CartUpdateQuantity sets a line quantity; values outside 1..10 are ignored.
func CartUpdateQuantity(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || rnd == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.QuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.UpdateQuantity(r.Context(), sessionID, itemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(rnd, res, false))
	}
}

// CartIncrease is the quantity selector's plus button.
func CartIncrease(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return itemMutation(svc, rnd, logg, false, func(ctx context.Context, sessionID, itemID string) (cartsvc.MutationResult, error) {
		return svc.IncreaseQuantity(ctx, sessionID, itemID)
	})
}

// CartDecrease is the quantity selector's minus button.
func CartDecrease(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return itemMutation(svc, rnd, logg, false, func(ctx context.Context, sessionID, itemID string) (cartsvc.MutationResult, error) {
		return svc.DecreaseQuantity(ctx, sessionID, itemID)
	})
}

// CartRemoveItem drops a line. Unknown ids succeed with applied=false.
func CartRemoveItem(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return itemMutation(svc, rnd, logg, false, func(ctx context.Context, sessionID, itemID string) (cartsvc.MutationResult, error) {
		return svc.RemoveFromCart(ctx, sessionID, itemID)
	})
}

// CartSaveForLater moves a line into the wishlist.
func CartSaveForLater(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return itemMutation(svc, rnd, logg, true, func(ctx context.Context, sessionID, itemID string) (cartsvc.MutationResult, error) {
		return svc.SaveForLater(ctx, sessionID, itemID)
	})
}

// CartBadge returns the header badge state.
func CartBadge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Snapshot(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, render.Badge(state.ItemCount()))
	}
}

type itemMutator func(ctx context.Context, sessionID, itemID string) (cartsvc.MutationResult, error)

func itemMutation(svc cartsvc.Service, rnd *render.Renderer, logg *logger.Logger, withWishlist bool, mutate itemMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || rnd == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := mutate(r.Context(), sessionID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(rnd, res, withWishlist))
	}
}

func sessionIDFromContext(r *http.Request) (string, error) {
	if r == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "request missing")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "session context missing")
	}
	return sessionID, nil
}

func itemIDFromPath(r *http.Request) (string, error) {
	itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
	if itemID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return itemID, nil
}
