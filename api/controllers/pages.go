package controllers

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/velora-storefront/api/responses"
	"github.com/angelmondragon/velora-storefront/api/validators"
	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/layout"
	"github.com/angelmondragon/velora-storefront/internal/render"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

// CartPage renders the cart page body.
func CartPage(svc cart.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || rnd == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart page unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.Snapshot(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteHTML(ctx, logg, w, func(out io.Writer) error {
			return rnd.RenderCart(out, state)
		})
	}
}

// BadgeFragment renders the header cart badge.
func BadgeFragment(svc cart.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || rnd == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "badge unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.Snapshot(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteHTML(ctx, logg, w, func(out io.Writer) error {
			return rnd.RenderBadge(out, state.ItemCount())
		})
	}
}

// NotificationFragment renders the toast element, empty once it is removed.
func NotificationFragment(toasts ToastCenter, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if toasts == nil || rnd == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := toasts.Current(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteHTML(ctx, logg, w, func(out io.Writer) error {
			return rnd.RenderNotification(out, render.Notification(view))
		})
	}
}

const maxFragmentProductIDs = 100

// HeaderFragment renders the site header for the state in the query string:
// menu_open, scroll_y, an optional event type and the page's loaded_at time.
func HeaderFragment(ctrl *layout.Controller, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if ctrl == nil || rnd == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "header unavailable"))
			return
		}

		payload, err := headerPayloadFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := resolveHeader(ctrl, payload, time.Now())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteHTML(ctx, logg, w, func(dst io.Writer) error {
			return rnd.RenderHeader(dst, out.View)
		})
	}
}

// WishlistButtonsFragment renders the heart buttons for the comma separated
// product ids in the ids query parameter.
func WishlistButtonsFragment(svc cart.Service, rnd *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || rnd == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist buttons unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ids := splitIDs(r.URL.Query().Get("ids"))
		if len(ids) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ids is required").
				WithDetails(map[string]any{"field": "ids"}))
			return
		}
		if len(ids) > maxFragmentProductIDs {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many product ids").
				WithDetails(map[string]any{"field": "ids", "max": maxFragmentProductIDs}))
			return
		}

		state, err := svc.Snapshot(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteHTML(ctx, logg, w, func(out io.Writer) error {
			return rnd.RenderWishlistButtons(out, render.WishlistButtons(state, ids))
		})
	}
}

func headerPayloadFromQuery(r *http.Request) (headerPayload, error) {
	var payload headerPayload
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("menu_open")); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return payload, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").
				WithDetails(map[string]any{"field": "menu_open"})
		}
		payload.MenuOpen = open
	}

	scrollY, err := validators.ParseQueryInt(r, "scroll_y", 0, 0, math.MaxInt32)
	if err != nil {
		return payload, err
	}
	payload.ScrollY = scrollY

	if raw := strings.TrimSpace(query.Get("event")); raw != "" {
		payload.Event = &layout.Event{Type: raw, ScrollY: scrollY}
	}

	if raw := strings.TrimSpace(query.Get("loaded_at")); raw != "" {
		loadedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return payload, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be an RFC 3339 time").
				WithDetails(map[string]any{"field": "loaded_at"})
		}
		payload.LoadedAt = &loadedAt
	}
	return payload, nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
