package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/velora-storefront/api/responses"
	"github.com/angelmondragon/velora-storefront/api/validators"
	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/notifications"
	"github.com/angelmondragon/velora-storefront/internal/promo"
	"github.com/angelmondragon/velora-storefront/internal/render"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

// ToastCenter raises and reads session notifications.
type ToastCenter interface {
	Notify(ctx context.Context, sessionID, message string) error
	Current(ctx context.Context, sessionID string) (notifications.View, error)
}

type promoPayload struct {
	Code string `json:"code" validate:"max=64"`
}

// PromoApply checks a promo code and announces the outcome. The cart total is
// left untouched.
func PromoApply(toasts ToastCenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if toasts == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload promoPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result := promo.Apply(payload.Code)
		if result.Message != "" {
			if err := toasts.Notify(ctx, sessionID, result.Message); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, result)
	}
}

// Checkout announces the demo checkout; nothing is ordered.
func Checkout(svc cart.Service, toasts ToastCenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || toasts == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
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

		result := promo.StartCheckout(state.LineCount())
		if err := toasts.Notify(ctx, sessionID, result.Message); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "lines", state.LineCount()), "checkout.requested")
		}
		responses.WriteSuccess(w, result)
	}
}

// NotificationCurrent returns the session's toast as of now.
func NotificationCurrent(toasts ToastCenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if toasts == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification service unavailable"))
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
		responses.WriteSuccess(w, render.Notification(view))
	}
}
