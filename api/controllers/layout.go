package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/velora-storefront/api/responses"
	"github.com/angelmondragon/velora-storefront/api/validators"
	"github.com/angelmondragon/velora-storefront/internal/layout"
	"github.com/angelmondragon/velora-storefront/internal/render"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

type headerPayload struct {
	MenuOpen bool          `json:"menu_open"`
	ScrollY  int           `json:"scroll_y" validate:"gte=0"`
	Event    *layout.Event `json:"event"`
	LoadedAt *time.Time    `json:"loaded_at"`
}

type headerResponse struct {
	Header             layout.Header     `json:"header"`
	View               render.HeaderView `json:"view"`
	PreloaderRemaining int64             `json:"preloader_remaining_ms"`
}

// HeaderUpdate applies one header interaction (menu toggle, outside click or
// scroll) to the posted header state. The page holds the state.
func HeaderUpdate(ctrl *layout.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if ctrl == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "layout controller unavailable"))
			return
		}

		var payload headerPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out, err := resolveHeader(ctrl, payload, time.Now())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

func resolveHeader(ctrl *layout.Controller, payload headerPayload, now time.Time) (headerResponse, error) {
	header := ctrl.Scroll(layout.Header{MenuOpen: payload.MenuOpen}, payload.ScrollY)
	if payload.Event != nil {
		var err error
		header, err = ctrl.Apply(header, *payload.Event)
		if err != nil {
			return headerResponse{}, err
		}
	}

	loadedAt := now
	if payload.LoadedAt != nil {
		loadedAt = *payload.LoadedAt
	}
	visible := ctrl.PreloaderVisible(loadedAt, now)
	remaining := int64(0)
	if visible {
		remaining = loadedAt.Add(ctrl.PreloaderDelay()).Sub(now).Milliseconds()
	}

	return headerResponse{
		Header:             header,
		View:               render.Header(header, visible),
		PreloaderRemaining: remaining,
	}, nil
}
