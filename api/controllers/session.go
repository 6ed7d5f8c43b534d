package controllers

import (
	"net/http"

	"github.com/angelmondragon/velora-storefront/api/middleware"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
)

func sessionIDFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "session context missing")
	}
	return sessionID, nil
}
