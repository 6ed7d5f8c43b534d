package notifications

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
)

// Center raises and reads session toasts. Raising a toast replaces whatever the
// session was showing.
type Center struct {
	store Store
	now   func() time.Time
}

// NewCenter builds a notification center. A nil clock uses time.Now.
func NewCenter(store Store, now func() time.Time) (*Center, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification store is required")
	}
	if now == nil {
		now = time.Now
	}
	return &Center{store: store, now: now}, nil
}

// Notify replaces the session's toast with message.
func (c *Center) Notify(ctx context.Context, sessionID, message string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	toast := Toast{Message: message, CreatedAt: c.now().UTC()}
	if err := c.store.Put(ctx, sessionID, toast); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store notification")
	}
	return nil
}

// Current returns the session's toast as of now. A session without a live
// toast gets a View in PhaseRemoved.
func (c *Center) Current(ctx context.Context, sessionID string) (View, error) {
	toast, ok, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification")
	}
	if !ok {
		return View{Phase: PhaseRemoved}, nil
	}
	return viewAt(toast, c.now()), nil
}
