package cart

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
)

// SlotStore is the per-session key-value storage the cart and wishlist are
// persisted into. Values are serialized JSON arrays.
type SlotStore interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Clear(ctx context.Context, sessionID, key string) error
}

func loadSlot(ctx context.Context, store SlotStore, sessionID, key string) ([]Item, error) {
	raw, ok, err := store.Get(ctx, sessionID, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+key+" slot")
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+key+" slot").
			WithDetails(map[string]any{"slot": key})
	}
	return items, nil
}

func saveSlot(ctx context.Context, store SlotStore, sessionID, key string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+key+" slot")
	}
	if err := store.Set(ctx, sessionID, key, string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write "+key+" slot")
	}
	return nil
}
