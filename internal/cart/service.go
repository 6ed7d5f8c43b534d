package cart

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

// Toast messages raised by cart and wishlist mutations.
const (
	MessageRemovedFromCart     = "Item removed from cart"
	MessageAddedToWishlist     = "Added to wishlist ♥"
	MessageRemovedFromWishlist = "Removed from wishlist"
)

// AddedToCartMessage is the toast raised after adding a product.
func AddedToCartMessage(name string) string {
	return name + " added to cart!"
}

const (
	outcomeApplied = "applied"
	outcomeIgnored = "ignored"
	outcomeFailed  = "failed"
)

// Notifier raises a toast for a session.
type Notifier interface {
	Notify(ctx context.Context, sessionID, message string) error
}

// Metrics records mutation outcomes and store latency.
type Metrics interface {
	IncMutation(operation, outcome string)
	ObserveStore(action string, duration time.Duration)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store    SlotStore
	Notifier Notifier
	Metrics  Metrics
	Logger   *logger.Logger
}

// MutationResult describes the state after a mutation.
type MutationResult struct {
	State      *State
	Applied    bool
	InWishlist bool
	Message    string
}

// Service loads a session's cart and wishlist, mutates them and persists the
// result after every mutation.
type Service interface {
	Snapshot(ctx context.Context, sessionID string) (*State, error)
	AddToCart(ctx context.Context, sessionID string, product Product) (MutationResult, error)
	RemoveFromCart(ctx context.Context, sessionID, itemID string) (MutationResult, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, qty int) (MutationResult, error)
	IncreaseQuantity(ctx context.Context, sessionID, itemID string) (MutationResult, error)
	DecreaseQuantity(ctx context.Context, sessionID, itemID string) (MutationResult, error)
	ToggleWishlist(ctx context.Context, sessionID string, product Product) (MutationResult, error)
	SaveForLater(ctx context.Context, sessionID, itemID string) (MutationResult, error)
}

type service struct {
	store    SlotStore
	notifier Notifier
	metrics  Metrics
	logg     *logger.Logger
	locks    *sessionLocks
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slot store is required")
	}
	return &service{
		store:    params.Store,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		logg:     params.Logger,
		locks:    newSessionLocks(),
	}, nil
}

// Snapshot loads the current state of the session.
func (s *service) Snapshot(ctx context.Context, sessionID string) (*State, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	unlock := s.locks.lock(sessionID)
	defer unlock()
	return s.load(ctx, sessionID)
}

func (s *service) AddToCart(ctx context.Context, sessionID string, product Product) (MutationResult, error) {
	if err := validateProduct(product); err != nil {
		return MutationResult{}, err
	}
	return s.mutate(ctx, "add_to_cart", sessionID, func(state *State) (mutation, error) {
		state.AddItem(product)
		return mutation{applied: true, cart: true, message: AddedToCartMessage(product.Name)}, nil
	})
}

// RemoveFromCart drops the line. Removing an unknown id persists nothing but
// still raises the removal toast.
func (s *service) RemoveFromCart(ctx context.Context, sessionID, itemID string) (MutationResult, error) {
	return s.mutate(ctx, "remove_from_cart", sessionID, func(state *State) (mutation, error) {
		removed := state.RemoveItem(itemID)
		return mutation{applied: removed, cart: removed, message: MessageRemovedFromCart}, nil
	})
}

// UpdateQuantity ignores quantities outside [MinQuantity, MaxQuantity].
func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemID string, qty int) (MutationResult, error) {
	return s.mutate(ctx, "update_quantity", sessionID, func(state *State) (mutation, error) {
		applied := state.UpdateQuantity(itemID, qty)
		return mutation{applied: applied, cart: applied}, nil
	})
}

func (s *service) IncreaseQuantity(ctx context.Context, sessionID, itemID string) (MutationResult, error) {
	return s.mutate(ctx, "increase_quantity", sessionID, func(state *State) (mutation, error) {
		applied := state.Increase(itemID)
		return mutation{applied: applied, cart: applied}, nil
	})
}

func (s *service) DecreaseQuantity(ctx context.Context, sessionID, itemID string) (MutationResult, error) {
	return s.mutate(ctx, "decrease_quantity", sessionID, func(state *State) (mutation, error) {
		applied := state.Decrease(itemID)
		return mutation{applied: applied, cart: applied}, nil
	})
}

func (s *service) ToggleWishlist(ctx context.Context, sessionID string, product Product) (MutationResult, error) {
	if err := validateProduct(product); err != nil {
		return MutationResult{}, err
	}
	return s.mutate(ctx, "toggle_wishlist", sessionID, func(state *State) (mutation, error) {
		in := state.ToggleWishlist(product)
		return mutation{applied: true, wishlist: true, inWishlist: in, message: wishlistMessage(in)}, nil
	})
}

// SaveForLater moves a cart line to the wishlist. The wishlist toast is
// immediately replaced by the removal toast. Unknown ids are a no-op.
func (s *service) SaveForLater(ctx context.Context, sessionID, itemID string) (MutationResult, error) {
	return s.mutate(ctx, "save_for_later", sessionID, func(state *State) (mutation, error) {
		in, found := state.SaveForLater(itemID)
		if !found {
			return mutation{inWishlist: state.InWishlist(itemID)}, nil
		}
		return mutation{
			applied:    true,
			cart:       true,
			wishlist:   true,
			inWishlist: in,
			messages:   []string{wishlistMessage(in), MessageRemovedFromCart},
		}, nil
	})
}

type mutation struct {
	applied    bool
	cart       bool
	wishlist   bool
	inWishlist bool
	message    string
	// messages are raised in order after message; the last one is reported.
	messages []string
}

func (m mutation) toasts() []string {
	if m.message == "" {
		return m.messages
	}
	return append([]string{m.message}, m.messages...)
}

func (s *service) mutate(ctx context.Context, op, sessionID string, apply func(*State) (mutation, error)) (MutationResult, error) {
	if err := validateSession(sessionID); err != nil {
		return MutationResult{}, err
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"session_id": sessionID, "operation": op})
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		s.count(op, outcomeFailed)
		return MutationResult{}, err
	}
	m, err := apply(state)
	if err != nil {
		s.count(op, outcomeFailed)
		return MutationResult{}, err
	}
	if err := s.persist(ctx, sessionID, state, m); err != nil {
		s.count(op, outcomeFailed)
		return MutationResult{}, err
	}

	if m.applied {
		s.count(op, outcomeApplied)
	} else {
		s.count(op, outcomeIgnored)
	}
	var last string
	for _, message := range m.toasts() {
		s.notify(ctx, sessionID, message)
		last = message
	}
	return MutationResult{
		State:      state,
		Applied:    m.applied,
		InWishlist: m.inWishlist,
		Message:    last,
	}, nil
}

func (s *service) load(ctx context.Context, sessionID string) (*State, error) {
	started := time.Now()
	defer s.observe("load", started)

	items, err := loadSlot(ctx, s.store, sessionID, CartSlot)
	if err != nil {
		return nil, err
	}
	wishlist, err := loadSlot(ctx, s.store, sessionID, WishlistSlot)
	if err != nil {
		return nil, err
	}
	return NewState(items, wishlist), nil
}

func (s *service) persist(ctx context.Context, sessionID string, state *State, m mutation) error {
	if !m.cart && !m.wishlist {
		return nil
	}
	started := time.Now()
	defer s.observe("save", started)

	if m.cart {
		if err := saveSlot(ctx, s.store, sessionID, CartSlot, state.items); err != nil {
			return err
		}
	}
	if m.wishlist {
		if err := saveSlot(ctx, s.store, sessionID, WishlistSlot, state.wishlist); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) notify(ctx context.Context, sessionID, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, sessionID, message); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to raise notification")
	}
}

func (s *service) count(op, outcome string) {
	if s.metrics != nil {
		s.metrics.IncMutation(op, outcome)
	}
}

func (s *service) observe(action string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStore(action, time.Since(started))
	}
}

func wishlistMessage(in bool) string {
	if in {
		return MessageAddedToWishlist
	}
	return MessageRemovedFromWishlist
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}

func validateProduct(product Product) error {
	if strings.TrimSpace(product.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
