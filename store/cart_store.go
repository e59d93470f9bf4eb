// Package store holds the authoritative cart state. Every mutation is a
// single atomic transition followed by a synchronous write-through of the
// whole state: the worst case under rapid mutation is a redundant write,
// never a lost one.
package store

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/promo"
)

// Persister writes and reads a cart's full state as a single keyed blob.
type Persister interface {
	// Load returns the stored state for key, or (nil, nil) when no usable
	// state exists. A corrupt blob is reported as absent, not as an error.
	Load(ctx context.Context, key string) (*models.CartState, error)
	Save(ctx context.Context, key string, state *models.CartState) error
}

// Listener observes the cart state after each committed mutation.
type Listener func(models.CartState)

// CartStore is the state container for one cart. The cart is single-client,
// but handlers run on concurrent goroutines, so a mutex enforces the
// one-atomic-transition-at-a-time contract. Listeners are invoked while the
// lock is held and must not call back into the store.
type CartStore struct {
	mu        sync.Mutex
	key       string
	state     models.CartState
	persister Persister
	logger    *zap.Logger
	listeners []Listener
}

// NewCartStore rehydrates the cart identified by key. A missing or corrupt
// blob falls back to the default empty cart rather than failing.
func NewCartStore(ctx context.Context, key string, persister Persister, logger *zap.Logger) *CartStore {
	state := models.DefaultCartState()

	loaded, err := persister.Load(ctx, key)
	switch {
	case err != nil:
		logger.Warn("cart state unavailable, starting from defaults",
			zap.String("cartKey", key), zap.Error(err))
	case loaded != nil:
		state = *loaded
	}
	state.Normalize()

	return &CartStore{
		key:       key,
		state:     state,
		persister: persister,
		logger:    logger,
	}
}

// Subscribe registers a listener notified after every mutation.
func (s *CartStore) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns a deep copy of the current cart state.
func (s *CartStore) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add merges item into an existing line with the same (productId, variantId),
// summing quantities, or appends a new line.
func (s *CartStore) Add(ctx context.Context, item models.CartLineItem) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.state.Items {
		if s.state.Items[i].SameLine(item) {
			s.state.Items[i].Qty += item.Qty
			merged = true
			break
		}
	}
	if !merged {
		s.state.Items = append(s.state.Items, item)
	}

	return s.commit(ctx)
}

// UpdateQuantity replaces the quantity of the item at index. A quantity below
// one removes the line: keeping zero or negative lines would let them count
// into totals at their signed value. Out-of-range indices are ignored.
func (s *CartStore) UpdateQuantity(ctx context.Context, index, qty int) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Items) {
		return s.snapshot()
	}
	if qty < 1 {
		s.state.Items = append(s.state.Items[:index], s.state.Items[index+1:]...)
	} else {
		s.state.Items[index].Qty = qty
	}

	return s.commit(ctx)
}

// Remove deletes the item at index, shifting later indices down. Callers must
// not cache indices across removals.
func (s *CartStore) Remove(ctx context.Context, index int) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Items) {
		return s.snapshot()
	}
	s.state.Items = append(s.state.Items[:index], s.state.Items[index+1:]...)

	return s.commit(ctx)
}

// Clear empties the item list. Promo, shipping and wishlist survive.
func (s *CartStore) Clear(ctx context.Context) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = []models.CartLineItem{}

	return s.commit(ctx)
}

// ToggleWishlist adds productID to the wishlist if absent and removes it if
// present.
func (s *CartStore) ToggleWishlist(ctx context.Context, productID string) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.state.Wishlist {
		if id == productID {
			s.state.Wishlist = append(s.state.Wishlist[:i], s.state.Wishlist[i+1:]...)
			return s.commit(ctx)
		}
	}
	s.state.Wishlist = append(s.state.Wishlist, productID)

	return s.commit(ctx)
}

// SetPromo resolves code and stores the result. An unrecognised code clears
// any applied promotion rather than erroring.
func (s *CartStore) SetPromo(ctx context.Context, code string) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Promo = promo.Resolve(code)

	return s.commit(ctx)
}

// SetShipping stores a non-negative shipping cost. Non-finite or negative
// input becomes 0.
func (s *CartStore) SetShipping(ctx context.Context, value float64) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		value = 0
	}
	s.state.Shipping = value

	return s.commit(ctx)
}

// commit persists the whole state and notifies listeners, then returns a
// snapshot. Runs with the lock held so persists happen in mutation order. A
// failed persist is logged and the in-memory state stays authoritative; the
// next mutation writes the full state again.
func (s *CartStore) commit(ctx context.Context) models.CartState {
	snapshot := s.snapshot()

	if err := s.persister.Save(ctx, s.key, &snapshot); err != nil {
		s.logger.Error("persisting cart state failed",
			zap.String("cartKey", s.key), zap.Error(err))
	}
	for _, fn := range s.listeners {
		fn(snapshot)
	}
	return snapshot
}

func (s *CartStore) snapshot() models.CartState {
	copied := s.state
	copied.Items = make([]models.CartLineItem, len(s.state.Items))
	copy(copied.Items, s.state.Items)
	copied.Wishlist = make([]string, len(s.state.Wishlist))
	copy(copied.Wishlist, s.state.Wishlist)
	if s.state.Promo != nil {
		promoCopy := *s.state.Promo
		copied.Promo = &promoCopy
	}
	return copied
}
