package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"sportmarket/internal/checkout"
	"sportmarket/internal/store/cart"
	"sportmarket/internal/store/wishlist"
)

// Shopper is the in-memory state owned by one identity.
type Shopper struct {
	cart     *cart.Store
	wishlist *wishlist.Store

	mu       sync.Mutex
	pending  *checkout.Handoff
	lastSeen time.Time
}

func newShopper(now time.Time) *Shopper {
	return &Shopper{cart: cart.New(), wishlist: wishlist.New(), lastSeen: now}
}

func (s *Shopper) Cart() *cart.Store { return s.cart }

func (s *Shopper) Wishlist() *wishlist.Store { return s.wishlist }

func (s *Shopper) PendingCheckout() (checkout.Handoff, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return checkout.Handoff{}, false
	}
	return *s.pending, true
}

func (s *Shopper) SetPendingCheckout(h checkout.Handoff) {
	s.mu.Lock()
	s.pending = &h
	s.mu.Unlock()
}

func (s *Shopper) ClearPendingCheckout() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

func (s *Shopper) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Shopper) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry maps owner keys to shopper state.
type Registry struct {
	mu       sync.Mutex
	shoppers map[string]*Shopper
	idleTTL  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewRegistry returns a registry that drops shoppers idle for longer than idleTTL.
// A zero idleTTL disables sweeping.
func NewRegistry(idleTTL time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		shoppers: make(map[string]*Shopper),
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the shopper for owner, creating it on first use.
// The shopper is marked seen before r.mu is released, so a concurrent Sweep cannot drop it.
func (r *Registry) Get(owner string) *Shopper {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s, ok := r.shoppers[owner]
	if !ok {
		s = newShopper(now)
		r.shoppers[owner] = s
	}
	s.touch(now)
	return s
}

// For returns the shopper owned by id. ok is false for unresolved identities.
func (r *Registry) For(id Identity) (*Shopper, bool) {
	owner := id.Owner()
	if owner == "" {
		return nil, false
	}
	return r.Get(owner), true
}

// Adopt moves the shopper at from to to, unless to already has state of its own.
// It reports whether a move happened.
func (r *Registry) Adopt(from, to string) bool {
	if from == "" || to == "" || from == to {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shoppers[from]
	if !ok {
		return false
	}
	if _, taken := r.shoppers[to]; taken {
		return false
	}
	delete(r.shoppers, from)
	r.shoppers[to] = s
	s.touch(r.now())
	return true
}

// Drop removes the shopper at owner.
func (r *Registry) Drop(owner string) {
	r.mu.Lock()
	delete(r.shoppers, owner)
	r.mu.Unlock()
}

// Len is the number of live shoppers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shoppers)
}

// Sweep removes idle shoppers and returns how many were dropped.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	dropped := 0
	for owner, s := range r.shoppers {
		if s.idleSince(now) > r.idleTTL {
			delete(r.shoppers, owner)
			dropped++
		}
	}
	return dropped
}

// Run sweeps on every interval tick until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || r.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("swept idle shoppers", zap.Int("dropped", n), zap.Int("live", r.Len()))
			}
		}
	}
}
