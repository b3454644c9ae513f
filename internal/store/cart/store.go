// Package cart holds a shopper's cart line items keyed by product and selected size.
//
// Every operation is total: unknown keys are absorbed as no-ops and quantities that
// drop to zero or below remove the line item. Count and Total are computed from the
// current items on each call.
package cart

import (
	"sync"

	"sportmarket/internal/domain"
)

// NoVariant stands in for an absent size when comparing keys.
const NoVariant = "no-size"

// Key identifies a line item.
type Key struct {
	ProductID int
	Variant   string
}

// NewKey normalizes an empty variant to NoVariant.
func NewKey(productID int, variant string) Key {
	if variant == "" {
		variant = NoVariant
	}
	return Key{ProductID: productID, Variant: variant}
}

// Snapshot is an immutable view of the cart handed to subscribers.
type Snapshot struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"cartCount"`
	Total int64             `json:"total"`
}

// Store is safe for concurrent use. Each method runs to completion under one lock.
type Store struct {
	mu    sync.Mutex
	items map[Key]*domain.LineItem
	order []Key

	subs    map[int]func(Snapshot)
	nextSub int
}

func New() *Store {
	return &Store{
		items: make(map[Key]*domain.LineItem),
		subs:  make(map[int]func(Snapshot)),
	}
}

// Add increments the matching line item by one or appends a new one with quantity 1.
func (s *Store) Add(p domain.CartProduct) {
	s.mu.Lock()
	key := NewKey(p.ProductID, p.Variant)
	if line, ok := s.items[key]; ok {
		line.Quantity++
	} else {
		s.items[key] = &domain.LineItem{
			ProductID: p.ProductID,
			Variant:   p.Variant,
			Name:      p.Name,
			Image:     p.Image,
			Quantity:  1,
			UnitPrice: p.UnitPrice,
			ListPrice: p.ListPrice,
		}
		s.order = append(s.order, key)
	}
	s.unlockAndNotify()
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or less removes it.
func (s *Store) UpdateQuantity(productID, quantity int, variant string) {
	s.mu.Lock()
	key := NewKey(productID, variant)
	line, ok := s.items[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	if quantity <= 0 {
		s.deleteLocked(key)
	} else {
		line.Quantity = quantity
	}
	s.unlockAndNotify()
}

// Remove drops a line item if present.
func (s *Store) Remove(productID int, variant string) {
	s.mu.Lock()
	key := NewKey(productID, variant)
	if _, ok := s.items[key]; !ok {
		s.mu.Unlock()
		return
	}
	s.deleteLocked(key)
	s.unlockAndNotify()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = make(map[Key]*domain.LineItem)
	s.order = nil
	s.unlockAndNotify()
}

// Count is the sum of all quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

// Total is the sum of unit price times quantity over all line items.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Items returns a copy of the line items in the order they were first added.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Len is the number of distinct line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns items, count and total computed under a single lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every mutation.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) deleteLocked(key Key) {
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// unlockAndNotify releases the lock before invoking subscribers so they may read the store.
func (s *Store) unlockAndNotify() {
	if len(s.subs) == 0 {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items: s.itemsLocked(),
		Count: s.countLocked(),
		Total: s.totalLocked(),
	}
}

func (s *Store) itemsLocked() []domain.LineItem {
	out := make([]domain.LineItem, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.items[k])
	}
	return out
}

func (s *Store) countLocked() int {
	n := 0
	for _, line := range s.items {
		n += line.Quantity
	}
	return n
}

func (s *Store) totalLocked() int64 {
	var total int64
	for _, line := range s.items {
		total += line.Subtotal()
	}
	return total
}
