package wishlist

import (
	"sync"

	"sportmarket/internal/domain"
)

// PlaceholderImage is used when a product carries no image at all.
const PlaceholderImage = "/placeholder-product.png"

// Store keeps liked products unique by id, in the order they were liked.
type Store struct {
	mu    sync.Mutex
	items []domain.WishlistItem
}

func New() *Store {
	return &Store{}
}

// Add appends a normalized copy of p. Products already present, or without an id, are ignored.
func (s *Store) Add(p domain.Product) {
	if p.ID == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == p.ID {
			return
		}
	}
	s.items = append(s.items, normalize(p))
}

// Remove filters out the item with the given id.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the wishlist.
func (s *Store) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

func normalize(p domain.Product) domain.WishlistItem {
	image := p.Image
	if image == "" && len(p.Images) > 0 {
		image = p.Images[0]
	}
	if image == "" {
		image = PlaceholderImage
	}
	return domain.WishlistItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: image,
	}
}
