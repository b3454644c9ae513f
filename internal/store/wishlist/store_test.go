package wishlist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sportmarket/internal/domain"
)

func TestAdd_DeduplicatesByID(t *testing.T) {
	s := New()
	p := domain.Product{ID: 202, Name: "Karate Uniform (Adidas)", Price: 3500, Image: "/Adidas karate.jpg"}
	s.Add(p)
	s.Add(p)

	require.Equal(t, 1, s.Count())
	require.True(t, s.Contains(202))
}

func TestAdd_IgnoresMissingID(t *testing.T) {
	s := New()
	s.Add(domain.Product{Name: "Nameless"})
	require.Zero(t, s.Count())
}

func TestAdd_ImageFallbackChain(t *testing.T) {
	s := New()
	s.Add(domain.Product{ID: 1, Name: "Shoes", Image: "/shoes.jpg", Images: []string{"/other.jpg"}})
	s.Add(domain.Product{ID: 2, Name: "T-Shirt", Images: []string{"/tshirt-1.jpg", "/tshirt-2.jpg"}})
	s.Add(domain.Product{ID: 3, Name: "Head wear"})

	items := s.Items()
	require.Equal(t, "/shoes.jpg", items[0].Image)
	require.Equal(t, "/tshirt-1.jpg", items[1].Image)
	require.Equal(t, PlaceholderImage, items[2].Image)
}

func TestAdd_NormalizesShape(t *testing.T) {
	s := New()
	s.Add(domain.Product{ID: 203, Name: "Karate Uniform (Aarwaza)", Price: 6500, Category: "Karate Uniform", Colors: []string{"white"}})
	require.Equal(t, []domain.WishlistItem{{ID: 203, Name: "Karate Uniform (Aarwaza)", Price: 6500, Image: PlaceholderImage}}, s.Items())
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(domain.Product{ID: 201, Name: "Kit"})
	s.Add(domain.Product{ID: 202, Name: "Uniform"})

	s.Remove(201)
	s.Remove(201)
	s.Remove(999)

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, 202, items[0].ID)
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(domain.Product{ID: 201, Name: "Kit"})
	s.Clear()
	require.Zero(t, s.Count())
	require.Empty(t, s.Items())
}
