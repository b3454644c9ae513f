// Package catalog resolves shop products and their priced presentation details.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"sportmarket/internal/domain"
)

var (
	// ErrSizeRequired is returned when a sized product is added without a size.
	ErrSizeRequired = errors.New("please select a size")
	// ErrUnknownSize is returned for a size the product is not offered in.
	ErrUnknownSize = errors.New("size not available")
)

// Catalog is an in-memory product list plus an id -> detail table.
// Detail lookups for ids without an entry return the fallback detail.
type Catalog struct {
	mu       sync.RWMutex
	products map[int]domain.Product
	details  map[int]domain.ProductDetail
	fallback domain.ProductDetail
}

// New returns a catalog seeded with the built-in shop products.
func New() *Catalog {
	c := &Catalog{
		products: make(map[int]domain.Product),
		details:  make(map[int]domain.ProductDetail),
		fallback: defaultDetail,
	}
	for _, p := range builtinProducts {
		c.products[p.ID] = p
	}
	for id, d := range builtinDetails {
		c.details[id] = d
	}
	return c
}

// Register adds or replaces a product and its detail entry.
func (c *Catalog) Register(p domain.Product, d domain.ProductDetail) error {
	if p.ID <= 0 {
		return fmt.Errorf("invalid product id %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %d: name required", p.ID)
	}
	c.mu.Lock()
	c.products[p.ID] = p
	c.details[p.ID] = d
	c.mu.Unlock()
	return nil
}

// Detail resolves the presentation details for id, falling back to the default entry.
func (c *Catalog) Detail(id int) domain.ProductDetail {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.details[id]; ok {
		return d
	}
	return c.fallback
}

// Product returns the listed product with the given id.
func (c *Catalog) Product(id int) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// Products returns every listed product ordered by id.
func (c *Catalog) Products() []domain.Product {
	return c.List(Filter{})
}

// CartProduct builds the snapshot the cart stores for product id in the given size.
// Prices come from the product detail, as shown on the product page.
func (c *Catalog) CartProduct(id int, size string) (domain.CartProduct, error) {
	p, ok := c.Product(id)
	if !ok {
		return domain.CartProduct{}, domain.ErrNotFound
	}
	size = c.LineSize(id, size)
	if len(p.Sizes) > 0 {
		if size == "" {
			return domain.CartProduct{}, ErrSizeRequired
		}
		if !slices.Contains(p.Sizes, size) {
			return domain.CartProduct{}, ErrUnknownSize
		}
	}

	d := c.Detail(id)
	return domain.CartProduct{
		ProductID: p.ID,
		Variant:   size,
		Name:      p.Name,
		Image:     firstNonEmpty(d.Image, p.Image),
		UnitPrice: d.Price,
		ListPrice: d.MRP,
	}, nil
}

// LineSize returns the size a cart line for product id is keyed by.
// Unsized products always use the empty size, whatever the caller sent.
func (c *Catalog) LineSize(id int, size string) string {
	size = strings.ToUpper(strings.TrimSpace(size))
	if p, ok := c.Product(id); ok && len(p.Sizes) == 0 {
		return ""
	}
	return size
}

// PriceRange is an inclusive price band.
type PriceRange struct {
	Min int64
	Max int64
}

// ParsePriceRange parses "min-max", e.g. "1000-5000".
// Both bounds must be non-negative integers and Min must not exceed Max.
func ParsePriceRange(s string) (PriceRange, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return PriceRange{}, fmt.Errorf("invalid price range %q", s)
	}
	var r PriceRange
	var err error
	if r.Min, err = strconv.ParseInt(lo, 10, 64); err != nil || r.Min < 0 {
		return PriceRange{}, fmt.Errorf("invalid price range %q", s)
	}
	if r.Max, err = strconv.ParseInt(hi, 10, 64); err != nil || r.Max < r.Min {
		return PriceRange{}, fmt.Errorf("invalid price range %q", s)
	}
	return r, nil
}

// Sort orders for List.
const (
	SortDefault   = ""
	SortName      = "name"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Filter narrows List. Each non-empty dimension must match; values within a dimension are alternatives.
type Filter struct {
	Categories  []string
	PriceRanges []PriceRange
	Colors      []string
	Sort        string
}

// List returns the products matching f.
func (c *Catalog) List(f Filter) []domain.Product {
	c.mu.RLock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	c.mu.RUnlock()

	sortProducts(out, f.Sort)
	return out
}

// Slug lowers a category label and joins words with dashes: "Karate Uniform" -> "karate-uniform".
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func (f Filter) matches(p domain.Product) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, Slug(p.Category)) {
		return false
	}
	if len(f.PriceRanges) > 0 {
		in := false
		for _, r := range f.PriceRanges {
			if p.Price >= r.Min && p.Price <= r.Max {
				in = true
				break
			}
		}
		if !in {
			return false
		}
	}
	if len(f.Colors) > 0 {
		hit := false
		for _, color := range f.Colors {
			if slices.Contains(p.Colors, color) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func sortProducts(products []domain.Product, order string) {
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	switch order {
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
