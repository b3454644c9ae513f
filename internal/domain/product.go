package domain

// Product is a catalog entry as listed on the products grid.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Discount      string   `json:"discount,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Image         string   `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
}

// Attribute is one row of the structured detail table shown on the product page.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDetail carries the presentation details resolved for a product id.
type ProductDetail struct {
	Price   int64       `json:"price"`
	MRP     int64       `json:"mrp"`
	Details []Attribute `json:"details"`
	About   []string    `json:"about"`
	Image   string      `json:"image"`
}

// Discount returns how much cheaper the price is than the MRP, or zero.
func (d ProductDetail) Discount() int64 {
	if d.MRP > d.Price {
		return d.MRP - d.Price
	}
	return 0
}
