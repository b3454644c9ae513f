package domain

// CartProduct is the priced snapshot handed to the cart when a shopper adds a product.
type CartProduct struct {
	ProductID int    `json:"productId"`
	Variant   string `json:"size,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice int64  `json:"price"`
	ListPrice int64  `json:"mrp"`
}

// LineItem is one cart entry. Prices are whole rupees captured when the item was first added.
type LineItem struct {
	ProductID int    `json:"productId"`
	Variant   string `json:"size,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"price"`
	ListPrice int64  `json:"mrp"`
}

// Subtotal returns unit price times quantity.
func (l LineItem) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// WishlistItem is the minimal shape kept for a liked product.
type WishlistItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}
