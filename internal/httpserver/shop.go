package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sportmarket/internal/checkout"
	"sportmarket/internal/domain"
)

type addCartItemRequest struct {
	ProductID int    `json:"productId" binding:"required"`
	Size      string `json:"size"`
}

type updateCartItemRequest struct {
	Quantity *int   `json:"quantity" binding:"required"`
	Size     string `json:"size"`
}

type addWishlistRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

type wishlistResponse struct {
	Count int                   `json:"count"`
	Items []domain.WishlistItem `json:"items"`
}

func getCartHandler(c *gin.Context) {
	c.JSON(http.StatusOK, shopperFrom(c).Cart().Snapshot())
}

func addCartItemHandler(cat ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId is required")
			return
		}
		p, err := cat.CartProduct(req.ProductID, req.Size)
		if err != nil {
			writeError(c, err)
			return
		}
		cart := shopperFrom(c).Cart()
		cart.Add(p)
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

// updateCartItemHandler sets a line's quantity. Zero removes the line.
func updateCartItemHandler(cat ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}
		if *req.Quantity < 0 {
			badRequest(c, "quantity must not be negative")
			return
		}
		cart := shopperFrom(c).Cart()
		cart.UpdateQuantity(id, *req.Quantity, cat.LineSize(id, req.Size))
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

func removeCartItemHandler(cat ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		cart := shopperFrom(c).Cart()
		cart.Remove(id, cat.LineSize(id, c.Query("size")))
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

func clearCartHandler(c *gin.Context) {
	cart := shopperFrom(c).Cart()
	cart.Clear()
	c.JSON(http.StatusOK, cart.Snapshot())
}

func getWishlistHandler(c *gin.Context) {
	c.JSON(http.StatusOK, wishlistSnapshot(c))
}

// addWishlistHandler likes a listed product. Liking it again is not an error.
func addWishlistHandler(cat ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId is required")
			return
		}
		p, ok := cat.Product(req.ProductID)
		if !ok {
			writeError(c, domain.ErrNotFound)
			return
		}
		shopperFrom(c).Wishlist().Add(p)
		c.JSON(http.StatusOK, wishlistSnapshot(c))
	}
}

func removeWishlistHandler(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	shopperFrom(c).Wishlist().Remove(id)
	c.JSON(http.StatusOK, wishlistSnapshot(c))
}

func clearWishlistHandler(c *gin.Context) {
	shopperFrom(c).Wishlist().Clear()
	c.JSON(http.StatusOK, wishlistSnapshot(c))
}

func wishlistSnapshot(c *gin.Context) wishlistResponse {
	items := shopperFrom(c).Wishlist().Items()
	return wishlistResponse{Count: len(items), Items: items}
}

func checkoutAddressHandler(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addr checkout.Address
		if err := c.ShouldBindJSON(&addr); err != nil {
			badRequest(c, "invalid address payload")
			return
		}
		h, err := flow.Begin(shopperFrom(c), addr)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, h)
	}
}

func checkoutPaymentHandler(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := flow.Pay(shopperFrom(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}
