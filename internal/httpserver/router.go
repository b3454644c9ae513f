package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sportmarket/internal/catalog"
	"sportmarket/internal/checkout"
	"sportmarket/internal/domain"
	accountsvc "sportmarket/internal/service/account"
	"sportmarket/internal/session"
)

// AccountService covers signup, login and token-bound account lookups.
type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.Account, error)
	Login(ctx context.Context, email, password, role string) (*accountsvc.Session, error)
	LookupByToken(ctx context.Context, token string) (*domain.Account, error)
	Logout(ctx context.Context, token string) error
	AccessTTLSeconds() int
}

// TokenLookup resolves a bearer token to a signed-in account.
type TokenLookup interface {
	LookupByToken(ctx context.Context, token string) (*domain.Account, error)
}

// AnonymousService issues tokens for shoppers who have not signed in.
type AnonymousService interface {
	Issue(ctx context.Context) (accessToken, anonymousID string, err error)
	LookupByToken(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string)
	AccessTTLSeconds() int
}

// ProductCatalog is the read side of the product catalog.
type ProductCatalog interface {
	List(f catalog.Filter) []domain.Product
	Product(id int) (domain.Product, bool)
	Detail(id int) domain.ProductDetail
	CartProduct(id int, size string) (domain.CartProduct, error)
	LineSize(id int, size string) string
}

// Deps groups the collaborators the router wires into handlers.
type Deps struct {
	Accounts AccountService
	// Identity is an extra resolver for tokens Accounts did not issue, such as Firebase ID tokens.
	// Accounts is always consulted first so its own login tokens keep working.
	Identity  TokenLookup
	Anonymous AnonymousService
	Catalog   ProductCatalog
	Sessions  *session.Registry
	Checkout  *checkout.Flow
}

func (d *Deps) validate() error {
	switch {
	case d.Accounts == nil:
		return errors.New("httpserver: account service required")
	case d.Anonymous == nil:
		return errors.New("httpserver: anonymous service required")
	case d.Catalog == nil:
		return errors.New("httpserver: catalog required")
	case d.Sessions == nil:
		return errors.New("httpserver: session registry required")
	}
	return nil
}

// tokenLookups lists the resolvers tried for a bearer token, in order.
func (d Deps) tokenLookups() lookupChain {
	if d.Identity == nil {
		return lookupChain{d.Accounts}
	}
	return lookupChain{d.Accounts, d.Identity}
}

// lookupChain tries each resolver until one accepts the token.
// Only an invalid-token error moves on to the next resolver.
type lookupChain []TokenLookup

func (l lookupChain) LookupByToken(ctx context.Context, token string) (*domain.Account, error) {
	err := error(accountsvc.ErrInvalidToken)
	for _, lookup := range l {
		var a *domain.Account
		a, err = lookup.LookupByToken(ctx, token)
		if err == nil {
			return a, nil
		}
		if !isInvalidToken(err) {
			return nil, err
		}
	}
	return nil, err
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Checkout == nil {
		deps.Checkout = checkout.NewFlow(logger)
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", anonymousTokenHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, deps.Sessions))

	api := router.Group("/")
	api.Use(identityMiddleware(deps.tokenLookups(), deps.Anonymous, logger))

	auth := api.Group("/auth")
	auth.POST("/anonymous", anonymousTokenHandler(deps.Anonymous))
	auth.POST("/signup", signupHandler(deps.Accounts))
	auth.POST("/login", loginHandler(deps.Accounts, deps.Anonymous, deps.Sessions, logger))
	auth.POST("/logout", logoutHandler(deps.Accounts, deps.Anonymous))
	api.GET("/me", meHandler())

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:id", productDetailHandler(deps.Catalog))

	api.GET("/services", listServicesHandler)
	api.GET("/services/:slug", getServiceHandler)

	shop := api.Group("/")
	shop.Use(requireShopper(deps.Sessions))

	shop.GET("/cart", getCartHandler)
	shop.POST("/cart/items", addCartItemHandler(deps.Catalog))
	shop.PUT("/cart/items/:productId", updateCartItemHandler(deps.Catalog))
	shop.DELETE("/cart/items/:productId", removeCartItemHandler(deps.Catalog))
	shop.DELETE("/cart", clearCartHandler)

	shop.GET("/wishlist", getWishlistHandler)
	shop.POST("/wishlist", addWishlistHandler(deps.Catalog))
	shop.DELETE("/wishlist/:productId", removeWishlistHandler)
	shop.DELETE("/wishlist", clearWishlistHandler)

	shop.POST("/checkout/address", checkoutAddressHandler(deps.Checkout))
	shop.POST("/checkout/payment", checkoutPaymentHandler(deps.Checkout))

	return router, nil
}
