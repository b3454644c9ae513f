package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportmarket/internal/domain"
	accountsvc "sportmarket/internal/service/account"
	"sportmarket/internal/session"
)

type signupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RePassword string `json:"rePassword"`
	Role       string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	AnonymousID  string          `json:"anonymousId,omitempty"`
	Account      *domain.Account `json:"account,omitempty"`
	CartAdopted  bool            `json:"cartAdopted,omitempty"`
}

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func anonymousTokenHandler(anon AnonymousService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, anonID, err := anon.Issue(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   anon.AccessTTLSeconds(),
			AnonymousID: anonID,
		})
	}
}

func signupHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password are required")
			return
		}
		a, err := accounts.Signup(c.Request.Context(), accountsvc.SignupInput{
			Name:       req.Name,
			Email:      req.Email,
			Password:   req.Password,
			RePassword: req.RePassword,
			Role:       req.Role,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"account": a})
	}
}

// loginHandler issues account tokens. When the request carries an anonymous token, the
// anonymous shopper's cart and wishlist move to the account and the anonymous token is revoked.
func loginHandler(accounts AccountService, anon AnonymousService, reg *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password are required")
			return
		}
		ctx := c.Request.Context()
		sess, err := accounts.Login(ctx, req.Email, req.Password, req.Role)
		if err != nil {
			writeError(c, err)
			return
		}

		resp := tokenResponse{
			AccessToken:  sess.AccessToken,
			RefreshToken: sess.RefreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    accounts.AccessTTLSeconds(),
			Account:      sess.Account,
		}
		if anonToken := c.GetHeader(anonymousTokenHeader); anonToken != "" {
			if anonID, err := anon.LookupByToken(ctx, anonToken); err == nil {
				from := session.Anonymous(anonID, anonToken).Owner()
				to := session.Account(sess.Account.ID, sess.Account.Email, sess.Account.Role, sess.AccessToken).Owner()
				resp.CartAdopted = reg.Adopt(from, to)
				anon.Revoke(ctx, anonToken)
				logger.Debug("anonymous shopper signed in", zap.String("account_id", sess.Account.ID), zap.Bool("adopted", resp.CartAdopted))
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

func logoutHandler(accounts AccountService, anon AnonymousService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.FromContext(c.Request.Context())
		switch id.Status {
		case session.SignedIn:
			if err := accounts.Logout(c.Request.Context(), id.Token); err != nil {
				writeError(c, err)
				return
			}
		case session.SignedOut:
			anon.Revoke(c.Request.Context(), id.Token)
		default:
			writeError(c, errUnauthorized)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.FromContext(c.Request.Context())
		if id.Status != session.SignedIn {
			writeError(c, errUnauthorized)
			return
		}
		c.JSON(http.StatusOK, meResponse{ID: id.AccountID, Email: id.Email, Role: id.Role})
	}
}
