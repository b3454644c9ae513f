package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportmarket/internal/identity/firebase"
	accountsvc "sportmarket/internal/service/account"
	"sportmarket/internal/service/anonymous"
	"sportmarket/internal/session"
)

const (
	anonymousTokenHeader = "X-Anonymous-Token"
	shopperKey           = "shopper"
)

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("http request", fields...)
			return
		}
		logger.Info("http request", fields...)
	}
}

// identityMiddleware resolves the bearer token into a session.Identity on the request context.
// Anonymous tokens are checked first since they never leave memory.
func identityMiddleware(accounts TokenLookup, anon AnonymousService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		id, err := resolveIdentity(c.Request.Context(), token, accounts, anon)
		if err != nil {
			logger.Error("resolve identity", zap.Error(err))
			writeError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func resolveIdentity(ctx context.Context, token string, accounts TokenLookup, anon AnonymousService) (session.Identity, error) {
	if token == "" {
		return session.Identity{Status: session.Unresolved}, nil
	}
	if anonID, err := anon.LookupByToken(ctx, token); err == nil {
		return session.Anonymous(anonID, token), nil
	}
	a, err := accounts.LookupByToken(ctx, token)
	if err != nil {
		if isInvalidToken(err) {
			return session.Identity{Status: session.Unresolved}, nil
		}
		return session.Identity{}, err
	}
	return session.Account(a.ID, a.Email, a.Role, token), nil
}

func isInvalidToken(err error) bool {
	return errors.Is(err, accountsvc.ErrInvalidToken) ||
		errors.Is(err, firebase.ErrInvalidToken) ||
		errors.Is(err, anonymous.ErrInvalidToken)
}

// requireShopper rejects unresolved identities and attaches the caller's shopper state.
func requireShopper(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper, ok := reg.For(session.FromContext(c.Request.Context()))
		if !ok {
			writeError(c, errUnauthorized)
			c.Abort()
			return
		}
		c.Set(shopperKey, shopper)
		c.Next()
	}
}

func shopperFrom(c *gin.Context) *session.Shopper {
	return c.MustGet(shopperKey).(*session.Shopper)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
