package token

import (
	"context"
	"time"
)

// Token kinds.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Token is an opaque bearer token bound to an account.
type Token struct {
	Token     string
	AccountID string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Repository persists account tokens. Get and Delete return domain.ErrNotFound for unknown tokens.
type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	DeleteForAccount(ctx context.Context, accountID string) error
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}
