// Package session tracks who is shopping and owns their in-memory cart, wishlist
// and checkout handoff.
package session

import "context"

// Status is the lifecycle state of a request identity.
type Status int

const (
	// Unresolved means no identity has been established for the request.
	Unresolved Status = iota
	// SignedOut is an anonymous shopper holding an anonymous token.
	SignedOut
	// SignedIn is an authenticated account.
	SignedIn
)

func (s Status) String() string {
	switch s {
	case SignedOut:
		return "signed_out"
	case SignedIn:
		return "signed_in"
	default:
		return "unresolved"
	}
}

// Identity describes the shopper behind a request.
type Identity struct {
	Status      Status
	AccountID   string
	AnonymousID string
	Email       string
	Role        string
	Token       string
}

// Anonymous returns a signed-out identity for the given anonymous id.
func Anonymous(anonymousID, token string) Identity {
	return Identity{Status: SignedOut, AnonymousID: anonymousID, Token: token}
}

// Account returns a signed-in identity.
func Account(accountID, email, role, token string) Identity {
	return Identity{Status: SignedIn, AccountID: accountID, Email: email, Role: role, Token: token}
}

// Resolved reports whether the identity can own shopper state.
func (i Identity) Resolved() bool {
	return i.Owner() != ""
}

// Owner is the registry key for the identity's shopper state.
func (i Identity) Owner() string {
	switch i.Status {
	case SignedIn:
		if i.AccountID != "" {
			return "account:" + i.AccountID
		}
	case SignedOut:
		if i.AnonymousID != "" {
			return "anon:" + i.AnonymousID
		}
	}
	return ""
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, or an Unresolved identity.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return id
	}
	return Identity{Status: Unresolved}
}
