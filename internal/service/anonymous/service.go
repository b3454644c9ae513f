// Package anonymous issues bearer tokens to shoppers who browse without an account,
// so their cart and wishlist survive between requests.
package anonymous

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

// New returns a Service whose tokens live for ttl. A non-positive ttl means three hours.
func New(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 3 * time.Hour
	}
	return &Service{tokens: newTokenManager(), ttl: ttl}
}

// Issue mints an anonymous id and a token bound to it.
func (s *Service) Issue(_ context.Context) (token, anonymousID string, err error) {
	anonymousID = uuid.NewString()
	token, err = s.tokens.issue(anonymousID, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, anonymousID, nil
}

func (s *Service) LookupByToken(_ context.Context, token string) (string, error) {
	id, ok := s.tokens.lookup(token)
	if !ok {
		return "", ErrInvalidToken
	}
	return id, nil
}

// Revoke forgets token. It is called once an anonymous shopper signs in.
func (s *Service) Revoke(_ context.Context, token string) {
	s.tokens.revoke(token)
}

// Sweep drops expired tokens and returns how many were removed.
func (s *Service) Sweep() int {
	return s.tokens.sweep()
}

// Outstanding is the number of tokens currently held, expired ones included until swept.
func (s *Service) Outstanding() int {
	return s.tokens.len()
}

func (s *Service) AccessTTLSeconds() int {
	return int(s.ttl.Seconds())
}
