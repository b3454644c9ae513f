// Package firebase resolves accounts from Firebase ID tokens.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"sportmarket/internal/domain"
)

// ErrInvalidToken is returned for ID tokens Firebase rejects.
var ErrInvalidToken = errors.New("invalid firebase id token")

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Verifier looks up accounts by verified Firebase ID token.
type Verifier struct {
	client tokenVerifier
	logger *zap.Logger
}

// New initialises the Firebase Admin SDK from a service account file.
func New(ctx context.Context, credentialsFile string, logger *zap.Logger) (*Verifier, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("service account json not found: %s", credentialsFile)
	}
	app, err := fb.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return newVerifier(client, logger), nil
}

func newVerifier(client tokenVerifier, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{client: client, logger: logger}
}

// LookupByToken verifies idToken and maps its claims to an account.
// The role claim defaults to user when absent or unknown.
func (v *Verifier) LookupByToken(ctx context.Context, idToken string) (*domain.Account, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.logger.Debug("firebase token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}
	a := &domain.Account{ID: tok.UID, Role: domain.RoleUser}
	if email, ok := tok.Claims["email"].(string); ok {
		a.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		a.Name = name
	}
	if role, ok := tok.Claims["role"].(string); ok && domain.ValidRole(role) {
		a.Role = role
	}
	return a, nil
}
