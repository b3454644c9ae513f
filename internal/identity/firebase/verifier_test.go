package firebase

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"

	"sportmarket/internal/domain"
)

type stubClient struct {
	tokens map[string]*fbauth.Token
}

func (s stubClient) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	if t, ok := s.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

func TestLookupByToken_MapsClaims(t *testing.T) {
	v := newVerifier(stubClient{tokens: map[string]*fbauth.Token{
		"good": {UID: "uid-1", Claims: map[string]interface{}{"email": "coach@example.com", "role": "trainer", "name": "Coach"}},
		"bare": {UID: "uid-2", Claims: map[string]interface{}{"role": "admin"}},
	}}, nil)

	a, err := v.LookupByToken(context.Background(), "good")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if a.ID != "uid-1" || a.Email != "coach@example.com" || a.Role != domain.RoleTrainer || a.Name != "Coach" {
		t.Fatalf("unexpected account %+v", a)
	}

	a, err = v.LookupByToken(context.Background(), "bare")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if a.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", a.Role)
	}
}

func TestLookupByToken_Rejected(t *testing.T) {
	v := newVerifier(stubClient{}, nil)
	if _, err := v.LookupByToken(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	if _, err := New(context.Background(), "/does/not/exist.json", nil); err == nil {
		t.Fatalf("expected error for missing credentials file")
	}
}
