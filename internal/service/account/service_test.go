package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sportmarket/internal/domain"
	tokenrepo "sportmarket/internal/repository/token"
)

// memoryRepo is a lightweight in-memory account repository for tests.
type memoryRepo struct {
	byEmail map[string]domain.Account
}

type memoryTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]domain.Account)}
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := t
	return &clone, nil
}

func (r *memoryTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memoryTokenRepo) DeleteForAccount(_ context.Context, accountID string) error {
	for k, t := range r.tokens {
		if t.AccountID == accountID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *memoryTokenRepo) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for k, t := range r.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) Create(_ context.Context, a domain.Account) (*domain.Account, error) {
	if _, exists := r.byEmail[a.Email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	clone := a
	if clone.ID == "" {
		clone.ID = "acct-" + a.Email
	}
	r.byEmail[clone.Email] = clone
	return &clone, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := r.byEmail[strings.ToLower(email)]; ok {
		clone := a
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func mustSignup(t *testing.T, svc *Service, email, role string) *domain.Account {
	t.Helper()
	a, err := svc.Signup(context.Background(), SignupInput{
		Name:       "Test",
		Email:      email,
		Password:   "Abcdefg1",
		RePassword: "Abcdefg1",
		Role:       role,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return a
}

func TestSignupAndLogin_SucceedsWithTrimmedPassword(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo(), nil)
	ctx := context.Background()

	a, err := svc.Signup(ctx, SignupInput{
		Email:    "User@Example.com",
		Password: " Abcdefg1 ",
		Name:     "T User",
	})
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if a.Email != "user@example.com" || a.Role != domain.RoleUser {
		t.Fatalf("unexpected account %+v", a)
	}

	sess, err := svc.Login(ctx, "user@example.com", "Abcdefg1", "")
	if err != nil {
		t.Fatalf("login failed with trimmed password: %v", err)
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" || sess.AccessToken == sess.RefreshToken {
		t.Fatalf("expected distinct tokens, got %+v", sess)
	}
}

func TestSignup_Validation(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    SignupInput
		field string
	}{
		{"bad email", SignupInput{Email: "nope", Password: "Abcdefg1"}, "email"},
		{"bad role", SignupInput{Email: "a@b.c", Password: "Abcdefg1", Role: "admin"}, "role"},
		{"weak password", SignupInput{Email: "a@b.c", Password: "abc"}, "password"},
	}
	for _, tc := range cases {
		_, err := svc.Signup(ctx, tc.in)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("%s: expected validation error on %s, got %v", tc.name, tc.field, err)
		}
	}

	_, err := svc.Signup(ctx, SignupInput{Email: "a@b.c", Password: "Abcdefg1", RePassword: "Abcdefg2"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo(), nil)
	mustSignup(t, svc, "dup@example.com", "")
	_, err := svc.Signup(context.Background(), SignupInput{Email: "dup@example.com", Password: "Abcdefg1"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestValidatePassword_FailsOnWeakValues(t *testing.T) {
	cases := []struct {
		name string
		pass string
	}{
		{"too short", "Abc1"},
		{"no upper", "abcdefg1"},
		{"no lower", "ABCDEFG1"},
		{"no digit", "Abcdefgh"},
	}
	for _, tc := range cases {
		if err := validatePassword(tc.pass, 8); err == nil {
			t.Fatalf("expected error for case %s", tc.name)
		}
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo(), nil)
	ctx := context.Background()
	mustSignup(t, svc, "user@example.com", "")

	if _, err := svc.Login(ctx, "user@example.com", "wrongpass", ""); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "missing@example.com", "Abcdefg1", ""); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing account, got %v", err)
	}
}

func TestLogin_RoleRules(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo(), nil)
	ctx := context.Background()
	mustSignup(t, svc, "user@example.com", domain.RoleUser)
	mustSignup(t, svc, "coach@example.com", domain.RoleTrainer)
	mustSignup(t, svc, "dojo@example.com", domain.RoleInstitute)

	cases := []struct {
		email, role string
		want        error
	}{
		{"user@example.com", domain.RoleUser, nil},
		{"user@example.com", domain.RoleTrainer, ErrRoleMismatch},
		{"coach@example.com", domain.RoleTrainer, nil},
		{"coach@example.com", domain.RoleUser, nil},
		{"coach@example.com", domain.RoleInstitute, ErrRoleMismatch},
		{"dojo@example.com", domain.RoleInstitute, nil},
		{"dojo@example.com", domain.RoleTrainer, ErrRoleMismatch},
		{"dojo@example.com", "", nil},
	}
	for _, tc := range cases {
		_, err := svc.Login(ctx, tc.email, "Abcdefg1", tc.role)
		if !errors.Is(err, tc.want) {
			t.Fatalf("login %s as %q: expected %v, got %v", tc.email, tc.role, tc.want, err)
		}
	}
}

func TestLogin_UserRoleKeepsAccountRole(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo(), nil)
	ctx := context.Background()
	mustSignup(t, svc, "coach@example.com", domain.RoleTrainer)

	sess, err := svc.Login(ctx, "coach@example.com", "Abcdefg1", domain.RoleUser)
	if err != nil {
		t.Fatalf("trainer login through user role: %v", err)
	}
	if sess.Account.Role != domain.RoleTrainer {
		t.Fatalf("expected session role %q, got %q", domain.RoleTrainer, sess.Account.Role)
	}
}

func TestLookupByToken_AndLogout(t *testing.T) {
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryRepo(), tokens, nil)
	ctx := context.Background()
	created := mustSignup(t, svc, "user@example.com", "")

	sess, err := svc.Login(ctx, "user@example.com", "Abcdefg1", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	got, err := svc.LookupByToken(ctx, sess.AccessToken)
	if err != nil || got.ID != created.ID {
		t.Fatalf("lookup: got %+v err %v", got, err)
	}
	if _, err := svc.LookupByToken(ctx, sess.RefreshToken); err != ErrInvalidToken {
		t.Fatalf("refresh token must not authenticate, got %v", err)
	}

	if err := svc.Logout(ctx, sess.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.LookupByToken(ctx, sess.AccessToken); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
	if err := svc.Logout(ctx, sess.AccessToken); err != nil {
		t.Fatalf("second logout should be a no-op, got %v", err)
	}
}

func TestLookupByToken_Expired(t *testing.T) {
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryRepo(), tokens, nil)
	ctx := context.Background()
	mustSignup(t, svc, "user@example.com", "")

	sess, err := svc.Login(ctx, "user@example.com", "Abcdefg1", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.tokens.now = func() time.Time { return time.Now().Add(svc.accessTTL + time.Minute) }
	if _, err := svc.LookupByToken(ctx, sess.AccessToken); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if _, ok := tokens.tokens[sess.AccessToken]; ok {
		t.Fatalf("expected expired token to be deleted")
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryRepo(), tokens, nil)
	ctx := context.Background()
	mustSignup(t, svc, "user@example.com", "")

	sess, err := svc.Login(ctx, "user@example.com", "Abcdefg1", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Past the access lifetime only the refresh token survives.
	svc.tokens.now = func() time.Time { return time.Now().Add(svc.accessTTL + time.Minute) }
	n, err := svc.PurgeExpiredTokens(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged token, got %d", n)
	}
	if _, ok := tokens.tokens[sess.RefreshToken]; !ok {
		t.Fatalf("expected refresh token to survive")
	}
}
