package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sportmarket/internal/domain"
	acctrepo "sportmarket/internal/repository/account"
	tokenrepo "sportmarket/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrRoleMismatch is returned when a trainer or institute login hits an account of another role.
	ErrRoleMismatch = errors.New("account is not registered with this role")
	// ErrPasswordMismatch is returned when password and re-password differ at signup.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ValidationError reports a signup field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Service handles account signup/login flows.
type Service struct {
	repo        acctrepo.Repository
	tokens      *tokenManager
	logger      *zap.Logger
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo acctrepo.Repository, tokens tokenrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		logger:      logger,
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Role       string `json:"role"`
}

// Session is the result of a successful login.
type Session struct {
	Account      *domain.Account
	AccessToken  string
	RefreshToken string
}

// Signup registers a new account. An empty role defaults to user.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Account, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "valid email required"}
	}
	role := strings.TrimSpace(strings.ToLower(in.Role))
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", in.Role)}
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, &ValidationError{Field: "password", Message: err.Error()}
	}
	if in.RePassword != "" && strings.TrimSpace(in.RePassword) != password {
		return nil, ErrPasswordMismatch
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.Create(ctx, domain.Account{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", zap.String("account_id", a.ID), zap.String("role", a.Role))
	return a, nil
}

// Login validates credentials for the requested role and issues tokens.
// Trainer and institute logins require an account of the same role. A user login
// accepts any account that is neither.
func (s *Service) Login(ctx context.Context, email, password, role string) (*Session, error) {
	password = strings.TrimSpace(password)
	a, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !roleAllows(strings.TrimSpace(strings.ToLower(role)), a.Role) {
		return nil, ErrRoleMismatch
	}

	access, err := s.tokens.Issue(ctx, a.ID, tokenrepo.KindAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(ctx, a.ID, tokenrepo.KindRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Account: a, AccessToken: access, RefreshToken: refresh}, nil
}

// LookupByToken returns the account bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Account, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	a, err := s.repo.GetByID(ctx, meta.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return a, nil
}

// Logout revokes the access token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// PurgeExpiredTokens removes expired access and refresh tokens from storage.
func (s *Service) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokens.Purge(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	if n > 0 {
		s.logger.Info("expired tokens purged", zap.Int64("count", n))
	}
	return n, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

// roleAllows admits any account through a user login; the session carries the actual role.
// Trainer and institute logins must match the account's role.
func roleAllows(requested, actual string) bool {
	switch requested {
	case domain.RoleTrainer, domain.RoleInstitute:
		return actual == requested
	default:
		return true
	}
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
