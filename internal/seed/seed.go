package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sportmarket/internal/domain"
	accountsvc "sportmarket/internal/service/account"
)

// Signupper creates accounts.
type Signupper interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.Account, error)
}

// DemoPassword is shared by every seeded account.
const DemoPassword = "Demo1234"

var demoAccounts = []accountsvc.SignupInput{
	{Name: "Demo Shopper", Email: "shopper@demo.local", Role: domain.RoleUser},
	{Name: "Demo Trainer", Email: "trainer@demo.local", Role: domain.RoleTrainer},
	{Name: "Demo Institute", Email: "institute@demo.local", Role: domain.RoleInstitute},
}

// Apply creates one demo account per role for manual testing. Existing accounts are left alone.
func Apply(ctx context.Context, accounts Signupper, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	created := 0
	for _, in := range demoAccounts {
		in.Password = DemoPassword
		in.RePassword = DemoPassword
		a, err := accounts.Signup(ctx, in)
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Debug("demo account exists", zap.String("email", in.Email))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed account %s: %w", in.Email, err)
		}
		logger.Info("demo account created", zap.String("email", a.Email), zap.String("role", a.Role))
		created++
	}
	return created, nil
}
