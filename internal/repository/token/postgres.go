package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sportmarket/internal/domain"
)

const uniqueViolation = "23505"

// Postgres stores tokens in the tokens table created by migration 0002.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{pool: pool, logger: logger.Named("tokens")}
}

func (r *Postgres) Create(ctx context.Context, t Token) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tokens (token, account_id, kind, expires_at) VALUES ($1, $2::uuid, $3, $4)`,
		t.Token, t.AccountID, t.Kind, t.ExpiresAt,
	)
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return domain.ErrAlreadyExists
	default:
		return fmt.Errorf("insert token: %w", err)
	}
}

func (r *Postgres) Get(ctx context.Context, token string) (*Token, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT token, account_id::text, kind, expires_at, created_at FROM tokens WHERE token = $1`,
		token,
	)
	var t Token
	err := row.Scan(&t.Token, &t.AccountID, &t.Kind, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.logger.Error("get token", zap.Error(err))
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}

func (r *Postgres) Delete(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Postgres) DeleteForAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE account_id = $1::uuid`, accountID)
	if err != nil {
		return fmt.Errorf("delete account tokens: %w", err)
	}
	r.logger.Debug("account tokens revoked", zap.String("account_id", accountID), zap.Int64("rows", tag.RowsAffected()))
	return nil
}

// PurgeExpired deletes every token that expired before the given time.
func (r *Postgres) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
