package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hubex/account-service/internal/domain"
)

// PasswordResetRepository manages the one-to-one reset records. The schema
// enforces a single live record per account; Upsert rotates the token in
// place instead of ever creating a second row.
type PasswordResetRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	GetByAccountEmail(ctx context.Context, email string) (*domain.PasswordReset, error)
	Upsert(ctx context.Context, reset *domain.PasswordReset) error
	// Consume deletes the record matching token and returns it. The
	// single-statement delete is the atomic check-then-act required for
	// concurrent resets: exactly one caller wins, the rest see pgx.ErrNoRows.
	Consume(ctx context.Context, token string) (*domain.PasswordReset, error)
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository constructs the repository.
func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	const query = `
        SELECT pr.id, pr.account_id, a.public_id, pr.token, pr.created_at, pr.updated_at
        FROM password_resets pr
        JOIN accounts a ON a.id = pr.account_id
        WHERE pr.token=$1`
	return r.scanOne(ctx, query, token)
}

func (r *passwordResetRepository) GetByAccountEmail(ctx context.Context, email string) (*domain.PasswordReset, error) {
	const query = `
        SELECT pr.id, pr.account_id, a.public_id, pr.token, pr.created_at, pr.updated_at
        FROM password_resets pr
        JOIN accounts a ON a.id = pr.account_id
        WHERE a.email=$1`
	return r.scanOne(ctx, query, email)
}

func (r *passwordResetRepository) scanOne(ctx context.Context, query string, arg any) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&reset.ID,
		&reset.AccountID,
		&reset.AccountPublicID,
		&reset.Token,
		&reset.CreatedAt,
		&reset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) Upsert(ctx context.Context, reset *domain.PasswordReset) error {
	const query = `
        INSERT INTO password_resets (account_id, token)
        VALUES ($1, $2)
        ON CONFLICT (account_id) DO UPDATE SET token = EXCLUDED.token, updated_at = NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reset.AccountID,
		reset.Token,
	).Scan(&reset.ID, &reset.CreatedAt, &reset.UpdatedAt)
}

func (r *passwordResetRepository) Consume(ctx context.Context, token string) (*domain.PasswordReset, error) {
	const query = `
        DELETE FROM password_resets pr
        USING accounts a
        WHERE pr.token=$1 AND a.id = pr.account_id
        RETURNING pr.id, pr.account_id, a.public_id, pr.token, pr.created_at, pr.updated_at`

	var reset domain.PasswordReset
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&reset.ID,
		&reset.AccountID,
		&reset.AccountPublicID,
		&reset.Token,
		&reset.CreatedAt,
		&reset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reset, nil
}
