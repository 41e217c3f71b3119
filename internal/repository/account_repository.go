package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hubex/account-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, publicID string) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Account, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error)
	List(ctx context.Context, page, size int) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, public_id, first_name, last_name, email, password_hash,
        email_verified, verification_token, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO accounts (public_id, first_name, last_name, email, password_hash,
            email_verified, verification_token)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		account.PublicID,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		account.EmailVerified,
		account.VerificationToken,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return err
	}

	for _, role := range account.Roles {
		const link = `
            INSERT INTO accounts_roles (account_id, role_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, link, account.ID, role.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET first_name=$1, last_name=$2, password_hash=$3, email_verified=$4,
            verification_token=$5, updated_at=NOW()
        WHERE public_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		account.FirstName,
		account.LastName,
		account.PasswordHash,
		account.EmailVerified,
		account.VerificationToken,
		account.PublicID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, publicID string) error {
	const query = `DELETE FROM accounts WHERE public_id=$1`

	cmd, err := r.pool.Exec(ctx, query, publicID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email=$1`, email)
}

func (r *accountRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Account, error) {
	return r.getBy(ctx, `SELECT `+accountColumns+` FROM accounts WHERE public_id=$1`, publicID)
}

func (r *accountRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getBy(ctx, `SELECT `+accountColumns+` FROM accounts WHERE verification_token=$1`, token)
}

func (r *accountRepository) getBy(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.PublicID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&account.EmailVerified,
		&account.VerificationToken,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	roles, err := r.loadRoles(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	account.Roles = roles
	return &account, nil
}

// List returns the zero-indexed page ordered by internal id. Out-of-range
// pages yield an empty slice, not an error.
func (r *accountRepository) List(ctx context.Context, page, size int) ([]domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM accounts
        ORDER BY id
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, size, page*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, size)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.PublicID,
			&account.FirstName,
			&account.LastName,
			&account.Email,
			&account.PasswordHash,
			&account.EmailVerified,
			&account.VerificationToken,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range accounts {
		roles, err := r.loadRoles(ctx, accounts[i].ID)
		if err != nil {
			return nil, err
		}
		accounts[i].Roles = roles
	}
	return accounts, nil
}

func (r *accountRepository) loadRoles(ctx context.Context, accountID int64) ([]domain.Role, error) {
	const query = `
        SELECT r.id, r.name, a.id, a.name
        FROM accounts_roles ar
        JOIN roles r ON r.id = ar.role_id
        LEFT JOIN roles_authorities ra ON ra.role_id = r.id
        LEFT JOIN authorities a ON a.id = ra.authority_id
        WHERE ar.account_id = $1
        ORDER BY r.id, a.id`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var (
			roleID        int64
			roleName      string
			authorityID   *int64
			authorityName *string
		)
		if err := rows.Scan(&roleID, &roleName, &authorityID, &authorityName); err != nil {
			return nil, err
		}

		if len(roles) == 0 || roles[len(roles)-1].ID != roleID {
			roles = append(roles, domain.Role{ID: roleID, Name: roleName})
		}
		if authorityID != nil {
			last := &roles[len(roles)-1]
			last.Authorities = append(last.Authorities, domain.Authority{ID: *authorityID, Name: *authorityName})
		}
	}
	return roles, rows.Err()
}
