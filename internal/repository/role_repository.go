package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hubex/account-service/internal/domain"
)

// RoleRepository manages role and authority persistence.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	EnsureAuthority(ctx context.Context, name string) (*domain.Authority, error)
	Ensure(ctx context.Context, name string, authorities []domain.Authority) (*domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository constructs a Postgres-backed repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `SELECT id, name FROM roles WHERE name=$1`

	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, err
	}

	const authorityQuery = `
        SELECT a.id, a.name
        FROM roles_authorities ra
        JOIN authorities a ON a.id = ra.authority_id
        WHERE ra.role_id = $1
        ORDER BY a.id`

	rows, err := r.pool.Query(ctx, authorityQuery, role.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var authority domain.Authority
		if err := rows.Scan(&authority.ID, &authority.Name); err != nil {
			return nil, err
		}
		role.Authorities = append(role.Authorities, authority)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &role, nil
}

// EnsureAuthority creates the authority if missing and returns it.
func (r *roleRepository) EnsureAuthority(ctx context.Context, name string) (*domain.Authority, error) {
	const query = `
        INSERT INTO authorities (name)
        VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name`

	var authority domain.Authority
	if err := r.pool.QueryRow(ctx, query, name).Scan(&authority.ID, &authority.Name); err != nil {
		return nil, err
	}
	return &authority, nil
}

// Ensure creates the role if missing and links the given authorities.
func (r *roleRepository) Ensure(ctx context.Context, name string, authorities []domain.Authority) (*domain.Role, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO roles (name)
        VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name`

	role := domain.Role{Authorities: authorities}
	if err := tx.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, err
	}

	for _, authority := range authorities {
		const link = `
            INSERT INTO roles_authorities (role_id, authority_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, link, role.ID, authority.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &role, nil
}
