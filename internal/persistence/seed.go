package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hubex/account-service/internal/auth"
	"github.com/hubex/account-service/internal/config"
	"github.com/hubex/account-service/internal/domain"
	"github.com/hubex/account-service/internal/repository"
)

// SeedAuthData creates the baseline authorities, roles and the admin account
// on startup. Idempotent: existing rows are left untouched.
func SeedAuthData(ctx context.Context, cfg config.Config, roles repository.RoleRepository, accounts repository.AccountRepository, logger *zap.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	logger.Info("seeding authorities and roles")

	read, err := roles.EnsureAuthority(ctx, domain.AuthorityRead)
	if err != nil {
		return err
	}
	write, err := roles.EnsureAuthority(ctx, domain.AuthorityWrite)
	if err != nil {
		return err
	}
	del, err := roles.EnsureAuthority(ctx, domain.AuthorityDelete)
	if err != nil {
		return err
	}

	if _, err := roles.Ensure(ctx, domain.RoleUser, []domain.Authority{*read, *write}); err != nil {
		return err
	}
	adminRole, err := roles.Ensure(ctx, domain.RoleAdmin, []domain.Authority{*read, *write, *del})
	if err != nil {
		return err
	}

	if _, err := accounts.GetByEmail(ctx, cfg.Seed.AdminEmail); err == nil {
		logger.Info("admin account already present")
		return nil
	} else if err != pgx.ErrNoRows {
		return err
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.Account{
		PublicID:      uuid.NewString(),
		FirstName:     cfg.Seed.AdminFirst,
		LastName:      cfg.Seed.AdminLast,
		Email:         cfg.Seed.AdminEmail,
		PasswordHash:  hash,
		EmailVerified: true,
		Roles:         []domain.Role{*adminRole},
	}
	if err := accounts.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("admin account created", zap.String("email", admin.Email))
	return nil
}
