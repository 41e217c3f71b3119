package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hubex/account-service/internal/auth"
	"github.com/hubex/account-service/internal/config"
	"github.com/hubex/account-service/internal/domain"
	"github.com/hubex/account-service/internal/events"
	"github.com/hubex/account-service/internal/repository"
	apperrors "github.com/hubex/account-service/pkg/util"
)

// AccountService governs the account lifecycle: registration, profile edits,
// deletion and listing. A new account starts unverified with a pending
// verification token; the verification flow moves it to verified.
type AccountService struct {
	accounts        repository.AccountRepository
	roles           repository.RoleRepository
	codec           *auth.TokenCodec
	dispatcher      events.Dispatcher
	bcryptCost      int
	sessionTTL      time.Duration
	verificationTTL time.Duration
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	RoleRepo    repository.RoleRepository
	Codec       *auth.TokenCodec
	Dispatcher  events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:        deps.AccountRepo,
		roles:           deps.RoleRepo,
		codec:           deps.Codec,
		dispatcher:      deps.Dispatcher,
		bcryptCost:      cfg.Auth.BcryptCost,
		sessionTTL:      cfg.Auth.SessionTokenTTL(),
		verificationTTL: cfg.Auth.VerificationTokenTTL(),
	}
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Roles     []string
}

// Register creates a new unverified account. The verification email is
// dispatched asynchronously; a dispatch failure never fails registration.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail(input.Email)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	publicID := uuid.NewString()
	verificationToken, err := s.codec.Issue(publicID, s.verificationTTL)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	roles, err := s.resolveRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		PublicID:          publicID,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		PasswordHash:      hash,
		EmailVerified:     false,
		VerificationToken: &verificationToken,
		Roles:             roles,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRegistered,
		AccountID: account.PublicID,
		Timestamp: time.Now(),
		Payload: events.AccountRegisteredPayload{
			Email:             account.Email,
			FullName:          account.FullName(),
			VerificationToken: verificationToken,
		},
	})

	return account, nil
}

// resolveRoles maps role names to stored roles, dropping unknown names.
// Every account ends up with at least the default user role.
func (s *AccountService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		names = []string{domain.RoleUser}
	}

	var roles []domain.Role
	for _, name := range names {
		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, apperrors.MapError(err)
		}
		roles = append(roles, *role)
	}

	if len(roles) == 0 {
		role, err := s.roles.GetByName(ctx, domain.RoleUser)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// Login authenticates by email and password and issues a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	token, err := s.codec.Issue(account.PublicID, s.sessionTTL)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return account, token, expiresAt, nil
}

// GetByPublicID fetches a single account.
func (s *AccountService) GetByPublicID(ctx context.Context, publicID string) (*domain.Account, error) {
	account, err := s.accounts.GetByPublicID(ctx, publicID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"public_id": publicID})
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// GetByEmail fetches a single account by email.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// Rename updates the mutable name fields. Email and roles are immutable here.
func (s *AccountService) Rename(ctx context.Context, publicID, firstName, lastName string) (*domain.Account, error) {
	account, err := s.accounts.GetByPublicID(ctx, publicID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"public_id": publicID})
		}
		return nil, apperrors.MapError(err)
	}

	account.FirstName = firstName
	account.LastName = lastName
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// Delete removes the account and, via the schema, its role links and any
// live password reset record.
func (s *AccountService) Delete(ctx context.Context, publicID string) error {
	if err := s.accounts.Delete(ctx, publicID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("account", map[string]any{"public_id": publicID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

const defaultPageSize = 25

// List returns the zero-indexed page of accounts in storage order.
func (s *AccountService) List(ctx context.Context, page, size int) ([]domain.Account, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}

	accounts, err := s.accounts.List(ctx, page, size)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return accounts, nil
}
