package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hubex/account-service/internal/auth"
	"github.com/hubex/account-service/internal/config"
	"github.com/hubex/account-service/internal/domain"
	"github.com/hubex/account-service/internal/events"
	"github.com/hubex/account-service/internal/repository"
)

// PasswordResetService runs the two-step reset flow: request a short-lived
// token bound to an account, then trade it exactly once for a new password.
// Both steps fail closed with a bare boolean so callers cannot learn which
// emails are registered or why a token was rejected.
type PasswordResetService struct {
	accounts   repository.AccountRepository
	resets     repository.PasswordResetRepository
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// PasswordResetDependencies bundles collaborators for the reset service.
type PasswordResetDependencies struct {
	AccountRepo repository.AccountRepository
	ResetRepo   repository.PasswordResetRepository
	Codec       *auth.TokenCodec
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewPasswordResetService builds the service.
func NewPasswordResetService(cfg config.Config, deps PasswordResetDependencies) *PasswordResetService {
	return &PasswordResetService{
		accounts:   deps.AccountRepo,
		resets:     deps.ResetRepo,
		codec:      deps.Codec,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   cfg.Auth.PasswordResetTTL(),
	}
}

// RequestReset mints a reset token for the account registered under email.
// An existing live record is rotated in place; there is never more than one
// live record per account. Returns false when the email is unknown or any
// step fails.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) bool {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Error("reset request account lookup failed", zap.Error(err))
		}
		return false
	}

	token, err := s.codec.Issue(account.PublicID, s.resetTTL)
	if err != nil {
		s.logger.Error("reset token mint failed", zap.Error(err))
		return false
	}

	reset, err := s.resets.GetByAccountEmail(ctx, email)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Error("reset record lookup failed", zap.Error(err))
			return false
		}
		reset = &domain.PasswordReset{
			AccountID:       account.ID,
			AccountPublicID: account.PublicID,
		}
	}
	reset.Token = token

	if err := s.resets.Upsert(ctx, reset); err != nil {
		s.logger.Error("reset record save failed", zap.Error(err))
		return false
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPasswordResetRequested,
		AccountID: account.PublicID,
		Timestamp: time.Now(),
		Payload: events.PasswordResetRequestedPayload{
			Email:      account.Email,
			FullName:   account.FullName(),
			ResetToken: token,
		},
	})
	return true
}

// ResetPassword consumes a reset token and rotates the stored credential.
//
// The token is rejected (false) when expired, forged, malformed, or when no
// record matches it. A matching record is consumed atomically before the
// credential is touched, so concurrent calls race safely: one wins, the rest
// see no record. The record stays consumed even if a later step fails.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) bool {
	expired, err := s.codec.IsExpired(token)
	if err != nil {
		// Signature or decode failure on the reset path fails closed
		// like expiry; the warn log keeps forged tokens visible.
		s.logger.Warn("reset token rejected", zap.Error(err))
		return false
	}
	if expired {
		return false
	}

	reset, err := s.resets.Consume(ctx, token)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Error("reset record consume failed", zap.Error(err))
		}
		return false
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return false
	}

	account, err := s.accounts.GetByPublicID(ctx, reset.AccountPublicID)
	if err != nil {
		s.logger.Error("reset account lookup failed", zap.Error(err))
		return false
	}

	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		s.logger.Error("password update failed", zap.Error(err))
		return false
	}

	// Sanity check: the stored digest must round-trip against the new
	// plaintext before we report success.
	stored, err := s.accounts.GetByPublicID(ctx, reset.AccountPublicID)
	if err != nil {
		s.logger.Error("reset verification lookup failed", zap.Error(err))
		return false
	}
	if !auth.PasswordMatches(stored.PasswordHash, newPassword) {
		s.logger.Error("stored credential does not match new password",
			zap.String("account_id", account.PublicID))
		return false
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPasswordChanged,
		AccountID: account.PublicID,
		Timestamp: time.Now(),
		Payload:   events.PasswordChangedPayload{Email: account.Email},
	})
	return true
}
