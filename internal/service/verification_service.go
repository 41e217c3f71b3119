package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hubex/account-service/internal/auth"
	"github.com/hubex/account-service/internal/config"
	"github.com/hubex/account-service/internal/events"
	"github.com/hubex/account-service/internal/repository"
	apperrors "github.com/hubex/account-service/pkg/util"
)

// VerificationService consumes email verification tokens and moves accounts
// from unverified to verified.
type VerificationService struct {
	accounts        repository.AccountRepository
	codec           *auth.TokenCodec
	dispatcher      events.Dispatcher
	verificationTTL time.Duration
}

// NewVerificationService builds the service.
func NewVerificationService(cfg config.Config, accounts repository.AccountRepository, codec *auth.TokenCodec, dispatcher events.Dispatcher) *VerificationService {
	return &VerificationService{
		accounts:        accounts,
		codec:           codec,
		dispatcher:      dispatcher,
		verificationTTL: cfg.Auth.VerificationTokenTTL(),
	}
}

// VerifyEmail attempts to consume a verification token.
//
// Outcomes: (true, nil) when the token matched and was valid; (false, nil)
// when nothing matched or the token had expired (an expired token is
// re-issued and the email re-sent); (false, err) when the token was forged
// or malformed. A consumed token never matches again, so repeat calls
// return false.
func (s *VerificationService) VerifyEmail(ctx context.Context, token string) (bool, error) {
	account, err := s.accounts.GetByVerificationToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, apperrors.MapError(err)
	}

	expired, err := s.codec.IsExpired(token)
	if err != nil {
		// Forged or corrupt, not merely stale. Callers must be able to
		// tell "never valid" apart from "no longer valid".
		return false, err
	}

	if expired {
		fresh, err := s.codec.Issue(account.PublicID, s.verificationTTL)
		if err != nil {
			return false, apperrors.MapError(err)
		}
		account.VerificationToken = &fresh
		account.EmailVerified = false
		if err := s.accounts.Update(ctx, account); err != nil {
			return false, apperrors.MapError(err)
		}

		s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventVerificationResent,
			AccountID: account.PublicID,
			Timestamp: time.Now(),
			Payload: events.VerificationResentPayload{
				Email:             account.Email,
				FullName:          account.FullName(),
				VerificationToken: fresh,
			},
		})
		return false, nil
	}

	account.VerificationToken = nil
	account.EmailVerified = true
	if err := s.accounts.Update(ctx, account); err != nil {
		return false, apperrors.MapError(err)
	}
	return true, nil
}
