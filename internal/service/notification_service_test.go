package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hubex/account-service/internal/events"
)

type recordingSender struct {
	mu            sync.Mutex
	verifications []string
	resets        []string
	fail          bool
}

func (s *recordingSender) SendVerificationEmail(_ context.Context, to, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("relay unavailable")
	}
	s.verifications = append(s.verifications, to)
	return nil
}

func (s *recordingSender) SendPasswordResetEmail(_ context.Context, to, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("relay unavailable")
	}
	s.resets = append(s.resets, to)
	return nil
}

func TestNotificationService_RoutesEventsToSender(t *testing.T) {
	t.Parallel()

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	sender := &recordingSender{}
	NewNotificationService(dispatcher, sender, zap.NewNop()).RegisterHandlers()

	dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRegistered,
		AccountID: "pub-1",
		Timestamp: time.Now(),
		Payload: events.AccountRegisteredPayload{
			Email:             "new@b.com",
			FullName:          "Jamie Doe",
			VerificationToken: "tok",
		},
	})
	dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPasswordResetRequested,
		AccountID: "pub-1",
		Timestamp: time.Now(),
		Payload: events.PasswordResetRequestedPayload{
			Email:      "new@b.com",
			FullName:   "Jamie Doe",
			ResetToken: "rtok",
		},
	})
	dispatcher.Wait()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Equal(t, []string{"new@b.com"}, sender.verifications)
	require.Equal(t, []string{"new@b.com"}, sender.resets)
}

func TestNotificationService_SenderFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	sender := &recordingSender{fail: true}
	NewNotificationService(dispatcher, sender, zap.NewNop()).RegisterHandlers()

	// Publish never surfaces handler errors to the caller.
	dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventVerificationResent,
		AccountID: "pub-1",
		Timestamp: time.Now(),
		Payload: events.VerificationResentPayload{
			Email:             "new@b.com",
			FullName:          "Jamie Doe",
			VerificationToken: "tok",
		},
	})
	dispatcher.Wait()
}
