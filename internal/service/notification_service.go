package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hubex/account-service/internal/events"
	"github.com/hubex/account-service/internal/mail"
)

// NotificationService bridges account events to outbound mail. It runs on
// the dispatcher's goroutines; every failure here is logged and swallowed.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to the account events that produce mail.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
	n.dispatcher.Subscribe(events.EventVerificationResent, n.handleVerificationResent)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
}

func (n *NotificationService) handleAccountRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountRegisteredPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event_type", string(event.Type)))
		return nil
	}
	n.logger.Info("sending verification email", zap.String("account_id", event.AccountID))
	return n.sender.SendVerificationEmail(ctx, payload.Email, payload.FullName, payload.VerificationToken)
}

func (n *NotificationService) handleVerificationResent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.VerificationResentPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event_type", string(event.Type)))
		return nil
	}
	n.logger.Info("re-sending verification email", zap.String("account_id", event.AccountID))
	return n.sender.SendVerificationEmail(ctx, payload.Email, payload.FullName, payload.VerificationToken)
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event_type", string(event.Type)))
		return nil
	}
	n.logger.Info("sending password reset email", zap.String("account_id", event.AccountID))
	return n.sender.SendPasswordResetEmail(ctx, payload.Email, payload.FullName, payload.ResetToken)
}
