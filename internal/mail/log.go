package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/hubex/account-service/internal/config"
)

// LogSender logs messages instead of delivering them. Used in development
// when no SMTP relay is configured.
type LogSender struct {
	logger   *zap.Logger
	composer composer
}

// NewLogSender constructs the sender.
func NewLogSender(cfg config.MailConfig, logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger, composer: composer{cfg: cfg}}
}

// SendVerificationEmail logs the verification message.
func (s *LogSender) SendVerificationEmail(_ context.Context, to, fullName, token string) error {
	msg := s.composer.verification(to, fullName, token)
	s.logger.Info("verification email (not sent, no SMTP host)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// SendPasswordResetEmail logs the reset message.
func (s *LogSender) SendPasswordResetEmail(_ context.Context, to, fullName, token string) error {
	msg := s.composer.passwordReset(to, fullName, token)
	s.logger.Info("password reset email (not sent, no SMTP host)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// NewSender picks the SMTP sender when a host is configured, the log sender
// otherwise.
func NewSender(cfg config.MailConfig, logger *zap.Logger) Sender {
	if cfg.SMTPHost == "" {
		return NewLogSender(cfg, logger)
	}
	return NewSMTPSender(cfg)
}
