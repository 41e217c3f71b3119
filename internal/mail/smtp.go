package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/hubex/account-service/internal/config"
)

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	cfg      config.MailConfig
	composer composer
}

// NewSMTPSender constructs the sender.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, composer: composer{cfg: cfg}}
}

// SendVerificationEmail sends the registration verification message.
func (s *SMTPSender) SendVerificationEmail(_ context.Context, to, fullName, token string) error {
	return s.send(s.composer.verification(to, fullName, token))
}

// SendPasswordResetEmail sends the password reset message.
func (s *SMTPSender) SendPasswordResetEmail(_ context.Context, to, fullName, token string) error {
	return s.send(s.composer.passwordReset(to, fullName, token))
}

func (s *SMTPSender) send(msg message) error {
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	addr := net.JoinHostPort(s.cfg.SMTPHost, s.cfg.SMTPPort)
	payload := s.encode(msg)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) encode(msg message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
