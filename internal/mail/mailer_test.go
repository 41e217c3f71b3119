package mail

import (
	"strings"
	"testing"

	"github.com/hubex/account-service/internal/config"
)

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		From:     "noreply@hubex.io",
		FromName: "Hubex",
		BaseURL:  "https://accounts.hubex.io/",
		ResetURL: "https://accounts.hubex.io/password-reset",
	}
}

func TestComposer_Verification(t *testing.T) {
	t.Parallel()

	c := composer{cfg: testMailConfig()}
	msg := c.verification("jamie@b.com", "Jamie Doe", "tok-123")

	if msg.To != "jamie@b.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.Subject != "Please verify your registration" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	wantURL := "https://accounts.hubex.io/accounts/email-verification?token=tok-123"
	if !strings.Contains(msg.Body, wantURL) {
		t.Errorf("body missing verification link %q:\n%s", wantURL, msg.Body)
	}
	if !strings.Contains(msg.Body, "Dear Jamie Doe,") {
		t.Errorf("body missing recipient name:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "Hubex") {
		t.Errorf("body missing sender name:\n%s", msg.Body)
	}
	if strings.Contains(msg.Body, "[[") {
		t.Errorf("unreplaced placeholder in body:\n%s", msg.Body)
	}
}

func TestComposer_PasswordReset(t *testing.T) {
	t.Parallel()

	c := composer{cfg: testMailConfig()}
	msg := c.passwordReset("jamie@b.com", "Jamie Doe", "tok-456")

	if msg.Subject != "Password reset" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	wantURL := "https://accounts.hubex.io/password-reset?token=tok-456"
	if !strings.Contains(msg.Body, wantURL) {
		t.Errorf("body missing reset link %q:\n%s", wantURL, msg.Body)
	}
	if strings.Contains(msg.Body, "[[") {
		t.Errorf("unreplaced placeholder in body:\n%s", msg.Body)
	}
}

func TestNewSender_SelectsByConfig(t *testing.T) {
	t.Parallel()

	cfg := testMailConfig()
	if _, ok := NewSender(cfg, nil).(*LogSender); !ok {
		t.Error("empty SMTP host should produce the log sender")
	}

	cfg.SMTPHost = "smtp.hubex.io"
	if _, ok := NewSender(cfg, nil).(*SMTPSender); !ok {
		t.Error("configured SMTP host should produce the SMTP sender")
	}
}
