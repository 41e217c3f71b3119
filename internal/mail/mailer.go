package mail

import (
	"context"
	"strings"

	"github.com/hubex/account-service/internal/config"
)

// Sender delivers the two transactional messages the account flows produce.
// Failures are the caller's to log; the flows themselves never fail on them.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, fullName, token string) error
	SendPasswordResetEmail(ctx context.Context, to, fullName, token string) error
}

// message is a composed outbound email.
type message struct {
	To      string
	Subject string
	Body    string
}

const verificationTemplate = `Dear [[name]],<br>
Please click the link below to verify your registration:<br>
<h3><a href="[[URL]]" target="_self">VERIFY</a></h3>
Thank you,<br>
[[sender]]`

const passwordResetTemplate = `Dear [[name]],<br>
Please click the link below to reset your password:<br>
<h3><a href="[[URL]]" target="_self">RESET PASSWORD</a></h3>
Thank you,<br>
[[sender]]`

// composer renders message bodies from config-derived links.
type composer struct {
	cfg config.MailConfig
}

func (c composer) verification(to, fullName, token string) message {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/accounts/email-verification?token=" + token
	return message{
		To:      to,
		Subject: "Please verify your registration",
		Body:    c.render(verificationTemplate, fullName, url),
	}
}

func (c composer) passwordReset(to, fullName, token string) message {
	url := c.cfg.ResetURL + "?token=" + token
	return message{
		To:      to,
		Subject: "Password reset",
		Body:    c.render(passwordResetTemplate, fullName, url),
	}
}

func (c composer) render(template, fullName, url string) string {
	return strings.NewReplacer(
		"[[name]]", fullName,
		"[[URL]]", url,
		"[[sender]]", c.cfg.FromName,
	).Replace(template)
}
