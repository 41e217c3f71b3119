package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Name != "account-service" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("App.Addr() = %q", cfg.App.Addr())
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d", cfg.Auth.BcryptCost)
	}
	if !cfg.Seed.Enabled {
		t.Error("Seed.Enabled should default to true")
	}
	if cfg.Mail.SMTPPort != "587" {
		t.Errorf("Mail.SMTPPort = %q", cfg.Mail.SMTPPort)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_SESSION_TOKEN_TTL_HOURS", "24")
	t.Setenv("AUTH_PASSWORD_RESET_TTL_MINUTES", "15")
	t.Setenv("SEED_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q", cfg.App.Port)
	}
	if got := cfg.Auth.SessionTokenTTL(); got != 24*time.Hour {
		t.Errorf("SessionTokenTTL() = %v", got)
	}
	if got := cfg.Auth.PasswordResetTTL(); got != 15*time.Minute {
		t.Errorf("PasswordResetTTL() = %v", got)
	}
	if cfg.Seed.Enabled {
		t.Error("Seed.Enabled should be overridden to false")
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d, want default 12", cfg.Auth.BcryptCost)
	}
}

func TestAuthConfig_TTLHelpers(t *testing.T) {
	t.Parallel()

	auth := AuthConfig{
		SessionTokenTTLHours:      168,
		VerificationTokenTTLHours: 48,
		PasswordResetTTLMinutes:   60,
	}
	if auth.SessionTokenTTL() != 168*time.Hour {
		t.Errorf("SessionTokenTTL() = %v", auth.SessionTokenTTL())
	}
	if auth.VerificationTokenTTL() != 48*time.Hour {
		t.Errorf("VerificationTokenTTL() = %v", auth.VerificationTokenTTL())
	}
	if auth.PasswordResetTTL() != time.Hour {
		t.Errorf("PasswordResetTTL() = %v", auth.PasswordResetTTL())
	}
}

func TestAppConfig_RequestTimeout(t *testing.T) {
	t.Parallel()

	if got := (AppConfig{RequestTimeoutSeconds: 30}).RequestTimeout(); got != 30*time.Second {
		t.Errorf("RequestTimeout() = %v", got)
	}
	if got := (AppConfig{RequestTimeoutSeconds: 0}).RequestTimeout(); got != 0 {
		t.Errorf("RequestTimeout() with zero seconds = %v", got)
	}
}
