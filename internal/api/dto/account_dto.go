package dto

import (
	"time"

	"github.com/hubex/account-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RenameRequest payload for profile updates; only names are mutable.
type RenameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PasswordResetRequest starts the reset flow.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm trades a reset token for a new password.
type PasswordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StatusResponse is the boolean outcome of the verification/reset endpoints.
// No reason is attached: token and account internals never leak.
type StatusResponse struct {
	Success bool `json:"success"`
}

// AccountResponse is the public projection of an account. The hashed
// credential and the pending verification token are deliberately absent.
type AccountResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Roles         []string  `json:"roles"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAccountResponse copies an account into its wire shape field by field.
func NewAccountResponse(account *domain.Account) AccountResponse {
	roles := make([]string, 0, len(account.Roles))
	for _, role := range account.Roles {
		roles = append(roles, role.Name)
	}
	return AccountResponse{
		ID:            account.PublicID,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
		Roles:         roles,
		CreatedAt:     account.CreatedAt,
	}
}

// NewAccountListResponse maps a page of accounts.
func NewAccountListResponse(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, NewAccountResponse(&accounts[i]))
	}
	return out
}
