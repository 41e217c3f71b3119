package domain

import "time"

// PasswordReset is the single live reset request bound to an account.
// The unique account binding is enforced by the store; requesting a new
// reset rotates Token in place rather than creating a second row.
type PasswordReset struct {
	ID              int64
	AccountID       int64
	AccountPublicID string
	Token           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
