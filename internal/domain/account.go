package domain

import "time"

// Account is the domain model for registered users.
//
// PublicID is the externally visible identifier and is distinct from the
// internal storage key. VerificationToken is set only while the account is
// pending email verification; it is cleared the moment the token is consumed.
type Account struct {
	ID                int64
	PublicID          string
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      string
	EmailVerified     bool
	VerificationToken *string
	Roles             []Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName renders the display name used in outbound mail.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// HasRole reports whether the account carries the named role.
func (a *Account) HasRole(name string) bool {
	for _, role := range a.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}
