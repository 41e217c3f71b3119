package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered      EventType = "account_registered"
	EventVerificationResent     EventType = "verification_resent"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventPasswordChanged        EventType = "password_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload carries everything the mail worker needs to
// compose the verification message without another storage round-trip.
type AccountRegisteredPayload struct {
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	VerificationToken string `json:"verification_token"`
}

// VerificationResentPayload is emitted when an expired token is re-issued.
type VerificationResentPayload struct {
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	VerificationToken string `json:"verification_token"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	ResetToken string `json:"reset_token"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	Email string `json:"email"`
}
