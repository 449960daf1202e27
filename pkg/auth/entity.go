package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ResetToken is a single-use capability authorizing a password reset
// for the referenced email. It is deleted on successful consumption.
type ResetToken struct {
	Token     string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's validity window has passed.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
