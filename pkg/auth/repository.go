package auth

import (
	"context"
	"errors"
)

// Common errors used by repositories/use cases
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrNotificationFailure = errors.New("failed to send notification")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// ResetTokenRepository persists password-reset tokens. The store is the
// authority on the single-use invariant: Delete must report ErrNotFound
// when the token is already gone so a concurrent second reset fails.
type ResetTokenRepository interface {
	Create(ctx context.Context, token ResetToken) error
	GetByToken(ctx context.Context, token string) (ResetToken, error)
	Delete(ctx context.Context, token string) error
}
