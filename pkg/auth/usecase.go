package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freetrust/backend/pkg/logging"
)

// AuthUseCase describes signup, login and the password-reset flow.
type AuthUseCase interface {
	Signup(ctx context.Context, username, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	users    UserRepository
	tokens   ResetTokenRepository
	hasher   PasswordHasher
	sender   Sender
	baseURL  string
	tokenTTL time.Duration
	log      *logging.Logger
}

// NewAuthService returns the default implementation of AuthUseCase.
// baseURL is the front-end origin the reset link points at; tokenTTL bounds
// the validity window of issued reset tokens.
func NewAuthService(
	users UserRepository,
	tokens ResetTokenRepository,
	hasher PasswordHasher,
	sender Sender,
	baseURL string,
	tokenTTL time.Duration,
	log *logging.Logger,
) AuthUseCase {
	return &authService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		sender:   sender,
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (s *authService) Signup(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	// Best-effort pre-check; the unique index on email closes the race
	// between two concurrent signups.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	// Unknown email and wrong password collapse to the same error so the
	// response does not reveal whether the account exists.
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	value, err := generateToken()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	token := ResetToken{
		Token:     value,
		Email:     user.Email,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, value)
	body := fmt.Sprintf(
		`<p>Click the link below to reset your password:</p><a href="%s">%s</a>`,
		resetLink, resetLink,
	)
	// The issued token is kept even if delivery fails: the user can retry
	// forgot-password, and the token expires on its own.
	if err := s.sender.Send(ctx, user.Email, "Password Reset Request", body); err != nil {
		s.log.Error("reset email delivery failed", "email", user.Email, "error", err)
		return fmt.Errorf("%w: %w", ErrNotificationFailure, err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return ErrMissingFields
	}

	record, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if record.Expired(time.Now().UTC()) {
		return ErrInvalidToken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// Update before consuming the token: if the delete fails, the token is
	// still usable for a retry instead of being burned for nothing.
	if err := s.users.UpdatePassword(ctx, record.Email, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.tokens.Delete(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("consume reset token: %w", err)
	}
	return nil
}
