package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/freetrust/backend/api/http/presenter"
	"github.com/freetrust/backend/pkg/auth"
	"github.com/freetrust/backend/pkg/logging"
)

// requestTimeout bounds store and notification calls for a single request.
const requestTimeout = 5 * time.Second

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *logging.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log *logging.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles user registration.
// @Summary Sign up
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body signupRequest true "signup payload"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	_, err := h.useCase.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return presenter.Error(c, http.StatusBadRequest, "All fields are required.")
		case errors.Is(err, auth.ErrDuplicateEmail):
			return presenter.Error(c, http.StatusBadRequest, "Email already exists!")
		default:
			h.log.Error("signup failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
		}
	}
	return presenter.Success(c, "User created successfully!")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Log in
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	_, err := h.useCase.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return presenter.Error(c, http.StatusBadRequest, "Email and password are required.")
		case errors.Is(err, auth.ErrInvalidCredentials):
			// Same message for unknown email and wrong password.
			return presenter.Error(c, http.StatusBadRequest, "Invalid email or password")
		default:
			h.log.Error("login failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
		}
	}
	return presenter.Success(c, "Login successful")
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token and emails the reset link.
// @Summary Request password reset
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body forgotPasswordRequest true "forgot-password payload"
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.useCase.ForgotPassword(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return presenter.Error(c, http.StatusBadRequest, "Email is required.")
		case errors.Is(err, auth.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "Email not found!")
		case errors.Is(err, auth.ErrNotificationFailure):
			h.log.Error("forgot-password notification failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "Failed to send reset email.")
		default:
			h.log.Error("forgot-password failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
		}
	}
	return presenter.Success(c, "Password reset link sent!")
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword consumes a reset token and sets a new password.
// @Summary Reset password
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body resetPasswordRequest true "reset-password payload"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.useCase.ResetPassword(ctx, req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return presenter.Error(c, http.StatusBadRequest, "Token and password are required.")
		case errors.Is(err, auth.ErrInvalidToken):
			return presenter.Error(c, http.StatusBadRequest, "Invalid or expired token!")
		default:
			h.log.Error("reset-password failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
		}
	}
	return presenter.Success(c, "Password reset successful!")
}
