// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"archive/config"
	deliverycontext "archive/internal/delivery/context"
	"archive/internal/delivery/http/response"
	"archive/internal/domain/entity"
	"archive/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	verifiedPage     = `<html><body><h1>Email verified</h1><p>Your account is active. You can log in now.</p></body></html>`
	verifyFailedPage = `<html><body><h1>Verification failed</h1><p>The link is invalid or has expired.</p></body></html>`
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc         usecase.AccountUsecase
	logger     *slog.Logger
	cookieName string
	sessionTTL time.Duration
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger, cfg *config.Config) *AccountHandler {
	return &AccountHandler{
		uc:         uc,
		logger:     logger,
		cookieName: cfg.Session.CookieName,
		sessionTTL: cfg.Session.TTL,
	}
}

// --- Request DTOs ---

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Identity, "Registered, check your inbox to verify your email")
}

// Login handles the login request and sets the session cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    output.SessionHandle,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, output.Identity, "Login successful")
}

// VerifyEmail handles the verification link from the signup mail. It is a
// browser-facing GET, so it answers with a small HTML page rather than JSON.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	email := c.QueryParam("email")
	code := c.QueryParam("code")
	if email == "" || code == "" {
		return c.HTML(http.StatusBadRequest, verifyFailedPage)
	}

	if err := h.uc.VerifyEmail(c.Request().Context(), usecase.VerifyEmailInput{
		Email: email,
		Code:  code,
	}); err != nil {
		return c.HTML(http.StatusUnauthorized, verifyFailedPage)
	}

	return c.HTML(http.StatusOK, verifiedPage)
}

// ForgotPassword handles the password reset request.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset request input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RequestPasswordReset(c.Request().Context(), usecase.RequestPasswordResetInput{
		Email: req.Email,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reset link sent, check your inbox")
}

// ResetPassword handles the completion of a password reset.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.CompletePasswordReset(c.Request().Context(), usecase.CompletePasswordResetInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated, you can log in now")
}

// CurrentAccount returns the identity bound to the session cookie.
// The session middleware has already resolved it.
func (h *AccountHandler) CurrentAccount(c echo.Context) error {
	identity, ok := c.Get(string(deliverycontext.KeyIdentity)).(*entity.Identity)
	if !ok {
		return response.Unauthorized(c, "SESSION_NOT_FOUND", "not logged in")
	}

	return response.Success(c, http.StatusOK, identity, "")
}

// Logout invalidates the session and clears the cookie. Logging out without
// a session is not an error.
func (h *AccountHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return errors.WithStack(err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
