// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"archive/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// VerifyEmailInput carries the email/code pair from a verification link.
type VerifyEmailInput struct {
	Email string
	Code  string
}

// RequestPasswordResetInput identifies the account asking for a reset.
type RequestPasswordResetInput struct {
	Email string
}

// CompletePasswordResetInput carries the reset token and the new password.
type CompletePasswordResetInput struct {
	Email       string
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public identity.
type RegisterOutput struct {
	Identity entity.Identity
}

// LoginOutput returns the session handle and identity after a successful login.
type LoginOutput struct {
	SessionHandle string
	Identity      entity.Identity
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	VerifyEmail(ctx context.Context, input VerifyEmailInput) error
	RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) error
	CompletePasswordReset(ctx context.Context, input CompletePasswordResetInput) error
	CurrentAccount(ctx context.Context, sessionHandle string) (*entity.Identity, error)
	Logout(ctx context.Context, sessionHandle string) error
}
