// Package errors defines the application error taxonomy. Every failure that
// crosses the usecase boundary is one of these values (possibly wrapped), so
// the delivery layer never sees raw storage or driver errors.
package errors

import (
	"net/http"

	"archive/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types. The messages are deliberately generic: apart from
// the unverified-login case, a caller must not be able to tell which
// precondition failed (existing email vs. wrong password vs. wrong token).
var (
	// Validation: rejected before storage is touched.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"missing or malformed input",
		"",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_SHORT",
		"password must be at least 6 characters",
		"",
	)

	// Conflict: registration failed. Duplicate email and write failure are
	// deliberately indistinguishable to the caller.
	ErrRegistrationFailed = NewBaseError(
		http.StatusConflict,
		"REGISTRATION_FAILED",
		"registration failed, the email may already be in use",
		"",
	)

	// Unauthorized family.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	// The one intentionally specific failure: the password was correct, so
	// the user is told to go verify their inbox.
	ErrAccountNotVerified = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_NOT_VERIFIED",
		"email address not verified, please check your inbox",
		"",
	)

	// Covers token wrong, token expired and email unknown alike.
	ErrTokenInvalidOrExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID_OR_EXPIRED",
		"link is invalid or has expired",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"not logged in",
		"",
	)

	// Reset requests report failure when no row was updated. This leaks
	// account existence; the upstream design does the same and the leak is
	// recorded rather than silently fixed.
	ErrResetRequestFailed = NewBaseError(
		http.StatusBadRequest,
		"RESET_REQUEST_FAILED",
		"could not send reset link, please check the email address",
		"",
	)

	// Transient: storage unavailable, surfaced as a generic failure.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the underlying driver error for errors.Is checks in tests.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
