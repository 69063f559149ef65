// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"archive/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account matches the lookup key.
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository defines the storage operations for accounts.
//
// The three token operations are conditional updates: the store must execute
// the check and the mutation as one atomic statement, reporting via the bool
// whether a row matched. Under concurrent attempts with the same valid token
// exactly one call observes true; read-then-write implementations are not
// acceptable substitutes.
type AccountRepository interface {
	// FindByID retrieves a single account by its store-assigned ID.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by its exact email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create inserts a new account. The email uniqueness check and the
	// insert are one atomic operation backed by the unique index;
	// ErrDuplicateEmail reports a lost race or an existing registration.
	Create(ctx context.Context, account *entity.Account) error

	// ConsumeVerificationToken marks the account verified and clears the
	// verification pair, but only where email matches, the stored token
	// equals token, and the expiry is after now. Returns whether a row
	// was updated.
	ConsumeVerificationToken(ctx context.Context, email, token string, now time.Time) (bool, error)

	// SetResetToken unconditionally overwrites the reset pair on the
	// account row, superseding any outstanding token. Returns whether a
	// row was updated (false when the email is unknown).
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) (bool, error)

	// ConsumePasswordReset replaces the password hash and clears the reset
	// pair, but only where email matches, the stored token equals token,
	// and the expiry is after now. Returns whether a row was updated.
	ConsumePasswordReset(ctx context.Context, email, token string, now time.Time, newHash string) (bool, error)
}
