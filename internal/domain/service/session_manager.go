package service

import (
	"context"
	"errors"

	"archive/internal/domain/entity"
)

// ErrSessionNotFound is returned by Resolve when the handle is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager binds authenticated identities to opaque server-side
// handles. The identity snapshot stored at bind time is immutable; sessions
// are only created and invalidated, never mutated.
type SessionManager interface {
	// Bind stores the identity snapshot and returns a fresh opaque handle.
	Bind(ctx context.Context, identity entity.Identity) (string, error)

	// Resolve returns the identity bound to handle.
	Resolve(ctx context.Context, handle string) (*entity.Identity, error)

	// Invalidate discards the session. Unknown handles are not an error.
	Invalidate(ctx context.Context, handle string) error
}
