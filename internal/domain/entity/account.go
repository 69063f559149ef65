// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is the sole persistent entity of the system: one row per registered
// user, keyed by email. All credential and token state lives here; the
// verification and reset token pairs are only ever set and cleared together.
type Account struct {
	ID           int64  // Store-assigned identifier, immutable after creation.
	Email        string // Login key. Unique, compared byte-exact (case-sensitive).
	PasswordHash string // bcrypt hash; mutable only via registration or a completed reset.
	DisplayName  string // Optional display name chosen at registration.
	Verified     bool   // False at creation, flips to true exactly once.

	// Verification token pair. Present only while the account is unverified
	// and a token has been issued. Verified == true implies both are nil.
	VerificationToken   *string
	VerificationExpires *time.Time

	// Reset token pair. Present only while a reset request is outstanding.
	// A new request overwrites the pair, so at most one live token exists.
	ResetToken   *string
	ResetExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the immutable snapshot of an account exposed to the transport
// layer after authentication. Sessions hold an Identity, never the Account.
type Identity struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Identity returns the snapshot of this account for session binding.
func (a *Account) Identity() Identity {
	return Identity{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
	}
}
