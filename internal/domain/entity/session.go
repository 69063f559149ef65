package entity

import "time"

// Session represents a server-side login session: an opaque handle mapping to
// an identity snapshot taken at login time. The snapshot is never mutated;
// a session is only ever created or invalidated.
type Session struct {
	// Handle is the opaque random value handed to the client.
	Handle string `json:"handle"`

	// Identity is the snapshot captured at bind time.
	Identity Identity `json:"identity"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
