// Package mail implements outbound delivery of account emails.
package mail

// Event kinds published to the mail topic.
const (
	EventKindVerification  = "account.verification"
	EventKindPasswordReset = "account.password_reset"
)

// Event is the message published to the mail topic when delivery is
// delegated to a downstream mail consumer.
type Event struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Token string `json:"token"`
	Link  string `json:"link"`
}
