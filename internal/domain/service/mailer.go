package service

import "context"

// Mailer delivers account emails. Callers treat it as fire-and-forget: a
// failed or slow send is logged and never rolls back the state change that
// triggered it. Implementations must bound their own network attempts.
type Mailer interface {
	// SendVerification mails the signup verification link for token.
	SendVerification(ctx context.Context, email, token string) error

	// SendPasswordReset mails the password reset link for token.
	SendPasswordReset(ctx context.Context, email, token string) error
}
