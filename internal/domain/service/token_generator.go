package service

// TokenGenerator produces opaque, high-entropy single-purpose tokens for
// verification and reset links. Tokens carry at least 122 bits of randomness;
// uniqueness is probabilistic, not deduplicated.
type TokenGenerator interface {
	NewToken() string
}
