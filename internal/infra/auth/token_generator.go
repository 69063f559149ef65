package auth

import (
	"github.com/google/uuid"

	"archive/internal/domain/service"
)

// uuidTokenGenerator issues random version 4 UUIDs as single-use tokens.
// 122 bits of randomness keeps tokens infeasible to guess.
type uuidTokenGenerator struct{}

// NewUUIDTokenGenerator is the constructor for uuidTokenGenerator.
func NewUUIDTokenGenerator() service.TokenGenerator {
	return &uuidTokenGenerator{}
}

// NewToken returns a fresh token in canonical UUID form.
func (g *uuidTokenGenerator) NewToken() string {
	return uuid.NewString()
}
