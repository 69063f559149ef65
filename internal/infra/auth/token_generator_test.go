package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUUIDTokenGenerator_NewToken(t *testing.T) {
	gen := NewUUIDTokenGenerator()

	token := gen.NewToken()
	assert.NotEmpty(t, token)

	parsed, err := uuid.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestUUIDTokenGenerator_TokensAreUnique(t *testing.T) {
	gen := NewUUIDTokenGenerator()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		token := gen.NewToken()
		_, dup := seen[token]
		assert.False(t, dup, "duplicate token %s", token)
		seen[token] = struct{}{}
	}
}
