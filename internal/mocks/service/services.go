// Package service provides test doubles for the domain service interfaces.
package service

import (
	"context"
	"testing"

	"archive/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted on cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenGenerator is a testify mock for service.TokenGenerator.
type MockTokenGenerator struct {
	mock.Mock
}

// NewMockTokenGenerator creates a mock whose expectations are asserted on cleanup.
func NewMockTokenGenerator(t *testing.T) *MockTokenGenerator {
	m := &MockTokenGenerator{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenGenerator) NewToken() string {
	args := m.Called()

	return args.String(0)
}

// MockSessionManager is a testify mock for service.SessionManager.
type MockSessionManager struct {
	mock.Mock
}

// NewMockSessionManager creates a mock whose expectations are asserted on cleanup.
func NewMockSessionManager(t *testing.T) *MockSessionManager {
	m := &MockSessionManager{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionManager) Bind(ctx context.Context, identity entity.Identity) (string, error) {
	args := m.Called(ctx, identity)

	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) Resolve(ctx context.Context, handle string) (*entity.Identity, error) {
	args := m.Called(ctx, handle)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionManager) Invalidate(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)

	return args.Error(0)
}

// MockMailer is a testify mock for service.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a mock whose expectations are asserted on cleanup.
func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailer) SendVerification(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)

	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)

	return args.Error(0)
}
