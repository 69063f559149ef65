// Package repository provides test doubles for the repository interfaces.
package repository

import (
	"context"
	"testing"
	"time"

	"archive/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a testify mock for repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock whose expectations are asserted on cleanup.
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *MockAccountRepository) ConsumeVerificationToken(ctx context.Context, email, token string, now time.Time) (bool, error) {
	args := m.Called(ctx, email, token, now)

	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) (bool, error) {
	args := m.Called(ctx, email, token, expiry)

	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ConsumePasswordReset(ctx context.Context, email, token string, now time.Time, newHash string) (bool, error) {
	args := m.Called(ctx, email, token, now, newHash)

	return args.Bool(0), args.Error(1)
}
