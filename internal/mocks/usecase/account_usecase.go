// Package usecase provides test doubles for the usecase interfaces.
package usecase

import (
	"context"
	"testing"

	"archive/internal/domain/entity"
	"archive/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockAccountUsecase is a testify mock for usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

// NewMockAccountUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockAccountUsecase(t *testing.T) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.RegisterOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.LoginOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountUsecase) VerifyEmail(ctx context.Context, input usecase.VerifyEmailInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAccountUsecase) RequestPasswordReset(ctx context.Context, input usecase.RequestPasswordResetInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAccountUsecase) CompletePasswordReset(ctx context.Context, input usecase.CompletePasswordResetInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAccountUsecase) CurrentAccount(ctx context.Context, sessionHandle string) (*entity.Identity, error) {
	args := m.Called(ctx, sessionHandle)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAccountUsecase) Logout(ctx context.Context, sessionHandle string) error {
	args := m.Called(ctx, sessionHandle)

	return args.Error(0)
}
