package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"archive/config"
	"archive/internal/domain/entity"
	domainerrors "archive/internal/domain/errors"
	"archive/internal/domain/repository"
	"archive/internal/domain/service"
	mockRepo "archive/internal/mocks/repository"
	mockSvc "archive/internal/mocks/service"
	"archive/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	tokens      *mockSvc.MockTokenGenerator
	sessions    *mockSvc.MockSessionManager
	mailer      *mockSvc.MockMailer
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenGenerator(t)
	sessions := mockSvc.NewMockSessionManager(t)
	mailer := mockSvc.NewMockMailer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth:    &config.AuthConfig{MinPasswordLength: 6},
		Tokens:  &config.TokenConfig{VerificationTTL: 24 * time.Hour, ResetTTL: time.Hour},
		Mail:    &config.MailConfig{SendTimeout: time.Second},
		Session: &config.SessionConfig{TTL: 24 * time.Hour},
	}

	svc := NewAccountService(AccountServiceParams{
		AccountRepo: accountRepo,
		Hasher:      hasher,
		Tokens:      tokens,
		Sessions:    sessions,
		Mailer:      mailer,
		Config:      cfg,
		Logger:      logger,
	})

	return accountServiceFixtures{
		service:     svc,
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		sessions:    sessions,
		mailer:      mailer,
	}
}

func waitForMail(t *testing.T, sent <-chan struct{}) {
	t.Helper()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("expected mail dispatch")
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	input := usecase.RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret1",
		DisplayName: "Alice",
	}

	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.tokens.On("NewToken").Return("verify-token-1")

	fx.accountRepo.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			assert.Equal(t, input.Email, account.Email)
			assert.Equal(t, "hashed_password", account.PasswordHash)
			assert.False(t, account.Verified)
			require.NotNil(t, account.VerificationToken)
			assert.Equal(t, "verify-token-1", *account.VerificationToken)
			require.NotNil(t, account.VerificationExpires)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), *account.VerificationExpires, time.Minute)
			account.ID = 7
		}).
		Return(nil)

	sent := make(chan struct{}, 1)
	fx.mailer.On("SendVerification", mock.Anything, input.Email, "verify-token-1").
		Run(func(mock.Arguments) { sent <- struct{}{} }).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(7), output.Identity.ID)
	assert.Equal(t, input.Email, output.Identity.Email)
	waitForMail(t, sent)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	input := usecase.RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret1",
		DisplayName: "Alice",
	}

	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.tokens.On("NewToken").Return("verify-token-2")
	fx.accountRepo.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Return(repository.ErrDuplicateEmail)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrRegistrationFailed))
	// No mail is dispatched for a rejected registration.
	fx.mailer.AssertNotCalled(t, "SendVerification", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	account := &entity.Account{
		ID:           3,
		Email:        "alice@example.com",
		PasswordHash: "hashed_password",
		DisplayName:  "Alice",
		Verified:     true,
	}

	fx.accountRepo.On("FindByEmail", ctx, account.Email).Return(account, nil)
	fx.hasher.On("Check", "secret1", "hashed_password").Return(true)
	fx.sessions.On("Bind", ctx, account.Identity()).Return("handle-1", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: account.Email, Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "handle-1", output.SessionHandle)
	assert.Equal(t, account.ID, output.Identity.ID)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.On("FindByEmail", ctx, "nobody@example.com").
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "secret1"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	account := &entity.Account{
		ID:           3,
		Email:        "alice@example.com",
		PasswordHash: "hashed_password",
		Verified:     true,
	}

	fx.accountRepo.On("FindByEmail", ctx, account.Email).Return(account, nil)
	fx.hasher.On("Check", "wrong", "hashed_password").Return(false)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: account.Email, Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_Unverified(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	account := &entity.Account{
		ID:           4,
		Email:        "bob@example.com",
		PasswordHash: "hashed_password",
		Verified:     false,
	}

	fx.accountRepo.On("FindByEmail", ctx, account.Email).Return(account, nil)
	fx.hasher.On("Check", "secret1", "hashed_password").Return(true)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: account.Email, Password: "secret1"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotVerified))
	// The session manager is never touched for an unverified account.
	fx.sessions.AssertNotCalled(t, "Bind", mock.Anything, mock.Anything)
}

func TestAccountService_VerifyEmail_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.On("ConsumeVerificationToken", ctx, "alice@example.com", "verify-token-1", mock.AnythingOfType("time.Time")).
		Return(true, nil)

	err := fx.service.VerifyEmail(ctx, usecase.VerifyEmailInput{Email: "alice@example.com", Code: "verify-token-1"})

	require.NoError(t, err)
}

func TestAccountService_VerifyEmail_SecondAttemptFails(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	// The token was already consumed; the conditional update matches no row.
	fx.accountRepo.On("ConsumeVerificationToken", ctx, "alice@example.com", "verify-token-1", mock.AnythingOfType("time.Time")).
		Return(false, nil)

	err := fx.service.VerifyEmail(ctx, usecase.VerifyEmailInput{Email: "alice@example.com", Code: "verify-token-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalidOrExpired))
}

func TestAccountService_RequestPasswordReset_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.tokens.On("NewToken").Return("reset-token-1")
	fx.accountRepo.On("SetResetToken", ctx, "alice@example.com", "reset-token-1", mock.MatchedBy(func(expiry time.Time) bool {
		return time.Until(expiry) > 55*time.Minute && time.Until(expiry) <= time.Hour
	})).Return(true, nil)

	sent := make(chan struct{}, 1)
	fx.mailer.On("SendPasswordReset", mock.Anything, "alice@example.com", "reset-token-1").
		Run(func(mock.Arguments) { sent <- struct{}{} }).
		Return(nil)

	err := fx.service.RequestPasswordReset(ctx, usecase.RequestPasswordResetInput{Email: "alice@example.com"})

	require.NoError(t, err)
	waitForMail(t, sent)
}

func TestAccountService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.tokens.On("NewToken").Return("reset-token-2")
	fx.accountRepo.On("SetResetToken", ctx, "nobody@example.com", "reset-token-2", mock.AnythingOfType("time.Time")).
		Return(false, nil)

	err := fx.service.RequestPasswordReset(ctx, usecase.RequestPasswordResetInput{Email: "nobody@example.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrResetRequestFailed))
	fx.mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_CompletePasswordReset_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "newsecret").Return("new_hash", nil)
	fx.accountRepo.On("ConsumePasswordReset", ctx, "alice@example.com", "reset-token-1", mock.AnythingOfType("time.Time"), "new_hash").
		Return(true, nil)

	err := fx.service.CompletePasswordReset(ctx, usecase.CompletePasswordResetInput{
		Email:       "alice@example.com",
		Token:       "reset-token-1",
		NewPassword: "newsecret",
	})

	require.NoError(t, err)
}

func TestAccountService_CompletePasswordReset_TooShort(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	err := fx.service.CompletePasswordReset(ctx, usecase.CompletePasswordResetInput{
		Email:       "alice@example.com",
		Token:       "reset-token-1",
		NewPassword: "tiny",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooShort))
	// A rejected password never reaches the repository; the token survives.
	fx.accountRepo.AssertNotCalled(t, "ConsumePasswordReset",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_CompletePasswordReset_SupersededToken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	// A newer reset request replaced this token, so the update matches no row.
	fx.hasher.On("Hash", "newsecret").Return("new_hash", nil)
	fx.accountRepo.On("ConsumePasswordReset", ctx, "alice@example.com", "stale-token", mock.AnythingOfType("time.Time"), "new_hash").
		Return(false, nil)

	err := fx.service.CompletePasswordReset(ctx, usecase.CompletePasswordResetInput{
		Email:       "alice@example.com",
		Token:       "stale-token",
		NewPassword: "newsecret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalidOrExpired))
}

func TestAccountService_CurrentAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	identity := &entity.Identity{ID: 3, Email: "alice@example.com", DisplayName: "Alice"}
	fx.sessions.On("Resolve", ctx, "handle-1").Return(identity, nil)

	got, err := fx.service.CurrentAccount(ctx, "handle-1")

	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestAccountService_CurrentAccount_UnknownHandle(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.sessions.On("Resolve", ctx, "stale-handle").Return(nil, service.ErrSessionNotFound)

	got, err := fx.service.CurrentAccount(ctx, "stale-handle")

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotFound))
}

func TestAccountService_Logout(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.sessions.On("Invalidate", ctx, "handle-1").Return(nil)

	err := fx.service.Logout(ctx, "handle-1")

	require.NoError(t, err)
}
