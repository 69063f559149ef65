// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"archive/config"
	deliverycontext "archive/internal/delivery/context"
	"archive/internal/domain/entity"
	domainerrors "archive/internal/domain/errors"
	"archive/internal/domain/repository"
	"archive/internal/domain/service"
	"archive/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo       repository.AccountRepository
	hasher            service.PasswordHasher
	tokens            service.TokenGenerator
	sessions          service.SessionManager
	mailer            service.Mailer
	verificationTTL   time.Duration
	resetTTL          time.Duration
	minPasswordLength int
	mailTimeout       time.Duration
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Tokens      service.TokenGenerator
	Sessions    service.SessionManager
	Mailer      service.Mailer
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:       params.AccountRepo,
		hasher:            params.Hasher,
		tokens:            params.Tokens,
		sessions:          params.Sessions,
		mailer:            params.Mailer,
		verificationTTL:   params.Config.Tokens.VerificationTTL,
		resetTTL:          params.Config.Tokens.ResetTTL,
		minPasswordLength: params.Config.Auth.MinPasswordLength,
		mailTimeout:       params.Config.Mail.SendTimeout,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified account and dispatches the verification
// mail. The unique index on email arbitrates concurrent registrations.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	token := srv.tokens.NewToken()
	expiry := time.Now().Add(srv.verificationTTL)

	account := buildNewAccountEntity(input, hashedPassword, token, expiry)
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email already taken", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrRegistrationFailed, "email already registered")
		}
		srv.log(ctx).Error("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account during registration")
	}

	srv.dispatchMail(ctx, "verification", input.Email, func(mailCtx context.Context) error {
		return srv.mailer.SendVerification(mailCtx, input.Email, token)
	})

	srv.log(ctx).Debug("Registration completed", slog.Int64("accountID", account.ID))

	return &usecase.RegisterOutput{Identity: account.Identity()}, nil
}

// Login verifies credentials and binds a new server-side session. Failures
// are uniform except for the unverified case, which callers may surface so
// the user knows to check their inbox.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
		srv.log(ctx).Error("Failed to load account for login", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// bcrypt check is CPU-bound; do it before the verified check so an
	// unverified account is only revealed to callers holding the password.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !account.Verified {
		srv.log(ctx).Warn("Login rejected, account not verified", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrAccountNotVerified, "login failed")
	}

	handle, err := srv.sessions.Bind(ctx, account.Identity())
	if err != nil {
		srv.log(ctx).Error("Failed to bind session", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to bind session during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Int64("accountID", account.ID))

	return &usecase.LoginOutput{
		SessionHandle: handle,
		Identity:      account.Identity(),
	}, nil
}

// VerifyEmail consumes a verification token. The repository performs a single
// conditional update, so at most one call succeeds per token.
func (srv *accountService) VerifyEmail(ctx context.Context, input usecase.VerifyEmailInput) error {
	srv.log(ctx).Debug("Verifying email", slog.String("email", input.Email))

	ok, err := srv.accountRepo.ConsumeVerificationToken(ctx, input.Email, input.Code, time.Now())
	if err != nil {
		srv.log(ctx).Error("Failed to consume verification token", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "failed to consume verification token")
	}
	if !ok {
		srv.log(ctx).Warn("Verification rejected", slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrTokenInvalidOrExpired, "verification failed")
	}

	srv.log(ctx).Info("Email verified", slog.String("email", input.Email))

	return nil
}

// RequestPasswordReset issues a fresh reset token, superseding any earlier
// one, and dispatches the reset mail. The outcome reveals whether the email
// is registered; this mirrors the established behaviour of the endpoint.
func (srv *accountService) RequestPasswordReset(ctx context.Context, input usecase.RequestPasswordResetInput) error {
	srv.log(ctx).Debug("Password reset requested", slog.String("email", input.Email))

	token := srv.tokens.NewToken()
	expiry := time.Now().Add(srv.resetTTL)

	ok, err := srv.accountRepo.SetResetToken(ctx, input.Email, token, expiry)
	if err != nil {
		srv.log(ctx).Error("Failed to set reset token", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "failed to set reset token")
	}
	if !ok {
		srv.log(ctx).Warn("Password reset requested for unknown email", slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrResetRequestFailed, "reset request failed")
	}

	srv.dispatchMail(ctx, "password_reset", input.Email, func(mailCtx context.Context) error {
		return srv.mailer.SendPasswordReset(mailCtx, input.Email, token)
	})

	return nil
}

// CompletePasswordReset consumes a reset token and installs the new password
// hash in one conditional update.
func (srv *accountService) CompletePasswordReset(ctx context.Context, input usecase.CompletePasswordResetInput) error {
	srv.log(ctx).Debug("Completing password reset", slog.String("email", input.Email))

	if len(input.NewPassword) < srv.minPasswordLength {
		srv.log(ctx).Warn("Password reset rejected, password too short", slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrPasswordTooShort, "password reset failed")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return errors.Wrap(err, "failed to hash new password")
	}

	ok, err := srv.accountRepo.ConsumePasswordReset(ctx, input.Email, input.Token, time.Now(), newHash)
	if err != nil {
		srv.log(ctx).Error("Failed to consume reset token", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "failed to consume reset token")
	}
	if !ok {
		srv.log(ctx).Warn("Password reset rejected", slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrTokenInvalidOrExpired, "password reset failed")
	}

	srv.log(ctx).Info("Password reset completed", slog.String("email", input.Email))

	return nil
}

// CurrentAccount resolves the identity bound to a session handle.
func (srv *accountService) CurrentAccount(ctx context.Context, sessionHandle string) (*entity.Identity, error) {
	identity, err := srv.sessions.Resolve(ctx, sessionHandle)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "session lookup failed")
		}
		srv.log(ctx).Error("Failed to resolve session", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve session")
	}

	return identity, nil
}

// Logout invalidates a session handle. Unknown handles are not an error.
func (srv *accountService) Logout(ctx context.Context, sessionHandle string) error {
	if err := srv.sessions.Invalidate(ctx, sessionHandle); err != nil {
		srv.log(ctx).Error("Failed to invalidate session", slog.Any("error", err))

		return errors.Wrap(err, "failed to invalidate session")
	}

	srv.log(ctx).Debug("Logged out")

	return nil
}

func buildNewAccountEntity(input usecase.RegisterInput, passwordHash, token string, expiry time.Time) *entity.Account {
	return &entity.Account{
		Email:               input.Email,
		PasswordHash:        passwordHash,
		DisplayName:         input.DisplayName,
		Verified:            false,
		VerificationToken:   &token,
		VerificationExpires: &expiry,
	}
}

// dispatchMail sends an account mail without blocking the caller. The state
// change that triggered the mail has already committed; a failed send is
// logged and lost.
func (srv *accountService) dispatchMail(ctx context.Context, kind, email string, send func(context.Context) error) {
	logger := srv.log(ctx)

	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), srv.mailTimeout)
		defer cancel()

		if err := send(mailCtx); err != nil {
			logger.Warn("Mail dispatch failed",
				slog.String("kind", kind),
				slog.String("email", email),
				slog.Any("error", err),
			)
		}
	}()
}
