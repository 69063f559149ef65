// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"archive/internal/domain/entity"
	domainerrors "archive/internal/domain/errors"
	"archive/internal/domain/repository"
	"archive/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its primary key.
func (repo *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).First(&accountM, id).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address. The match is
// exact and case sensitive.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account. The unique index on email arbitrates
// concurrent registrations; the loser receives ErrDuplicateEmail.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrRegistrationFailed.WrapMessage("missing required account information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// ConsumeVerificationToken atomically flips an account to verified when the
// supplied token matches and has not expired. The single conditional UPDATE
// guarantees at most one caller succeeds for a given token.
func (repo *accountRepository) ConsumeVerificationToken(ctx context.Context, email, token string, now time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ? AND verification_token = ? AND verification_expires > ?", email, token, now).
		Updates(map[string]any{
			"verified":             true,
			"verification_token":   nil,
			"verification_expires": nil,
			"updated_at":           now,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume verification token")
	}

	return result.RowsAffected == 1, nil
}

// SetResetToken attaches a reset token to the account with the given email,
// replacing any previously issued token. It reports whether a matching
// account exists.
func (repo *accountRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"reset_token":   token,
			"reset_expires": expiry,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to set reset token")
	}

	return result.RowsAffected == 1, nil
}

// ConsumePasswordReset atomically installs a new password hash and clears the
// reset token when the supplied token matches and has not expired.
func (repo *accountRepository) ConsumePasswordReset(ctx context.Context, email, token string, now time.Time, newHash string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ? AND reset_token = ? AND reset_expires > ?", email, token, now).
		Updates(map[string]any{
			"password_hash": newHash,
			"reset_token":   nil,
			"reset_expires": nil,
			"updated_at":    now,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume password reset")
	}

	return result.RowsAffected == 1, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                  data.ID,
		Email:               data.Email,
		PasswordHash:        data.PasswordHash,
		DisplayName:         data.DisplayName,
		Verified:            data.Verified,
		VerificationToken:   data.VerificationToken,
		VerificationExpires: data.VerificationExpires,
		ResetToken:          data.ResetToken,
		ResetExpires:        data.ResetExpires,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                  data.ID,
		Email:               data.Email,
		PasswordHash:        data.PasswordHash,
		DisplayName:         data.DisplayName,
		Verified:            data.Verified,
		VerificationToken:   data.VerificationToken,
		VerificationExpires: data.VerificationExpires,
		ResetToken:          data.ResetToken,
		ResetExpires:        data.ResetExpires,
	}
}
