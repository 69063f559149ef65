// Package model defines the GORM persistence models.
package model

import "time"

// AccountModel is the GORM mapping for the accounts table.
// Token columns are nullable; NULL means no token is outstanding.
type AccountModel struct {
	ID                  int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Email               string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash        string     `gorm:"column:password_hash;type:varchar(255);not null"`
	DisplayName         string     `gorm:"column:display_name;type:varchar(255);not null"`
	Verified            bool       `gorm:"column:verified;not null;default:false"`
	VerificationToken   *string    `gorm:"column:verification_token;type:varchar(64)"`
	VerificationExpires *time.Time `gorm:"column:verification_expires"`
	ResetToken          *string    `gorm:"column:reset_token;type:varchar(64)"`
	ResetExpires        *time.Time `gorm:"column:reset_expires"`
	CreatedAt           time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}
