package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/membercms/authsvc/domain"
)

// ResetTokenRepositoryImpl implements domain.ResetTokenRepository using GORM.
// Rows are never deleted here; a consumed token keeps its used-at timestamp
// and retention is an operational concern.
type ResetTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBResetToken represents the database model for PasswordResetToken. Only the
// hash of the numeric code is stored.
type DBResetToken struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index;not null"`
	CodeHash  string `gorm:"column:code_hash;size:64;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:512"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBResetToken) TableName() string {
	return "password_reset_tokens"
}

// NewResetTokenRepository creates a new reset token repository
func NewResetTokenRepository(db *gorm.DB) domain.ResetTokenRepository {
	return &ResetTokenRepositoryImpl{db: db}
}

// Create implements domain.ResetTokenRepository
func (r *ResetTokenRepositoryImpl) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	dbToken := &DBResetToken{
		ID:        token.ID,
		UserID:    token.UserID,
		CodeHash:  token.CodeHash,
		ExpiresAt: token.ExpiresAt,
		IP:        token.IP,
		UserAgent: token.UserAgent,
		CreatedAt: token.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(dbToken).Error
}

// FindLatestUnused implements domain.ResetTokenRepository. Older unused rows
// for the same user are implicitly invalidated by always selecting the most
// recent one.
func (r *ResetTokenRepositoryImpl) FindLatestUnused(ctx context.Context, userID uint) (*domain.PasswordResetToken, error) {
	var dbToken DBResetToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used_at IS NULL", userID).
		Order("created_at DESC").
		First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetTokenNotFound
		}
		return nil, err
	}

	return &domain.PasswordResetToken{
		ID:        dbToken.ID,
		UserID:    dbToken.UserID,
		CodeHash:  dbToken.CodeHash,
		ExpiresAt: dbToken.ExpiresAt,
		IP:        dbToken.IP,
		UserAgent: dbToken.UserAgent,
		UsedAt:    dbToken.UsedAt,
		CreatedAt: dbToken.CreatedAt,
	}, nil
}

// Consume implements domain.ResetTokenRepository. Marking the token used and
// replacing the password hash happen in one transaction: a reset can never
// leave the code unused after the password changed, or vice versa. The
// used_at IS NULL guard makes replays lose cleanly.
func (r *ResetTokenRepositoryImpl) Consume(ctx context.Context, tokenID string, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBResetToken{}).
			Where("id = ? AND user_id = ? AND used_at IS NULL", tokenID, userID).
			Update("used_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrResetTokenNotFound
		}
		return tx.Model(&DBUser{}).Where("id = ?", userID).Update("password", passwordHash).Error
	})
}
