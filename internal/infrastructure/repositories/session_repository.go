package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/membercms/authsvc/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM.
// Sessions are never updated in place: rotation deletes the old row and
// inserts a new one, and revocation is plain deletion.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for Session
type DBSession struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index;not null"`
	TokenHash string `gorm:"column:token_hash;size:64;not null"`
	UserAgent string `gorm:"size:512"`
	IP        string `gorm:"size:64"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	dbSession := &DBSession{
		ID:        session.ID,
		UserID:    session.UserID,
		TokenHash: session.TokenHash,
		UserAgent: session.UserAgent,
		IP:        session.IP,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(dbSession).Error
}

// FindByIDAndUser implements domain.SessionRepository. An expired row is
// removed on read and reported as expired; a missing row is not
// distinguishable from a revoked one.
func (r *SessionRepositoryImpl) FindByIDAndUser(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID).First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if dbSession.ExpiresAt.Before(time.Now()) {
		r.db.WithContext(ctx).Where("id = ?", dbSession.ID).Delete(&DBSession{})
		return nil, domain.ErrSessionExpired
	}

	return &domain.Session{
		ID:        dbSession.ID,
		UserID:    dbSession.UserID,
		TokenHash: dbSession.TokenHash,
		UserAgent: dbSession.UserAgent,
		IP:        dbSession.IP,
		ExpiresAt: dbSession.ExpiresAt,
		CreatedAt: dbSession.CreatedAt,
	}, nil
}

// Delete implements domain.SessionRepository. The returned bool reports
// whether this call removed the row; under concurrent refresh attempts the
// single delete is the arbiter for which caller rotates.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID).Delete(&DBSession{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteExpired implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&DBSession{}).Error
}
