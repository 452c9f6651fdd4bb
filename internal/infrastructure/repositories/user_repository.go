package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/membercms/authsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint       `gorm:"primaryKey"`
	FirstName    string     `gorm:"size:128"`
	LastName     string     `gorm:"size:128"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	PasswordHash string     `gorm:"column:password"`
	Role         string     `gorm:"index;size:32"`
	IsActive     bool       `gorm:"index"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindByEmail implements domain.UserRepository. Email matching is
// case-insensitive.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdateLastLogin implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("password", passwordHash).Error
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Role:         dbUser.Role,
		IsActive:     dbUser.IsActive,
		LastLoginAt:  dbUser.LastLoginAt,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
