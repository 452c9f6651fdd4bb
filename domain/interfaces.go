package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. Email lookups are
// case-insensitive.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
}

// SessionRepository defines session data access operations. Delete reports
// whether a row was actually removed; the rotation path relies on that to
// pick exactly one winner under concurrent refresh.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByIDAndUser(ctx context.Context, sessionID string, userID uint) (*Session, error)
	Delete(ctx context.Context, sessionID string, userID uint) (bool, error)
	DeleteExpired(ctx context.Context) error
}

// ResetTokenRepository defines password-reset token data access operations.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	// FindLatestUnused returns the most recently created token for the user
	// whose used-at is still null; older unused tokens are implicitly invalid.
	FindLatestUnused(ctx context.Context, userID uint) (*PasswordResetToken, error)
	// Consume marks the token used and replaces the user's password hash as a
	// single transactional unit.
	Consume(ctx context.Context, tokenID string, userID uint, passwordHash string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string, meta DeviceMeta) (*AuthResult, error)
	Refresh(ctx context.Context, userID uint, sessionID, refreshToken string, meta DeviceMeta) (*AuthResult, error)
	Logout(ctx context.Context, userID uint, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// PasswordResetService defines the one-time-code reset flow
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string, meta DeviceMeta) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations. Access and refresh tokens are signed
// with independent secrets and TTLs.
type TokenService interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	// HashToken produces the one-way hash persisted for refresh tokens and
	// reset codes; VerifyTokenHash compares in constant time.
	HashToken(raw string) string
	VerifyTokenHash(raw, storedHash string) bool
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// Mailer defines the email delivery collaborator
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
