package domain

import "time"

// Roles carried on user records and inside token claims.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User represents a CMS account
type User struct {
	ID           uint
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for email salutations.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// DeviceMeta captures originating device information. Informational only,
// never used for validation.
type DeviceMeta struct {
	UserAgent string
	IP        string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session is the server-side record behind one issued refresh token. Only a
// hash of the refresh token is stored, never the raw token. A session is
// valid iff the row exists, ExpiresAt is in the future and the presented
// token's hash matches TokenHash. Revocation is row deletion; there is no
// status flag.
type Session struct {
	ID        string
	UserID    uint
	TokenHash string
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetToken is a one-time numeric code request. Only the newest
// unused row per user is ever considered valid.
type PasswordResetToken struct {
	ID        string
	UserID    uint
	CodeHash  string
	ExpiresAt time.Time
	IP        string
	UserAgent string
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TokenClaims represents verified JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
