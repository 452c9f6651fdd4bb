package mocks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/membercms/authsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role string, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	HashTokenFunc            func(raw string) string
	VerifyTokenHashFunc      func(raw, storedHash string) bool
	AccessTTLValue           time.Duration
	RefreshTTLValue          time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{
		AccessTTLValue:  15 * time.Minute,
		RefreshTTLValue: 7 * 24 * time.Hour,
	}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(userID uint, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_user_%d_%s", userID, role), nil
}

// GenerateRefreshToken generates a refresh token bound to the session
func (m *MockTokenService) GenerateRefreshToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role, sessionID)
	}
	// Default behavior: distinct per session, so rotation yields new tokens
	return fmt.Sprintf("refresh_token_user_%d_%s_%s", userID, role, sessionID), nil
}

// ValidateAccessToken validates an access token and returns claims
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token and returns claims
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// HashToken hashes a raw token
func (m *MockTokenService) HashToken(raw string) string {
	if m.HashTokenFunc != nil {
		return m.HashTokenFunc(raw)
	}
	// Default behavior: real SHA-256 so hash/verify stay consistent
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyTokenHash compares a raw token against a stored hash
func (m *MockTokenService) VerifyTokenHash(raw, storedHash string) bool {
	if m.VerifyTokenHashFunc != nil {
		return m.VerifyTokenHashFunc(raw, storedHash)
	}
	return m.HashToken(raw) == storedHash
}

// AccessTTL returns the configured access token TTL
func (m *MockTokenService) AccessTTL() time.Duration { return m.AccessTTLValue }

// RefreshTTL returns the configured refresh token TTL
func (m *MockTokenService) RefreshTTL() time.Duration { return m.RefreshTTLValue }

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
