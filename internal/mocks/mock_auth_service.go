package mocks

import (
	"context"

	"github.com/membercms/authsvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, email, password string, meta domain.DeviceMeta) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, userID uint, sessionID, refreshToken string, meta domain.DeviceMeta) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, userID uint, sessionID string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string, meta domain.DeviceMeta) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, meta)
	}
	// Default behavior: invalid credentials
	return nil, domain.ErrInvalidCredentials
}

// Refresh rotates a refresh token
func (m *MockAuthService) Refresh(ctx context.Context, userID uint, sessionID, refreshToken string, meta domain.DeviceMeta) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, userID, sessionID, refreshToken, meta)
	}
	// Default behavior: session expired
	return nil, domain.ErrSessionExpired
}

// Logout revokes a session
func (m *MockAuthService) Logout(ctx context.Context, userID uint, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, sessionID)
	}
	// Default behavior: success
	return nil
}

// GetUserProfile loads a user profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
