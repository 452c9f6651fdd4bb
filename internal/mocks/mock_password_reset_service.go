package mocks

import (
	"context"

	"github.com/membercms/authsvc/domain"
)

// MockPasswordResetService implements domain.PasswordResetService interface for testing
type MockPasswordResetService struct {
	RequestResetFunc  func(ctx context.Context, email string, meta domain.DeviceMeta) error
	ResetPasswordFunc func(ctx context.Context, email, code, newPassword string) error
}

// NewMockPasswordResetService creates a new MockPasswordResetService with default behaviors
func NewMockPasswordResetService() *MockPasswordResetService {
	return &MockPasswordResetService{}
}

// RequestReset starts a reset flow
func (m *MockPasswordResetService) RequestReset(ctx context.Context, email string, meta domain.DeviceMeta) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, email, meta)
	}
	// Default behavior: success
	return nil
}

// ResetPassword completes a reset flow
func (m *MockPasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordResetService = (*MockPasswordResetService)(nil)
