package mocks

import (
	"context"

	"github.com/membercms/authsvc/domain"
)

// MockResetTokenRepository implements domain.ResetTokenRepository interface for testing
type MockResetTokenRepository struct {
	CreateFunc           func(ctx context.Context, token *domain.PasswordResetToken) error
	FindLatestUnusedFunc func(ctx context.Context, userID uint) (*domain.PasswordResetToken, error)
	ConsumeFunc          func(ctx context.Context, tokenID string, userID uint, passwordHash string) error
}

// NewMockResetTokenRepository creates a new MockResetTokenRepository with default behaviors
func NewMockResetTokenRepository() *MockResetTokenRepository {
	return &MockResetTokenRepository{}
}

// Create stores a reset token
func (m *MockResetTokenRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindLatestUnused returns the most recent unused token for the user
func (m *MockResetTokenRepository) FindLatestUnused(ctx context.Context, userID uint) (*domain.PasswordResetToken, error) {
	if m.FindLatestUnusedFunc != nil {
		return m.FindLatestUnusedFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrResetTokenNotFound
}

// Consume marks the token used and replaces the password hash
func (m *MockResetTokenRepository) Consume(ctx context.Context, tokenID string, userID uint, passwordHash string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, tokenID, userID, passwordHash)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ResetTokenRepository = (*MockResetTokenRepository)(nil)
