package mocks

import (
	"context"

	"github.com/membercms/authsvc/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc          func(ctx context.Context, session *domain.Session) error
	FindByIDAndUserFunc func(ctx context.Context, sessionID string, userID uint) (*domain.Session, error)
	DeleteFunc          func(ctx context.Context, sessionID string, userID uint) (bool, error)
	DeleteExpiredFunc   func(ctx context.Context) error
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create creates a new session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success
	return nil
}

// FindByIDAndUser finds a session by id and owning user
func (m *MockSessionRepository) FindByIDAndUser(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
	if m.FindByIDAndUserFunc != nil {
		return m.FindByIDAndUserFunc(ctx, sessionID, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Delete deletes a session, reporting whether a row was removed
func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string, userID uint) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID, userID)
	}
	// Default behavior: removed
	return true, nil
}

// DeleteExpired deletes all expired sessions
func (m *MockSessionRepository) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
