package mocks

import (
	"sync"

	"github.com/membercms/authsvc/domain"
)

// MockAuditLogger implements domain.AuditLogger interface for testing
type MockAuditLogger struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// Log records the event
func (m *MockAuditLogger) Log(event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of the recorded events
func (m *MockAuditLogger) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
