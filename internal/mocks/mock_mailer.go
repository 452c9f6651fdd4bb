package mocks

import (
	"sync"

	"github.com/membercms/authsvc/domain"
)

// SentMail records one delivered message
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer implements domain.Mailer interface for testing. Sent messages
// are recorded under a mutex because the reset service delivers from a
// goroutine.
type MockMailer struct {
	SendFunc func(to, subject, htmlBody string) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send delivers an email
func (m *MockMailer) Send(to, subject, htmlBody string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, htmlBody)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns a copy of the recorded messages
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
