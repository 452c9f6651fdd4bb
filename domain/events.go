package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	SessionRefreshEvent   AuditEventType = "SESSION_REFRESHED"
	SessionRevokedEvent   AuditEventType = "SESSION_REVOKED"

	// Password reset events
	ResetRequestedEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	ResetCompletedEvent AuditEventType = "PASSWORD_RESET_COMPLETED"
	ResetFailureEvent   AuditEventType = "PASSWORD_RESET_FAILED"
)

// AuditEvent represents a security-relevant business event
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// AuditLogger records audit events. Implementations must never fail the
// calling request; recording is best effort.
type AuditLogger interface {
	Log(event *AuditEvent)
}

// NewAuditEvent creates an audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event failed and records the reason
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithUser sets the user id
func (e *AuditEvent) WithUser(userID uint) *AuditEvent {
	e.UserID = userID
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithSession sets the session id
func (e *AuditEvent) WithSession(sessionID string) *AuditEvent {
	e.SessionID = sessionID
	return e
}

// WithDevice sets originating device information
func (e *AuditEvent) WithDevice(meta DeviceMeta) *AuditEvent {
	e.IPAddress = meta.IP
	e.UserAgent = meta.UserAgent
	return e
}
