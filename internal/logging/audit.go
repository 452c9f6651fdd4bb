package logging

import (
	"go.uber.org/zap"

	"github.com/membercms/authsvc/domain"
)

// ZapAuditLogger implements domain.AuditLogger on top of a zap logger. Events
// land in the main log stream as structured records keyed by event type.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates a new audit logger
func NewZapAuditLogger(logger *zap.Logger) domain.AuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// Log implements domain.AuditLogger
func (l *ZapAuditLogger) Log(event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Bool("success", event.Success),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.UserID != 0 {
		fields = append(fields, zap.Uint("user_id", event.UserID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.SessionID != "" {
		fields = append(fields, zap.String("session_id", event.SessionID))
	}
	if event.IPAddress != "" {
		fields = append(fields, zap.String("ip", event.IPAddress))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}

	if event.Success {
		l.logger.Info("audit event", fields...)
	} else {
		l.logger.Warn("audit event", fields...)
	}
}
