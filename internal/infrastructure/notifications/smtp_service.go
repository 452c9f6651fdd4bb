package notifications

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/membercms/authsvc/domain"
)

// SMTPServiceImpl implements domain.Mailer over SMTP
type SMTPServiceImpl struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPService creates a new SMTP mailer. With an empty host the mailer
// logs messages instead of sending them, which keeps local development
// working without a mail server.
func NewSMTPService(host string, port int, username, password, from string, logger *zap.Logger) domain.Mailer {
	var dialer *gomail.Dialer
	if host != "" {
		dialer = gomail.NewDialer(host, port, username, password)
	}
	return &SMTPServiceImpl{
		dialer: dialer,
		from:   from,
		logger: logger,
	}
}

// Send implements domain.Mailer
func (s *SMTPServiceImpl) Send(to, subject, htmlBody string) error {
	if s.dialer == nil {
		s.logger.Info("mock email",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
