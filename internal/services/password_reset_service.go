package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/membercms/authsvc/domain"
)

// ResetConfig holds the tunables of the password reset flow
type ResetConfig struct {
	CodeLength   int
	CodeTTL      time.Duration
	ResendWindow time.Duration
}

// PasswordResetServiceImpl implements domain.PasswordResetService. The code
// row lives in the database; Redis only backs the per-email resend throttle.
type PasswordResetServiceImpl struct {
	userRepo    domain.UserRepository
	resetRepo   domain.ResetTokenRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      domain.Mailer
	redisClient *redis.Client
	config      ResetConfig
	audit       domain.AuditLogger
	logger      *zap.Logger
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo domain.UserRepository,
	resetRepo domain.ResetTokenRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
	redisClient *redis.Client,
	config ResetConfig,
	audit domain.AuditLogger,
	logger *zap.Logger,
) domain.PasswordResetService {
	return &PasswordResetServiceImpl{
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		redisClient: redisClient,
		config:      config,
		audit:       audit,
		logger:      logger,
	}
}

// RequestReset implements domain.PasswordResetService. The caller gets the
// same success for known and unknown emails; only delivery (or its absence)
// distinguishes them. Email delivery runs detached so a slow mail server
// never blocks the response, and its failure is logged, never surfaced.
func (s *PasswordResetServiceImpl) RequestReset(ctx context.Context, email string, meta domain.DeviceMeta) error {
	if err := s.checkResendWindow(ctx, email); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Deliberate: report success without creating anything.
			s.audit.Log(domain.NewAuditEvent(domain.ResetRequestedEvent).
				WithEmail(email).WithDevice(meta).WithError(domain.ErrUserNotFound))
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	token := &domain.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CodeHash:  s.tokenSvc.HashToken(code),
		ExpiresAt: time.Now().Add(s.config.CodeTTL),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now(),
	}
	if err := s.resetRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	go s.sendCode(user, code)

	s.audit.Log(domain.NewAuditEvent(domain.ResetRequestedEvent).
		WithUser(user.ID).WithEmail(user.Email).WithDevice(meta))
	return nil
}

// ResetPassword implements domain.PasswordResetService. Only the most
// recently created unused token counts; consuming it and replacing the
// password hash is one transactional unit in the repository.
func (s *PasswordResetServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.resetRepo.FindLatestUnused(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return domain.ErrResetCodeExpired
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if token.ExpiresAt.Before(time.Now()) {
		return domain.ErrResetCodeExpired
	}

	if !s.tokenSvc.VerifyTokenHash(code, token.CodeHash) {
		s.audit.Log(domain.NewAuditEvent(domain.ResetFailureEvent).
			WithUser(user.ID).WithEmail(email).WithError(domain.ErrResetCodeInvalid))
		return domain.ErrResetCodeInvalid
	}

	passwordHash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.resetRepo.Consume(ctx, token.ID, user.ID, passwordHash); err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			// Consumed by a concurrent reset between lookup and write.
			return domain.ErrResetCodeExpired
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	s.audit.Log(domain.NewAuditEvent(domain.ResetCompletedEvent).
		WithUser(user.ID).WithEmail(email))
	return nil
}

// checkResendWindow bounds request frequency per email. The key is written
// before the user lookup so throttling reveals nothing about account
// existence.
func (s *PasswordResetServiceImpl) checkResendWindow(ctx context.Context, email string) error {
	if s.config.ResendWindow <= 0 {
		return nil
	}

	key := "pwreset:res:" + strings.ToLower(email)
	ttl, err := s.redisClient.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend window: %w", err)
	}
	if ttl > 0 {
		return domain.ErrResetThrottled
	}
	if err := s.redisClient.Set(ctx, key, 1, s.config.ResendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend window: %w", err)
	}
	return nil
}

// generateCode produces a fixed-length numeric code from crypto/rand.
func (s *PasswordResetServiceImpl) generateCode() (string, error) {
	digits := make([]byte, s.config.CodeLength)
	for i := 0; i < s.config.CodeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

// sendCode delivers the code by email. Runs on its own goroutine; the
// request has already succeeded by the time this fails.
func (s *PasswordResetServiceImpl) sendCode(user *domain.User, code string) {
	subject := "Your password reset code"
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your password reset code is <strong>%s</strong>. It is valid for %d minutes.</p><p>If you did not request this, you can ignore this email.</p>",
		user.FullName(), code, int(s.config.CodeTTL.Minutes()))

	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		s.logger.Error("failed to send reset code email",
			zap.Uint("user_id", user.ID), zap.Error(err))
	}
}
