package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/membercms/authsvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	audit       domain.AuditLogger
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	audit domain.AuditLogger,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		audit:       audit,
		logger:      logger,
	}
}

// Login implements domain.AuthService. Unknown email, inactive account and
// wrong password all fail with the same ErrInvalidCredentials so the endpoint
// cannot be used to probe for accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, meta domain.DeviceMeta) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		s.audit.Log(domain.NewAuditEvent(domain.UserLoginFailureEvent).
			WithEmail(email).WithDevice(meta).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive || !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.Log(domain.NewAuditEvent(domain.UserLoginFailureEvent).
			WithUser(user.ID).WithEmail(email).WithDevice(meta).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	result, err := s.issueTokens(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	s.audit.Log(domain.NewAuditEvent(domain.UserLoginEvent).
		WithUser(user.ID).WithEmail(user.Email).WithSession(result.SessionID).WithDevice(meta))
	return result, nil
}

// issueTokens mints a fresh token pair and its backing session. The session
// row is inserted before the tokens are returned: a refresh token is never
// handed out without a session that can revoke it.
func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *domain.User, meta domain.DeviceMeta) (*domain.AuthResult, error) {
	sessionID := uuid.NewString()

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: s.tokenSvc.HashToken(refreshToken),
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		ExpiresAt: time.Now().Add(s.tokenSvc.RefreshTTL()),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// Refresh implements domain.AuthService. Refresh tokens are single-use: a
// successful call deletes the presented session and issues a brand-new pair.
// A hash mismatch on an existing session is treated as compromise and
// destroys the session outright.
func (s *AuthServiceImpl) Refresh(ctx context.Context, userID uint, sessionID, refreshToken string, meta domain.DeviceMeta) (*domain.AuthResult, error) {
	session, err := s.sessionRepo.FindByIDAndUser(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if !s.tokenSvc.VerifyTokenHash(refreshToken, session.TokenHash) {
		// The signature already checked out upstream, so a mismatched hash
		// means a stale or stolen token. It must not stay retriable.
		if _, derr := s.sessionRepo.Delete(ctx, sessionID, userID); derr != nil {
			s.logger.Error("failed to delete session after hash mismatch",
				zap.String("session_id", sessionID), zap.Error(derr))
		}
		s.audit.Log(domain.NewAuditEvent(domain.SessionRevokedEvent).
			WithUser(userID).WithSession(sessionID).WithDevice(meta).WithError(domain.ErrInvalidRefreshToken))
		return nil, domain.ErrInvalidRefreshToken
	}

	deleted, err := s.sessionRepo.Delete(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}
	if !deleted {
		// A concurrent refresh with the same token already rotated it.
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	result, err := s.issueTokens(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	s.audit.Log(domain.NewAuditEvent(domain.SessionRefreshEvent).
		WithUser(user.ID).WithSession(result.SessionID).WithDevice(meta))
	return result, nil
}

// Logout implements domain.AuthService. Idempotent: logging out twice, or
// logging out an already-expired session, is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint, sessionID string) error {
	if _, err := s.sessionRepo.Delete(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.audit.Log(domain.NewAuditEvent(domain.UserLogoutEvent).
		WithUser(userID).WithSession(sessionID))
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
