package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/membercms/authsvc/domain"
)

// Context keys set by the guards.
const (
	CtxUserID       = "user_id"
	CtxUserRole     = "user_role"
	CtxSessionID    = "session_id"
	CtxRefreshToken = "refresh_token"
)

// AuthMW wraps the token service for the guard middleware
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithAccessToken guards endpoints that require a valid access token
func (mw *AuthMW) WithAccessToken() gin.HandlerFunc {
	return AccessTokenMiddleware(mw.tokenSvc)
}

// WithRefreshToken guards endpoints that take the refresh token as Bearer
func (mw *AuthMW) WithRefreshToken() gin.HandlerFunc {
	return RefreshTokenMiddleware(mw.tokenSvc)
}
