package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/membercms/authsvc/domain"
	"github.com/membercms/authsvc/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	resetSvc domain.PasswordResetService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, resetSvc domain.PasswordResetService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		resetSvc: resetSvc,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents completion of a password reset
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func deviceMeta(c *gin.Context) domain.DeviceMeta {
	return domain.DeviceMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
}

func tokenPairBody(result *domain.AuthResult) gin.H {
	return gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    result.ExpiresIn,
	}
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, deviceMeta(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	body := tokenPairBody(result)
	body["user"] = gin.H{
		"id":         result.User.ID,
		"first_name": result.User.FirstName,
		"last_name":  result.User.LastName,
		"email":      result.User.Email,
		"role":       result.User.Role,
	}
	c.JSON(http.StatusOK, gin.H{"data": body})
}

// Refresh handles token refresh. The refresh guard has already verified the
// token signature and put the claims plus the raw token on the context.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	sessionID := c.GetString(middleware.CtxSessionID)
	refreshToken := c.GetString(middleware.CtxRefreshToken)

	result, err := h.authSvc.Refresh(c.Request.Context(), userID, sessionID, refreshToken, deviceMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tokenPairBody(result)})
}

// Logout revokes the presented session. Idempotent.
func (h *AuthHandlers) Logout(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	sessionID := c.GetString(middleware.CtxSessionID)

	if err := h.authSvc.Logout(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}

// ForgotPassword handles a password reset request. The response is identical
// for known and unknown emails.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resetSvc.RequestReset(c.Request.Context(), req.Email, deviceMeta(c)); err != nil {
		if errors.Is(err, domain.ErrResetThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}

// ResetPassword completes a password reset with the emailed code
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resetSvc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrResetCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code expired"})
		case errors.Is(err, domain.ErrResetCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":            user.ID,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"email":         user.Email,
			"role":          user.Role,
			"is_active":     user.IsActive,
			"last_login_at": user.LastLoginAt,
			"created_at":    user.CreatedAt,
		},
	})
}
