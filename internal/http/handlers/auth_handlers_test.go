package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/membercms/authsvc/domain"
	"github.com/membercms/authsvc/internal/http/middleware"
	"github.com/membercms/authsvc/internal/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testUser() *domain.User {
	return &domain.User{
		ID:        1,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Role:      domain.RoleEditor,
		IsActive:  true,
	}
}

func testAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		User:         testUser(),
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		SessionID:    "sess-1",
		ExpiresIn:    900,
	}
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func openRouter(h *AuthHandlers) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/password/forgot", h.ForgotPassword)
	r.POST("/auth/password/reset", h.ResetPassword)
	return r
}

// refreshContextRouter injects claims the way the refresh guard would.
func refreshContextRouter(h *AuthHandlers) *gin.Engine {
	r := gin.New()
	inject := func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uint(1))
		c.Set(middleware.CtxUserRole, domain.RoleEditor)
		c.Set(middleware.CtxSessionID, "sess-1")
		c.Set(middleware.CtxRefreshToken, "presented-refresh-token")
	}
	r.POST("/auth/refresh", inject, h.Refresh)
	r.POST("/auth/logout", inject, h.Logout)
	return r
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		loginErr       error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success",
			body:           LoginRequest{Email: "jane@example.com", Password: "secret123"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid credentials",
			body:           LoginRequest{Email: "jane@example.com", Password: "wrong"},
			loginErr:       domain.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
		{
			name:           "missing password",
			body:           gin.H{"email": "jane@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			body:           gin.H{"email": "not-an-email", "password": "secret123"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = func(ctx context.Context, email, password string, meta domain.DeviceMeta) (*domain.AuthResult, error) {
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}
				return testAuthResult(), nil
			}

			router := openRouter(NewAuthHandlers(authSvc, mocks.NewMockPasswordResetService()))
			w := postJSON(router, "/auth/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					Data struct {
						AccessToken  string `json:"access_token"`
						RefreshToken string `json:"refresh_token"`
						TokenType    string `json:"token_type"`
						ExpiresIn    int64  `json:"expires_in"`
						User         struct {
							Email string `json:"email"`
						} `json:"user"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "new-access-token", resp.Data.AccessToken)
				assert.Equal(t, "new-refresh-token", resp.Data.RefreshToken)
				assert.Equal(t, "Bearer", resp.Data.TokenType)
				assert.Equal(t, int64(900), resp.Data.ExpiresIn)
				assert.Equal(t, "jane@example.com", resp.Data.User.Email)
				assert.NotContains(t, w.Body.String(), "password", "the response must not leak password material")
			}
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		refreshErr     error
		expectedStatus int
		expectedError  string
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "session expired", refreshErr: domain.ErrSessionExpired, expectedStatus: http.StatusUnauthorized, expectedError: "Session expired"},
		{name: "invalid refresh token", refreshErr: domain.ErrInvalidRefreshToken, expectedStatus: http.StatusUnauthorized, expectedError: "Invalid refresh token"},
		{name: "user gone", refreshErr: domain.ErrUserNotFound, expectedStatus: http.StatusUnauthorized, expectedError: "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.RefreshFunc = func(ctx context.Context, userID uint, sessionID, refreshToken string, meta domain.DeviceMeta) (*domain.AuthResult, error) {
				require.Equal(t, uint(1), userID)
				require.Equal(t, "sess-1", sessionID)
				require.Equal(t, "presented-refresh-token", refreshToken)
				if tt.refreshErr != nil {
					return nil, tt.refreshErr
				}
				return testAuthResult(), nil
			}

			router := refreshContextRouter(NewAuthHandlers(authSvc, mocks.NewMockPasswordResetService()))
			w := postJSON(router, "/auth/refresh", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "new-refresh-token")
			}
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var loggedOut bool
	authSvc.LogoutFunc = func(ctx context.Context, userID uint, sessionID string) error {
		require.Equal(t, uint(1), userID)
		require.Equal(t, "sess-1", sessionID)
		loggedOut = true
		return nil
	}

	router := refreshContextRouter(NewAuthHandlers(authSvc, mocks.NewMockPasswordResetService()))
	w := postJSON(router, "/auth/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, loggedOut)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		requestErr     error
		expectedStatus int
	}{
		{
			name:           "known email",
			body:           ForgotPasswordRequest{Email: "jane@example.com"},
			expectedStatus: http.StatusOK,
		},
		{
			// The service reports success for unknown emails; the handler
			// must pass that through unchanged.
			name:           "unknown email looks identical",
			body:           ForgotPasswordRequest{Email: "nobody@example.com"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "throttled",
			body:           ForgotPasswordRequest{Email: "jane@example.com"},
			requestErr:     domain.ErrResetThrottled,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "missing email",
			body:           gin.H{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetSvc := mocks.NewMockPasswordResetService()
			resetSvc.RequestResetFunc = func(ctx context.Context, email string, meta domain.DeviceMeta) error {
				return tt.requestErr
			}

			router := openRouter(NewAuthHandlers(mocks.NewMockAuthService(), resetSvc))
			w := postJSON(router, "/auth/password/forgot", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"success":true`)
			}
		})
	}
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	valid := ResetPasswordRequest{Email: "jane@example.com", Code: "123456", NewPassword: "new-password-123"}

	tests := []struct {
		name           string
		body           any
		resetErr       error
		bindingFailure bool
		expectedStatus int
		expectedError  string
	}{
		{name: "success", body: valid, expectedStatus: http.StatusOK},
		{name: "unknown user", body: valid, resetErr: domain.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedError: "User not found"},
		{name: "expired code", body: valid, resetErr: domain.ErrResetCodeExpired, expectedStatus: http.StatusBadRequest, expectedError: "Code expired"},
		{name: "wrong code", body: valid, resetErr: domain.ErrResetCodeInvalid, expectedStatus: http.StatusBadRequest, expectedError: "Invalid code"},
		{
			name:           "non-numeric code rejected at binding",
			body:           gin.H{"email": "jane@example.com", "code": "abc123", "new_password": "new-password-123"},
			bindingFailure: true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password rejected at binding",
			body:           gin.H{"email": "jane@example.com", "code": "123456", "new_password": "short"},
			bindingFailure: true,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetSvc := mocks.NewMockPasswordResetService()
			called := false
			resetSvc.ResetPasswordFunc = func(ctx context.Context, email, code, newPassword string) error {
				called = true
				return tt.resetErr
			}

			router := openRouter(NewAuthHandlers(mocks.NewMockAuthService(), resetSvc))
			w := postJSON(router, "/auth/password/reset", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.bindingFailure {
				assert.False(t, called, "binding failures must not reach the service")
			}
		})
	}
}

func meRouter(h *AuthHandlers) *gin.Engine {
	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uint(1))
		c.Set(middleware.CtxUserRole, domain.RoleEditor)
	}, h.Me)
	return r
}

func TestAuthHandlers_Me(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	lastLogin := time.Now().Add(-time.Hour)
	authSvc.GetUserProfileFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
		user := testUser()
		user.LastLoginAt = &lastLogin
		return user, nil
	}

	router := meRouter(NewAuthHandlers(authSvc, mocks.NewMockPasswordResetService()))
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
	assert.Contains(t, w.Body.String(), domain.RoleEditor)
	assert.NotContains(t, w.Body.String(), "password")
}
