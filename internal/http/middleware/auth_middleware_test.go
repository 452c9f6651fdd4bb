package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/membercms/authsvc/domain"
	"github.com/membercms/authsvc/internal/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type capturedContext struct {
	userID       uint
	userRole     string
	sessionID    string
	refreshToken string
	reached      bool
}

func accessRouter(tokenSvc domain.TokenService, captured *capturedContext) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AccessTokenMiddleware(tokenSvc), func(c *gin.Context) {
		captured.reached = true
		captured.userID = c.GetUint(CtxUserID)
		captured.userRole = c.GetString(CtxUserRole)
		c.Status(http.StatusOK)
	})
	return r
}

func refreshRouter(tokenSvc domain.TokenService, captured *capturedContext) *gin.Engine {
	r := gin.New()
	r.POST("/refresh", RefreshTokenMiddleware(tokenSvc), func(c *gin.Context) {
		captured.reached = true
		captured.userID = c.GetUint(CtxUserID)
		captured.sessionID = c.GetString(CtxSessionID)
		captured.refreshToken = c.GetString(CtxRefreshToken)
		c.Status(http.StatusOK)
	})
	return r
}

func TestAccessTokenMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header required",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header required",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer stale-token",
			validateErr:    domain.ErrTokenExpired,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token expired",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer bad-token",
			validateErr:    domain.ErrTokenInvalid,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "malformed token",
			authHeader:     "Bearer garbage",
			validateErr:    domain.ErrTokenMalformed,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
				if tt.validateErr != nil {
					return nil, tt.validateErr
				}
				return &domain.TokenClaims{UserID: 7, Role: domain.RoleEditor}, nil
			}

			var captured capturedContext
			router := accessRouter(tokenSvc, &captured)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, captured.reached)
				assert.Equal(t, uint(7), captured.userID)
				assert.Equal(t, domain.RoleEditor, captured.userRole)
			} else {
				assert.False(t, captured.reached, "the handler must not run on rejection")
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestRefreshTokenMiddleware(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		require.Equal(t, "the-refresh-token", token)
		return &domain.TokenClaims{UserID: 7, Role: domain.RoleEditor, SessionID: "sess-1"}, nil
	}

	var captured capturedContext
	router := refreshRouter(tokenSvc, &captured)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer the-refresh-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), captured.userID)
	assert.Equal(t, "sess-1", captured.sessionID)
	assert.Equal(t, "the-refresh-token", captured.refreshToken, "the raw token must reach the handler")
}

func TestRefreshTokenMiddleware_RejectsAccessToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		// An access token presented here fails validation: wrong secret
		// and no session claim.
		return nil, domain.ErrTokenInvalid
	}

	var captured capturedContext
	router := refreshRouter(tokenSvc, &captured)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer an-access-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.reached)
}
