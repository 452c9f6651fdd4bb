package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/membercms/authsvc/domain"
)

// bearerToken extracts the Bearer credential from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

func rejectTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token validation failed"})
	}
	c.Abort()
}

// AccessTokenMiddleware authenticates requests with a short-lived access
// token and places the claims on the context.
func AccessTokenMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(token)
		if err != nil {
			rejectTokenError(c, err)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// RefreshTokenMiddleware authenticates refresh and logout requests, which
// present the refresh token as Bearer. The raw token is passed through to
// the handler: the service needs it for the session hash comparison.
func RefreshTokenMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.ValidateRefreshToken(token)
		if err != nil {
			rejectTokenError(c, err)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxSessionID, claims.SessionID)
		c.Set(CtxRefreshToken, token)
		c.Next()
	}
}
