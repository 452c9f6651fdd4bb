package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/membercms/authsvc/internal/http/handlers"
	"github.com/membercms/authsvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, mw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/password/forgot", ah.ForgotPassword)
	auth.POST("/password/reset", ah.ResetPassword)

	// Refresh and logout take the refresh token as Bearer.
	auth.POST("/refresh", mw.WithRefreshToken(), ah.Refresh)
	auth.POST("/logout", mw.WithRefreshToken(), ah.Logout)

	auth.GET("/me", mw.WithAccessToken(), ah.Me)

	return r
}
