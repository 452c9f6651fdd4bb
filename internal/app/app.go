package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/membercms/authsvc/internal/config"
	httpx "github.com/membercms/authsvc/internal/http"
	"github.com/membercms/authsvc/internal/http/handlers"
	"github.com/membercms/authsvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.RedisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.ResetSvc)
	authMW := middleware.NewAuthMW(c.TokenSvc)
	r := httpx.BuildRouter(authH, authMW)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}
