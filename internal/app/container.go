package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/membercms/authsvc/domain"
	"github.com/membercms/authsvc/internal/config"
	"github.com/membercms/authsvc/internal/infrastructure/auth"
	"github.com/membercms/authsvc/internal/infrastructure/database"
	"github.com/membercms/authsvc/internal/infrastructure/notifications"
	"github.com/membercms/authsvc/internal/infrastructure/repositories"
	"github.com/membercms/authsvc/internal/logging"
	"github.com/membercms/authsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	ResetRepo   domain.ResetTokenRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	Audit       domain.AuditLogger
	AuthSvc     domain.AuthService
	ResetSvc    domain.PasswordResetService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db
	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.UserRepo = repositories.NewUserRepository(db)
	c.SessionRepo = repositories.NewSessionRepository(db)
	c.ResetRepo = repositories.NewResetTokenRepository(db)

	c.PasswordSvc = auth.NewPasswordService(cfg.Pepper)
	c.TokenSvc = auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.Issuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.Mailer = notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	c.Audit = logging.NewZapAuditLogger(logger)

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc, c.Audit, logger)
	c.ResetSvc = services.NewPasswordResetService(
		c.UserRepo,
		c.ResetRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.Mailer,
		c.RedisClient,
		services.ResetConfig{
			CodeLength:   cfg.ResetCodeLength,
			CodeTTL:      cfg.ResetCodeTTL,
			ResendWindow: cfg.ResetResendWindow,
		},
		c.Audit,
		logger,
	)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
