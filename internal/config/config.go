package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TokenConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type PasswordConfig struct {
	Pepper string `yaml:"pepper"`
}

type ResetConfig struct {
	CodeLength     int    `yaml:"code_length"`
	CodeTTLMinutes int    `yaml:"code_ttl_minutes"`
	ResendWindow   string `yaml:"resend_window"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Token    TokenConfig    `yaml:"token"`
	Password PasswordConfig `yaml:"password"`
	Reset    ResetConfig    `yaml:"reset"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

// Config is the resolved process configuration. It is constructed once at
// startup and treated as read-only afterwards; secrets are validated here so
// tokens can never be issued with an empty secret.
type Config struct {
	Port    string
	GinMode string

	DSN string `validate:"required"`

	RedisAddr     string `validate:"required"`
	RedisPassword string
	RedisDB       int

	AccessSecret  string `validate:"required"`
	RefreshSecret string `validate:"required"`
	Issuer        string
	AccessTTL     time.Duration `validate:"gt=0"`
	RefreshTTL    time.Duration `validate:"gt=0"`

	Pepper string `validate:"required"`

	ResetCodeLength   int           `validate:"gte=4,lte=10"`
	ResetCodeTTL      time.Duration `validate:"gt=0"`
	ResetResendWindow time.Duration `validate:"gte=0"`

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml config file at path, applies environment overrides for
// secrets and connection strings, and validates the result. Any missing
// secret or malformed TTL is a startup error.
func Load(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := ParseTTL(env("ACCESS_TOKEN_TTL", configFile.Token.AccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid access token TTL: %w", err)
	}

	refTTL, err := ParseTTL(env("REFRESH_TOKEN_TTL", configFile.Token.RefreshTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token TTL: %w", err)
	}

	resendWindow := time.Duration(0)
	if w := configFile.Reset.ResendWindow; w != "" {
		resendWindow, err = ParseTTL(w)
		if err != nil {
			return nil, fmt.Errorf("invalid reset resend window: %w", err)
		}
	}

	codeLength := configFile.Reset.CodeLength
	if codeLength == 0 {
		codeLength = 6
	}
	codeTTLMinutes := configFile.Reset.CodeTTLMinutes
	if v := os.Getenv("RESET_CODE_TTL_MINUTES"); v != "" {
		codeTTLMinutes, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RESET_CODE_TTL_MINUTES: %w", err)
		}
	}
	if codeTTLMinutes == 0 {
		codeTTLMinutes = 15
	}

	cfg := &Config{
		Port:    fmt.Sprintf("%d", configFile.App.Port),
		GinMode: configFile.App.GinMode,

		DSN: env("DATABASE_DSN", configFile.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		AccessSecret:  env("ACCESS_TOKEN_SECRET", configFile.Token.AccessSecret),
		RefreshSecret: env("REFRESH_TOKEN_SECRET", configFile.Token.RefreshSecret),
		Issuer:        configFile.Token.Issuer,
		AccessTTL:     accTTL,
		RefreshTTL:    refTTL,

		Pepper: env("PASSWORD_PEPPER", configFile.Password.Pepper),

		ResetCodeLength:   codeLength,
		ResetCodeTTL:      time.Duration(codeTTLMinutes) * time.Minute,
		ResetResendWindow: resendWindow,

		SMTPHost:     env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:     configFile.SMTP.Port,
		SMTPUsername: env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword: env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:     env("SMTP_FROM", configFile.SMTP.From),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ParseTTL parses a human-readable duration. On top of time.ParseDuration
// syntax it accepts an Nd suffix meaning N days ("7d" == 168h).
func ParseTTL(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
