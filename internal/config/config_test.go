package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "15m", expected: 15 * time.Minute},
		{input: "900s", expected: 900 * time.Second},
		{input: "1h30m", expected: 90 * time.Minute},
		{input: "1d", expected: 24 * time.Hour},
		{input: "7d", expected: 7 * 24 * time.Hour},
		{input: "", wantErr: true},
		{input: "sevend", wantErr: true},
		{input: "7 days", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTTL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
app:
  port: 8080
  gin_mode: release
database:
  dsn: "host=localhost user=app dbname=app sslmode=disable"
redis:
  addr: "localhost:6379"
token:
  access_secret: "file-access-secret"
  refresh_secret: "file-refresh-secret"
  issuer: "authsvc"
  access_ttl: "15m"
  refresh_ttl: "7d"
password:
  pepper: "file-pepper"
reset:
  code_length: 6
  code_ttl_minutes: 15
  resend_window: "60s"
smtp:
  host: "smtp.example.com"
  port: 587
  from: "no-reply@example.com"
`

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "file-access-secret", cfg.AccessSecret)
	assert.Equal(t, "file-refresh-secret", cfg.RefreshSecret)
	assert.Equal(t, "authsvc", cfg.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "file-pepper", cfg.Pepper)
	assert.Equal(t, 6, cfg.ResetCodeLength)
	assert.Equal(t, 15*time.Minute, cfg.ResetCodeTTL)
	assert.Equal(t, time.Minute, cfg.ResetResendWindow)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	t.Setenv("ACCESS_TOKEN_SECRET", "env-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "env-refresh-secret")
	t.Setenv("PASSWORD_PEPPER", "env-pepper")
	t.Setenv("DATABASE_DSN", "host=db user=prod dbname=prod")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("RESET_CODE_TTL_MINUTES", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-access-secret", cfg.AccessSecret)
	assert.Equal(t, "env-refresh-secret", cfg.RefreshSecret)
	assert.Equal(t, "env-pepper", cfg.Pepper)
	assert.Equal(t, "host=db user=prod dbname=prod", cfg.DSN)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30*time.Minute, cfg.ResetCodeTTL)
}

func TestLoad_MissingSecretsFail(t *testing.T) {
	yml := `
app:
  port: 8080
database:
  dsn: "host=localhost"
redis:
  addr: "localhost:6379"
token:
  issuer: "authsvc"
  access_ttl: "15m"
  refresh_ttl: "7d"
password:
  pepper: "p"
`
	path := writeConfigFile(t, yml)

	_, err := Load(path)
	require.Error(t, err, "empty token secrets must be a startup error")
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_InvalidTTLFails(t *testing.T) {
	yml := `
database:
  dsn: "host=localhost"
redis:
  addr: "localhost:6379"
token:
  access_secret: "s1"
  refresh_secret: "s2"
  access_ttl: "fifteen minutes"
  refresh_ttl: "7d"
password:
  pepper: "p"
`
	path := writeConfigFile(t, yml)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token TTL")
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	yml := `
database:
  dsn: "host=localhost"
redis:
  addr: "localhost:6379"
token:
  access_secret: "s1"
  refresh_secret: "s2"
  access_ttl: "15m"
  refresh_ttl: "7d"
password:
  pepper: "p"
`
	path := writeConfigFile(t, yml)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.ResetCodeLength, "code length defaults to 6 digits")
	assert.Equal(t, 15*time.Minute, cfg.ResetCodeTTL, "code TTL defaults to 15 minutes")
	assert.Equal(t, time.Duration(0), cfg.ResetResendWindow)
}
