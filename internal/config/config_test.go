package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaultsAndYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  max_upload_mb: 5
jwt:
  secret: file-secret
scheduler:
  expiry_window_days: 14
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 14, cfg.Scheduler.ExpiryWindowDays)
	assert.Equal(t, "0 1 * * *", cfg.Scheduler.ExpiryCron)
	assert.Equal(t, "uploads", cfg.Server.StoragePath)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURL())
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: file-secret\n")

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CRON_API_KEY", "cron-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 42, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "cron-key", cfg.Cron.APIKey)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "server:\n  port: \"8080\"\n"))
		assert.ErrorContains(t, err, "JWT secret is required")
	})

	t.Run("bad cron expression", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "jwt:\n  secret: s\nscheduler:\n  expiry_cron: \"every day\"\n"))
		assert.ErrorContains(t, err, "invalid expiry cron expression")
	})

	t.Run("bad env integer", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "many")
		_, err := LoadConfig(writeConfig(t, "jwt:\n  secret: s\n"))
		assert.ErrorContains(t, err, "DB_MAX_OPEN_CONNS")
	})
}

func TestLoadConfigEnvironmentAliases(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s\n")

	t.Setenv("PORT", "7000")
	t.Setenv("POSTGRES_DB", "agency")
	t.Setenv("DB_USER", "primary")
	t.Setenv("POSTGRES_USER", "fallback")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "agency", cfg.Database.DBName)
	assert.Equal(t, "primary", cfg.Database.User, "the first listed variable wins")
}

func TestLoadConfigReportsEveryBadVariable(t *testing.T) {
	t.Setenv("SMTP_PORT", "smtp")
	t.Setenv("SMTP_USE_TLS", "maybe")

	_, err := LoadConfig(writeConfig(t, "jwt:\n  secret: s\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "SMTP_PORT")
	assert.ErrorContains(t, err, "SMTP_USE_TLS")
}
