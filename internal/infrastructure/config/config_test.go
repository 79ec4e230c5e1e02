package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: debug\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, config.DefaultDatabasePath(), cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.API.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 10*time.Minute, cfg.Poller.IdleBudget)
	assert.False(t, cfg.Cache.Enabled())
}

func TestLoadConfig_FileValues(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
api:
  base_url: http://localhost:9000
  timeout: 5s
  retry:
    max_attempts: 1
cache:
  redis_url: redis://localhost:6379/0
  ttl: 1m
poller:
  interval: 10s
  idle_budget: 2m
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Retry.MaxAttempts)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Minute, cfg.Poller.IdleBudget)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: debug\n")
	t.Setenv("COLONIAL_LOGGING_LEVEL", "warn")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.RedisURL)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: loud\n")

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestValidateConfig_IdleBudgetShorterThanInterval(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Poller.Interval = time.Minute
	cfg.Poller.IdleBudget = 30 * time.Second

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IdleBudget")
}

func TestValidateConfig_PostgresNeedsHostOrURL(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "postgres"
	cfg.Database.Host = ""

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)

	cfg.Database.URL = "postgresql://colonial@localhost:5432/colonial"
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestLoggingConfig_ToLogging(t *testing.T) {
	// Arrange
	lc := config.LoggingConfig{Level: "info", Format: "console", Output: "file", FilePath: "/tmp/colonial.log"}

	// Act
	out := lc.ToLogging()

	// Assert
	assert.Equal(t, "console", out.Format)
	assert.Equal(t, []string{"/tmp/colonial.log"}, out.OutputPaths)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{"memory", config.DatabaseConfig{Type: "sqlite"}, ":memory:"},
		{"sqlite file", config.DatabaseConfig{Type: "sqlite", Path: "/tmp/c.db"},
			"file:/tmp/c.db?_busy_timeout=5000&_journal_mode=WAL"},
		{"postgres url wins", config.DatabaseConfig{Type: "postgres", URL: "postgresql://u@h/db", Host: "other"},
			"postgresql://u@h/db"},
		{"postgres fields", config.DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"},
			"host=db port=5432 user=u password=p dbname=n sslmode=disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
