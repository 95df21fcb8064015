package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AGILE_PRIMARY__ENV", "local")
	t.Setenv("AGILE_SERVER__PORT", "8080")
	t.Setenv("AGILE_SERVER__READ_TIMEOUT", "30")
	t.Setenv("AGILE_SERVER__WRITE_TIMEOUT", "30")
	t.Setenv("AGILE_SERVER__IDLE_TIMEOUT", "60")
	t.Setenv("AGILE_DATABASE__HOST", "localhost")
	t.Setenv("AGILE_DATABASE__PORT", "5432")
	t.Setenv("AGILE_DATABASE__USER", "postgres")
	t.Setenv("AGILE_DATABASE__PASSWORD", "p@ss:word")
	t.Setenv("AGILE_DATABASE__NAME", "agile")
	t.Setenv("AGILE_DATABASE__SSL_MODE", "disable")
	t.Setenv("AGILE_REDIS__ADDRESS", "localhost:6379")
}

func TestLoadConfigAppliesPoolDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DefaultPoolSize, cfg.Database.PoolSize)
	assert.Equal(t, DefaultMaxOverflow, cfg.Database.MaxOverflow)
	assert.Equal(t, DefaultPoolTimeout, cfg.Database.PoolTimeout)
	assert.Equal(t, DefaultPoolRecycle, cfg.Database.PoolRecycle)
	assert.Equal(t, int32(15), cfg.Database.MaxConns())
	assert.Equal(t, DefaultEmailFrom, cfg.Integration.EmailFrom)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
}

func TestLoadConfigOverridesPool(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AGILE_DATABASE__POOL_SIZE", "2")
	t.Setenv("AGILE_DATABASE__MAX_OVERFLOW", "1")
	t.Setenv("AGILE_DATABASE__POOL_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Database.PoolSize)
	assert.Equal(t, 1, cfg.Database.MaxOverflow)
	assert.Equal(t, 5*time.Second, cfg.Database.PoolTimeout)
	assert.Equal(t, int32(3), cfg.Database.MaxConns())
}

func TestLoadConfigMissingDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AGILE_DATABASE__HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
}

func TestDSNEscapesPassword(t *testing.T) {
	d := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:word",
		Name:     "agile",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@[::1]:5432/agile?sslmode=disable", d.DSN())
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityHasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("database"))
	assert.False(t, cfg.HasCheck("mongo"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("database"))
}
