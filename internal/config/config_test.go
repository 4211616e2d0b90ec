package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 50, cfg.Server.RateLimitPerSecond)
	assert.Equal(t, 100, cfg.Server.RateLimitBurst)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Seed.Enabled)
	assert.False(t, cfg.Store.EnforceReferences)
	assert.Empty(t, cfg.Database.DSN, "defaults must select the in-memory store")
}

func TestLoadFromPathMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte(`
server:
  host: 127.0.0.1
  port: 9090
database:
  driver: postgres
  dsn: postgres://localhost/market
logging:
  level: debug
store:
  enforce_references: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/market", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Store.EnforceReferences)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 50, cfg.Server.RateLimitPerSecond)
}

func TestLoadFromPathRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DATABASE_DSN", "postgres://env/market")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SEED_ENABLED", "false")
	t.Setenv("STORE_ENFORCE_REFERENCES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "postgres://env/market", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Seed.Enabled)
	assert.True(t, cfg.Store.EnforceReferences)
}

func TestEnvOverrideIgnoresBadPort(t *testing.T) {
	t.Setenv("SERVER_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
