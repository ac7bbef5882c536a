package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrirec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFile_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://diet.example.com/api
  timeout: 5s
session:
  token_backend: sql
  idle_ttl: 1h
cache:
  type: redis
  redis_addr: redis:6379
  redis_db: 2
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://diet.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, BackendSQL, cfg.Session.TokenBackend)
	assert.Equal(t, time.Hour, cfg.Session.IdleTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TokenTTL)
	assert.Equal(t, "session_id", cfg.Session.CookieName)
	assert.Equal(t, CacheRedis, cfg.Cache.Type)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadFile(writeConfig(t, "api: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9000\"\napi:\n  base_url: http://file:5000/api\n")
	t.Setenv("NUTRIREC_CONFIG", path)
	t.Setenv("NUTRIREC_API_URL", "http://env:5000/api")
	t.Setenv("NUTRIREC_API_TIMEOUT", "3s")
	t.Setenv("NUTRIREC_COOKIE_SECURE", "true")
	t.Setenv("NUTRIREC_REDIS_DB", "4")
	t.Setenv("NUTRIREC_TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "http://env:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, 4, cfg.Cache.RedisDB)
	assert.Equal(t, "s3cret", cfg.Session.TokenSecret)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Setenv("NUTRIREC_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := map[string]string{
		"NUTRIREC_API_TIMEOUT":   "soon",
		"NUTRIREC_REDIS_DB":      "zero",
		"NUTRIREC_COOKIE_SECURE": "maybe",
		"NUTRIREC_PORT":          "http",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("NUTRIREC_CONFIG", writeConfig(t, "{}"))
			t.Setenv(name, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = "0" }, "server.port"},
		{"relative api url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url"},
		{"ftp api url", func(c *Config) { c.API.BaseURL = "ftp://host/api" }, "api.base_url"},
		{"timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"cookie", func(c *Config) { c.Session.CookieName = "" }, "session.cookie_name"},
		{"idle ttl", func(c *Config) { c.Session.IdleTTL = -time.Second }, "session.idle_ttl"},
		{"backend", func(c *Config) { c.Session.TokenBackend = "file" }, "session.token_backend"},
		{"sql needs path", func(c *Config) { c.Session.TokenBackend = BackendSQL; c.Database.Path = "" }, "database.path"},
		{"cache type", func(c *Config) { c.Cache.Type = "memcached" }, "cache.type"},
		{"redis addr", func(c *Config) { c.Cache.Type = CacheRedis; c.Cache.RedisAddr = "" }, "cache.redis_addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
