// Package config loads nutrirec-web settings from nutrirec.yaml, .env and
// NUTRIREC_* environment variables, in increasing order of precedence.
package config

import (
	"time"
)

const (
	DefaultPath = "nutrirec.yaml"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	BackendCache = "cache"
	BackendSQL   = "sql"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Session  SessionConfig  `yaml:"session"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// APIConfig points at the remote diet API
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	CookieName   string        `yaml:"cookie_name"`
	CookieSecure bool          `yaml:"cookie_secure"`
	IdleTTL      time.Duration `yaml:"idle_ttl"`
	SweepEvery   time.Duration `yaml:"sweep_every"`
	// TokenBackend is "cache" or "sql"
	TokenBackend string        `yaml:"token_backend"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	// TokenSecret seals stored tokens. Empty means a random key per process.
	TokenSecret string `yaml:"token_secret"`
}

type CacheConfig struct {
	Type          string `yaml:"type"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

type DatabaseConfig struct {
	Path       string `yaml:"path"`
	Migrations string `yaml:"migrations"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			CookieName:   "session_id",
			IdleTTL:      30 * time.Minute,
			SweepEvery:   5 * time.Minute,
			TokenBackend: BackendCache,
			TokenTTL:     7 * 24 * time.Hour,
		},
		Cache: CacheConfig{
			Type:      CacheMemory,
			RedisAddr: "localhost:6379",
		},
		Database: DatabaseConfig{
			Path:       "./nutrirec.db",
			Migrations: "./database/migrations",
		},
	}
}
