package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Validate reports the first setting that cannot work
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server.port must be a TCP port, got %q", c.Server.Port)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}

	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name must be set")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idle_ttl must be positive")
	}
	if c.Session.SweepEvery <= 0 {
		return errors.New("session.sweep_every must be positive")
	}
	if c.Session.TokenTTL <= 0 {
		return errors.New("session.token_ttl must be positive")
	}
	switch c.Session.TokenBackend {
	case BackendCache:
	case BackendSQL:
		if c.Database.Path == "" {
			return errors.New("database.path must be set when session.token_backend is sql")
		}
	default:
		return fmt.Errorf("session.token_backend must be %q or %q, got %q", BackendCache, BackendSQL, c.Session.TokenBackend)
	}

	switch c.Cache.Type {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr must be set when cache.type is redis")
		}
	default:
		return fmt.Errorf("cache.type must be %q or %q, got %q", CacheMemory, CacheRedis, c.Cache.Type)
	}
	return nil
}
