package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// applyEnvOverrides overrides config values with NUTRIREC_* variables if set
func applyEnvOverrides(cfg *Config) error {
	if port := os.Getenv("NUTRIREC_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if baseURL := os.Getenv("NUTRIREC_API_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if err := envDuration("NUTRIREC_API_TIMEOUT", &cfg.API.Timeout); err != nil {
		return err
	}

	if secure := os.Getenv("NUTRIREC_COOKIE_SECURE"); secure != "" {
		b, err := strconv.ParseBool(secure)
		if err != nil {
			return fmt.Errorf("invalid NUTRIREC_COOKIE_SECURE %q: %w", secure, err)
		}
		cfg.Session.CookieSecure = b
	}
	if err := envDuration("NUTRIREC_SESSION_IDLE_TTL", &cfg.Session.IdleTTL); err != nil {
		return err
	}
	if err := envDuration("NUTRIREC_TOKEN_TTL", &cfg.Session.TokenTTL); err != nil {
		return err
	}
	if backend := os.Getenv("NUTRIREC_TOKEN_BACKEND"); backend != "" {
		cfg.Session.TokenBackend = backend
	}
	if secret := os.Getenv("NUTRIREC_TOKEN_SECRET"); secret != "" {
		cfg.Session.TokenSecret = secret
	}

	if cacheType := os.Getenv("NUTRIREC_CACHE_TYPE"); cacheType != "" {
		cfg.Cache.Type = cacheType
	}
	if addr := os.Getenv("NUTRIREC_REDIS_ADDR"); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
	if password := os.Getenv("NUTRIREC_REDIS_PASSWORD"); password != "" {
		cfg.Cache.RedisPassword = password
	}
	if db := os.Getenv("NUTRIREC_REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid NUTRIREC_REDIS_DB %q: %w", db, err)
		}
		cfg.Cache.RedisDB = n
	}

	if path := os.Getenv("NUTRIREC_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = d
	return nil
}
