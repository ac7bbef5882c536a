package cache

import (
	"os"

	"nutrirec-web/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache builds the shared cache that holds session tokens when
// session.token_backend is "cache"
func InitializeCache(cfg config.CacheConfig) cache.Cache {
	c, err := cache.New(cache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache:", zap.String("type", cfg.Type), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Cache initialized", zap.String("type", cfg.Type))
	return c
}
