package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/umakantv/go-utils/cache"
)

const cacheKeyPrefix = "token:"

// CacheBackend keeps sealed tokens in the shared cache (memory or Redis).
// Expiry is left to the cache TTL.
type CacheBackend struct {
	cache cache.Cache
}

// NewCacheBackend wraps c
func NewCacheBackend(c cache.Cache) *CacheBackend {
	return &CacheBackend{cache: c}
}

func (b *CacheBackend) Load(_ context.Context, sessionID string) (string, error) {
	cached, err := b.cache.Get(cacheKeyPrefix + sessionID)
	if err != nil {
		// miss or expired
		return "", nil
	}
	switch v := cached.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected cached token type %T", cached)
	}
}

func (b *CacheBackend) Save(_ context.Context, sessionID, sealed string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		b.cache.Delete(cacheKeyPrefix + sessionID)
		return nil
	}
	b.cache.Set(cacheKeyPrefix+sessionID, sealed, ttl)
	return nil
}

func (b *CacheBackend) Delete(_ context.Context, sessionID string) error {
	b.cache.Delete(cacheKeyPrefix + sessionID)
	return nil
}
