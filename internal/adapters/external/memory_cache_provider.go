package external

import (
	"context"
	"time"

	"catalogapi.app/pkg/errors"
	gocache "github.com/patrickmn/go-cache"
)

const memoryCacheCleanupInterval = time.Minute

// MemoryCacheProvider implements CacheProvider with an in-process go-cache store
type MemoryCacheProvider struct {
	c *gocache.Cache
}

// NewMemoryCacheProvider creates an in-memory cache; expired items are purged every minute
func NewMemoryCacheProvider() *MemoryCacheProvider {
	return &MemoryCacheProvider{c: gocache.New(gocache.NoExpiration, memoryCacheCleanupInterval)}
}

func (m *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	v, ok := m.c.Get(key)
	if !ok {
		return nil, errors.NewNotFoundError("cache miss")
	}
	return v.([]byte), nil
}

func (m *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	// copy so callers cannot mutate cached bytes
	stored := make([]byte, len(value))
	copy(stored, value)
	m.c.Set(key, stored, ttl)
	return nil
}

func (m *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	m.c.Delete(key)
	return nil
}

func (m *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}
	_, ok := m.c.Get(key)
	return ok, nil
}

func (m *MemoryCacheProvider) Clear(ctx context.Context) error {
	m.c.Flush()
	return nil
}

// ItemCount returns the number of items, including expired ones not yet purged
func (m *MemoryCacheProvider) ItemCount() int {
	return m.c.ItemCount()
}
