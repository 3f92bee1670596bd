package external

import (
	"context"
	"net/url"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
)

const catalogCachePrefix = "tmdb:"

// CachedCatalogProvider serves catalog responses from a cache and fills it
// from the wrapped provider on a miss. Upstream errors are never cached.
type CachedCatalogProvider struct {
	provider  ports.CatalogProvider
	cache     ports.CacheProvider
	ttl       time.Duration
	cacheType string
	metrics   ports.CacheMetrics
	logger    ports.Logger
}

// CachedCatalogProviderParams holds parameters for creating the caching decorator
type CachedCatalogProviderParams struct {
	Provider  ports.CatalogProvider
	Cache     ports.CacheProvider
	TTL       time.Duration
	CacheType string
	Metrics   ports.CacheMetrics
	Logger    ports.Logger
}

// NewCachedCatalogProvider creates the caching decorator
func NewCachedCatalogProvider(params CachedCatalogProviderParams) (*CachedCatalogProvider, error) {
	if params.Provider == nil {
		return nil, errors.NewValidationError("catalog provider is required")
	}
	if params.Cache == nil {
		return nil, errors.NewValidationError("cache provider is required")
	}
	if params.TTL <= 0 {
		return nil, errors.NewValidationError("cache TTL must be positive")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &CachedCatalogProvider{
		provider:  params.Provider,
		cache:     params.Cache,
		ttl:       params.TTL,
		cacheType: params.CacheType,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}, nil
}

// Fetch returns the cached body for path and query, fetching it on a miss
func (c *CachedCatalogProvider) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := CatalogCacheKey(path, query)

	body, err := c.cache.Get(ctx, key)
	if err == nil {
		c.recordHit()
		return body, nil
	}
	if !errors.IsNotFoundError(err) {
		c.logger.Warn("Catalog cache read failed", ports.F("key", key), ports.F("error", err))
	}
	c.recordMiss()

	body, err = c.provider.Fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("Catalog cache write failed", ports.F("key", key), ports.F("error", err))
	}
	return body, nil
}

func (c *CachedCatalogProvider) recordHit() {
	if c.metrics != nil {
		c.metrics.RecordHit(c.cacheType)
	}
}

func (c *CachedCatalogProvider) recordMiss() {
	if c.metrics != nil {
		c.metrics.RecordMiss(c.cacheType)
	}
}

// CatalogCacheKey builds a stable cache key; url.Values.Encode sorts by key
func CatalogCacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return catalogCachePrefix + path
	}
	return catalogCachePrefix + path + "?" + query.Encode()
}
