package infrastructure

import (
	"context"
	"strconv"
	"time"

	"catalogapi.app/internal/ports"
)

// EmailHealthChecker reports whether SMTP delivery is configured.
// It does not dial the server.
type EmailHealthChecker struct {
	host     string
	port     int
	username string
}

// NewEmailHealthChecker creates a new email health checker
func NewEmailHealthChecker(host string, port int, username string) *EmailHealthChecker {
	return &EmailHealthChecker{host: host, port: port, username: username}
}

// Check verifies email configuration
func (e *EmailHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "smtp",
		Status:    "healthy",
		Details: map[string]interface{}{
			"host": e.host,
			"port": strconv.Itoa(e.port),
		},
	}
	if e.username == "" {
		status.Status = "degraded"
		status.Error = "smtp credentials are not configured"
	}
	return status
}

// CacheHealthChecker probes the response cache with a round trip
type CacheHealthChecker struct {
	cache     ports.CacheProvider
	cacheType string
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache ports.CacheProvider, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

const cacheProbeKey = "health:probe"

// Check writes and reads a probe key
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.cache == nil {
		status.Status = "unhealthy"
		status.Error = "cache provider is not available"
		return status
	}

	if err := c.cache.Set(ctx, cacheProbeKey, []byte("ok"), 10*time.Second); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}
	if _, err := c.cache.Get(ctx, cacheProbeKey); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	status.Status = "healthy"
	return status
}
