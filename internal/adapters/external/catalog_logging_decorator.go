package external

import (
	"context"
	"net/url"
	"time"

	"catalogapi.app/internal/ports"
)

// CatalogProviderLoggingDecorator logs every upstream catalog request
type CatalogProviderLoggingDecorator struct {
	provider ports.CatalogProvider
	name     string
	logger   ports.Logger
}

// NewCatalogProviderLoggingDecorator creates a new logging decorator for catalog providers
func NewCatalogProviderLoggingDecorator(provider ports.CatalogProvider, name string, logger ports.Logger) *CatalogProviderLoggingDecorator {
	return &CatalogProviderLoggingDecorator{
		provider: provider,
		name:     name,
		logger:   logger,
	}
}

// Fetch wraps the provider call with structured logging
func (d *CatalogProviderLoggingDecorator) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	d.logger.Debug("Catalog request started",
		ports.F("provider", d.name),
		ports.F("path", path),
		ports.F("event", "request"))

	start := time.Now()
	body, err := d.provider.Fetch(ctx, path, query)
	duration := time.Since(start)

	if err != nil {
		d.logger.Error("Catalog request failed",
			ports.F("provider", d.name),
			ports.F("path", path),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Catalog request completed",
		ports.F("provider", d.name),
		ports.F("path", path),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("bytes", len(body)))
	return body, nil
}
