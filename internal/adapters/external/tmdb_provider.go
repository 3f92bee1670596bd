// Package external provides adapters for external services: the TMDB
// catalog API and the response caches in front of it.
package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/tidwall/gjson"
)

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TMDBProviderAdapter implements CatalogProvider for TMDB v3 with a bearer token
type TMDBProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// TMDBProviderParams holds parameters for creating the TMDB provider
type TMDBProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// NewTMDBProviderAdapter creates a new TMDB provider adapter
func NewTMDBProviderAdapter(params TMDBProviderParams) *TMDBProviderAdapter {
	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &TMDBProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}
}

// Fetch performs a GET on path and returns the raw JSON body
func (p *TMDBProviderAdapter) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, errors.NewValidationError("catalog path must start with /")
	}

	endpoint := p.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build TMDB request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to call TMDB", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close TMDB response body", ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to read TMDB response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError(statusMessage(body, "resource not found"))
	case resp.StatusCode != http.StatusOK:
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("TMDB returned status %d: %s", resp.StatusCode, statusMessage(body, http.StatusText(resp.StatusCode))), nil)
	}

	if !gjson.ValidBytes(body) {
		return nil, errors.NewExternalAPIError("TMDB returned malformed JSON", nil)
	}
	return body, nil
}

// statusMessage extracts TMDB's status_message from an error body
func statusMessage(body []byte, fallback string) string {
	if msg := gjson.GetBytes(body, "status_message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return fallback
}

// GetProviderName returns the name of this catalog provider
func (p *TMDBProviderAdapter) GetProviderName() string {
	return "tmdb"
}
