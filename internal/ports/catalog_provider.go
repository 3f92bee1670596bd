package ports

import (
	"context"
	"net/url"
)

// CatalogProvider fetches raw JSON documents from the movie database API.
// path is relative to the API root, e.g. "/movie/550/videos".
type CatalogProvider interface {
	Fetch(ctx context.Context, path string, query url.Values) ([]byte, error)
}
