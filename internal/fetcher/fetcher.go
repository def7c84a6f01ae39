// Package fetcher issues the HTTP requests behind feature-layer paging and
// decodes their JSON bodies.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download issues a GET for the URL and returns the response body.
	// Non-2xx responses are returned as errors.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
