package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of a failed response body is kept in the error.
const maxErrorBody = 512

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// Client overrides the underlying http.Client. Timeout is ignored when set.
	Client *http.Client
}

// HTTPFetcher implements Fetcher using net/http. Each call issues exactly one
// request; there is no retry and no rate limiting.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "featurelayer-cli/1.0"
	}
	client := opts.Client
	if client == nil {
		transport := &http.Transport{
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		}
		client = &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		}
	}
	return &HTTPFetcher{
		client: client,
		opts:   opts,
	}
}

// Download fetches the URL and returns the response body.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "download %s", rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		zap.L().Debug("http request failed",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download: unexpected status %d from %s", e.StatusCode, e.URL)
}
