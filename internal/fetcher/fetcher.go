// Package fetcher retrieves raw feed payloads over HTTP or from local files.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"portfolio/internal/feederr"
	"portfolio/internal/models"
)

const (
	acceptJSON = "application/json"
	acceptFeed = "application/atom+xml, application/rss+xml, application/xml, text/xml; charset=utf-8"

	defaultUserAgent = "portfolio-feed/1.0 (+https://github.com/)"

	// maxBodySize bounds payloads; snapshots hold tens of articles
	maxBodySize = 16 << 20
)

// HTTPClient allows injecting a client for tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Fetcher
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client HTTPClient) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		f.userAgent = userAgent
	}
}

// Fetcher retrieves raw payloads. It relies on the transport's own timeouts.
type Fetcher struct {
	client    HTTPClient
	userAgent string
}

// New creates a Fetcher that understands http, https and file URLs
func New(opts ...Option) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	f := &Fetcher{
		client:    &http.Client{Transport: transport},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of url. Network failures and non-2xx statuses are
// reported as transport errors.
func (f *Fetcher) Fetch(ctx context.Context, url string, format models.Format) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, feederr.New(feederr.KindTransport, url, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", acceptHeader(format))
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, feederr.New(feederr.KindTransport, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &feederr.Error{
			Kind:       feederr.KindTransport,
			Source:     url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, feederr.New(feederr.KindTransport, url, fmt.Errorf("failed to read body: %w", err))
	}
	return body, nil
}

func acceptHeader(format models.Format) string {
	if format == models.FormatFeed {
		return acceptFeed
	}
	return acceptJSON
}
