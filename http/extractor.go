// Package http provides an HTTP-based implementation of
// linkstat.LinkExtractor for static pages that don't require JavaScript
// rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/linkstat"
	"github.com/fwojciec/linkstat/goquery"
)

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultTimeout (5m).
const DefaultTimeout = 5 * time.Minute

// userAgent is sent with every request so the crawl renders the same page a
// desktop browser would.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Extractor implements linkstat.LinkExtractor at compile time.
var _ linkstat.LinkExtractor = (*Extractor)(nil)

// Extractor discovers same-site links by fetching raw HTML over HTTP and
// parsing it without script execution. Unlike rod.Extractor, element
// visibility cannot be computed, so every record reports IsVisible true.
type Extractor struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (5m) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// NewExtractor creates a new HTTP-based Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.client = &http.Client{
		Timeout: e.timeout,
	}

	return e
}

// ExtractLinks fetches the source page and returns its same-site links.
// The calling goroutine is blocked for the duration of the request and
// parse.
func (e *Extractor) ExtractLinks(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, sourceURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return goquery.ExtractLinks(string(body), sourceURL)
}

// Close releases resources. For the HTTP extractor this is a no-op since
// http.Client doesn't require explicit cleanup.
func (e *Extractor) Close() error {
	return nil
}
