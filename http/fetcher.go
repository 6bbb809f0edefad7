// Package http provides the HTTP implementations of crawlspace.Fetcher
// and crawlspace.RobotsPolicy.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aknapek/crawlspace"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20 // 10 MiB

// Ensure Fetcher implements crawlspace.Fetcher at compile time.
var _ crawlspace.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over HTTP. It performs exactly one GET per call
// and classifies failures into crawlspace.FetchError kinds; retry and
// pacing belong to the crawl engine.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: crawlspace.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the URL and returns its body and status code.
// Non-2xx statuses, non-HTML content types, timeouts and connection
// failures all return a *crawlspace.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawlspace.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &crawlspace.FetchError{Kind: crawlspace.FetchNetwork, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &crawlspace.FetchError{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &crawlspace.FetchError{
			Kind:       crawlspace.FetchStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return nil, &crawlspace.FetchError{
			Kind:       crawlspace.FetchContent,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        errors.New("unsupported content type " + contentType),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &crawlspace.FetchError{Kind: classify(err), URL: url, Err: err}
	}

	return &crawlspace.FetchResult{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

// classify maps a transport error to a FetchError kind.
func classify(err error) crawlspace.FetchKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return crawlspace.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return crawlspace.FetchTimeout
	}
	return crawlspace.FetchNetwork
}
