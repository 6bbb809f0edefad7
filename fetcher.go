package crawlspace

import (
	"context"
	"errors"
	"fmt"
)

// FetchResult holds a successfully fetched page.
type FetchResult struct {
	Body        []byte
	StatusCode  int
	ContentType string
}

// Fetcher performs a single HTTP GET. Retry and rate limiting are layered
// on top by the crawl engine.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// FetchKind classifies fetch failures.
type FetchKind string

// Fetch failure kinds.
const (
	// FetchNetwork covers connection-level failures (DNS, refused, reset).
	FetchNetwork FetchKind = "network"

	// FetchTimeout covers request timeouts and deadline expiry.
	FetchTimeout FetchKind = "timeout"

	// FetchStatus covers non-2xx HTTP responses.
	FetchStatus FetchKind = "http_status"

	// FetchContent covers 2xx responses with a non-HTML content type.
	FetchContent FetchKind = "content"
)

// FetchError is the terminal failure of a fetch pipeline.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: %s %d", e.URL, e.Kind, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could succeed.
// Timeouts and network failures are transient; HTTP statuses are retried
// only for 5xx and 429.
func (e *FetchError) Retryable() bool {
	switch e.Kind {
	case FetchTimeout, FetchNetwork:
		return true
	case FetchStatus:
		return e.StatusCode >= 500 || e.StatusCode == 429
	default:
		return false
	}
}

// RetryableError reports whether err warrants another fetch attempt.
// Errors that are not FetchErrors are treated as transient.
func RetryableError(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return true
}
