package crawlspace

import (
	"context"
	"time"
)

// RobotsPolicy answers robots.txt allow/deny queries.
//
// Implementations fetch each host's robots.txt lazily on first query and
// cache the parsed rules for the lifetime of the crawl run. A missing or
// unfetchable robots.txt is a soft condition and must be treated as
// allow-all, never as a failure.
type RobotsPolicy interface {
	// Allowed reports whether the crawler may fetch the URL.
	Allowed(ctx context.Context, rawURL string) bool

	// CrawlDelay returns the crawl-delay directive for the URL's host,
	// or 0 when the host specifies none. The engine takes the maximum of
	// this value and the configured delay.
	CrawlDelay(ctx context.Context, rawURL string) time.Duration
}

// HostLimiter serializes request pacing per host.
// Requests to distinct hosts are independent.
type HostLimiter interface {
	// Wait blocks until the host's minimum interval has elapsed since the
	// previous request, or the context is canceled.
	Wait(ctx context.Context, host string) error

	// SetMinInterval raises the host's minimum interval, typically from a
	// robots.txt crawl-delay directive. Intervals below the limiter's
	// configured default are ignored.
	SetMinInterval(host string, d time.Duration)
}
