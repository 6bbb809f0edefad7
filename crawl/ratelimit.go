package crawl

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aknapek/crawlspace"
)

var _ crawlspace.HostLimiter = (*HostLimiter)(nil)

// HostLimiter enforces a minimum interval between requests to the same host
// using token buckets. Each host gets its own limiter with a burst of 1, so
// requests to one host are serialized while different hosts proceed
// independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewHostLimiter creates a HostLimiter with the given default minimum
// interval between same-host requests. An interval of 0 disables pacing
// until SetMinInterval raises it for a host.
func NewHostLimiter(minInterval time.Duration) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: minInterval,
	}
}

func intervalLimit(d time.Duration) rate.Limit {
	if d <= 0 {
		return rate.Inf
	}
	return rate.Every(d)
}

// Wait blocks until the host's interval allows a request.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(intervalLimit(l.interval), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

// SetMinInterval raises the minimum interval for a host, typically from a
// robots.txt crawl-delay directive. Values at or below the configured
// default are ignored; pacing never gets less polite than the default.
func (l *HostLimiter) SetMinInterval(host string, d time.Duration) {
	if d <= l.interval {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[host]; ok {
		limiter.SetLimit(intervalLimit(d))
		return
	}
	l.limiters[host] = rate.NewLimiter(intervalLimit(d), 1)
}
