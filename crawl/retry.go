package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/aknapek/crawlspace"
)

// FetchFunc is the signature of a single fetch attempt.
type FetchFunc func(ctx context.Context, url string) (*crawlspace.FetchResult, error)

// RetryDelays returns exponential backoff delays for n retries: 1s, 2s, 4s, ...
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := 1 * time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetry runs the fetch attempt state machine: each attempt either
// succeeds, fails terminally (non-retryable error, returned immediately), or
// fails transiently and retries after a backoff delay. len(delays) bounds
// the number of retries, so at most len(delays)+1 attempts are made. Backoff
// sleeps are cancellable through ctx.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (*crawlspace.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !crawlspace.RetryableError(err) {
			return nil, err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Debug("retrying fetch",
				"url", url,
				"attempt", attempt+2,
				"backoff", delays[attempt],
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
