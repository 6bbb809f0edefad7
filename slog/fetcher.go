// Package slog provides logging decorators for crawlspace interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aknapek/crawlspace"
)

// Ensure LoggingFetcher implements crawlspace.Fetcher.
var _ crawlspace.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured request logging.
type LoggingFetcher struct {
	next   crawlspace.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crawlspace.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*crawlspace.FetchResult, error) {
	begin := time.Now()
	res, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	f.logger.Debug("fetch",
		"url", url,
		"status", res.StatusCode,
		"bytes", len(res.Body),
		"duration", time.Since(begin),
	)
	return res, nil
}
