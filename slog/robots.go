package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aknapek/crawlspace"
)

// Ensure LoggingPolicy implements crawlspace.RobotsPolicy.
var _ crawlspace.RobotsPolicy = (*LoggingPolicy)(nil)

// LoggingPolicy wraps a RobotsPolicy with structured decision logging.
type LoggingPolicy struct {
	next   crawlspace.RobotsPolicy
	logger *slog.Logger
}

// NewLoggingPolicy creates a new LoggingPolicy.
func NewLoggingPolicy(next crawlspace.RobotsPolicy, logger *slog.Logger) *LoggingPolicy {
	return &LoggingPolicy{next: next, logger: logger}
}

// Allowed delegates to the wrapped policy and logs the decision.
func (p *LoggingPolicy) Allowed(ctx context.Context, rawURL string) bool {
	allowed := p.next.Allowed(ctx, rawURL)
	p.logger.Debug("robots",
		"url", rawURL,
		"allowed", allowed,
	)
	return allowed
}

// CrawlDelay delegates to the wrapped policy.
func (p *LoggingPolicy) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	return p.next.CrawlDelay(ctx, rawURL)
}
