package mock

import (
	"context"
	"time"

	"github.com/aknapek/crawlspace"
)

var _ crawlspace.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of crawlspace.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn    func(ctx context.Context, rawURL string) bool
	CrawlDelayFn func(ctx context.Context, rawURL string) time.Duration
}

func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) bool {
	return p.AllowedFn(ctx, rawURL)
}

func (p *RobotsPolicy) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	return p.CrawlDelayFn(ctx, rawURL)
}
