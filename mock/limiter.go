package mock

import (
	"context"
	"time"

	"github.com/aknapek/crawlspace"
)

var _ crawlspace.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of crawlspace.HostLimiter.
type HostLimiter struct {
	WaitFn           func(ctx context.Context, host string) error
	SetMinIntervalFn func(host string, d time.Duration)
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}

func (l *HostLimiter) SetMinInterval(host string, d time.Duration) {
	l.SetMinIntervalFn(host, d)
}
