package mock

import (
	"context"

	"github.com/aknapek/crawlspace"
)

var _ crawlspace.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of crawlspace.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*crawlspace.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawlspace.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
