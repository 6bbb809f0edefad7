package mock

import (
	"context"

	"github.com/aknapek/crawlspace"
)

var _ crawlspace.RunService = (*RunService)(nil)

// RunService is a mock implementation of crawlspace.RunService.
type RunService struct {
	CreateRunFn      func(ctx context.Context, run *crawlspace.Run, records []*crawlspace.PageRecord) error
	FindRunsFn       func(ctx context.Context, filter crawlspace.RunFilter) ([]*crawlspace.Run, error)
	FindPagesByRunFn func(ctx context.Context, runID string) ([]*crawlspace.PageRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *crawlspace.Run, records []*crawlspace.PageRecord) error {
	return s.CreateRunFn(ctx, run, records)
}

func (s *RunService) FindRuns(ctx context.Context, filter crawlspace.RunFilter) ([]*crawlspace.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindPagesByRun(ctx context.Context, runID string) ([]*crawlspace.PageRecord, error) {
	return s.FindPagesByRunFn(ctx, runID)
}
