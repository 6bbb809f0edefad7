package crawlspace

import (
	"context"
	"time"
)

// Run is an archived crawl run.
type Run struct {
	ID         string    `json:"id"`
	SeedURL    string    `json:"seed_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Crawled    int       `json:"total_crawled"`
	Failed     int       `json:"total_failed"`
	Skipped    int       `json:"total_skipped"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID      *string `json:"id"`
	SeedURL *string `json:"seed_url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService archives crawl runs and their page records.
type RunService interface {
	// CreateRun stores a run together with its page records.
	CreateRun(ctx context.Context, run *Run, records []*PageRecord) error

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindPagesByRun retrieves the page records archived for a run.
	// Returns ENOTFOUND if the run does not exist.
	FindPagesByRun(ctx context.Context, runID string) ([]*PageRecord, error)
}
