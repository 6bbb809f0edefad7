package crawlspace

import "time"

// Task is a frontier entry: a URL to visit and its depth from the seed.
type Task struct {
	URL   string
	Depth int
}

// Status classifies the terminal state of a processed task.
type Status string

// Terminal task states.
const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// PageRecord is the immutable outcome of one processed task.
// Exactly one record is produced per task that reaches the engine's
// robots/fetch stages; tasks filtered out earlier produce no record.
type PageRecord struct {
	URL             string    `json:"url"`
	Depth           int       `json:"depth"`
	Status          Status    `json:"status"`
	StatusCode      int       `json:"status_code"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	ContentSnippet  string    `json:"content_snippet"`
	Headlines       []string  `json:"headlines,omitempty"`
	DiscoveredLinks []string  `json:"discovered_links"`
	FetchedAt       time.Time `json:"fetched_at"`
	Error           string    `json:"error,omitempty"`

	// FullText feeds keyword analysis. It is deliberately excluded from
	// serialized output to keep result files a manageable size.
	FullText string `json:"-"`
}

// Result aggregates the records of one crawl run.
type Result struct {
	SeedURL    string        `json:"seed_url"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Crawled    int           `json:"total_crawled"`
	Failed     int           `json:"total_failed"`
	Skipped    int           `json:"total_skipped"`
	Records    []*PageRecord `json:"records"`
}

// Add appends a record and updates the per-status totals.
func (r *Result) Add(record *PageRecord) {
	r.Records = append(r.Records, record)
	switch record.Status {
	case StatusSuccess:
		r.Crawled++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
}
