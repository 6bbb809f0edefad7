// Package crawl provides the breadth-first crawl engine.
// It owns the frontier and visited state, and orchestrates robots checks,
// rate-limited fetching with retries, content extraction, and link
// filtering into a stream of page records.
package crawl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/aknapek/crawlspace"
)

// Frontier sizing for Bloom filter deduplication.
const (
	// frontierExpectedURLs is the minimum expected URL count for sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate.
	frontierFalsePositiveRate = 0.01
)

// EventType indicates the type of progress event.
type EventType int

// Progress event types.
const (
	// EventCrawled reports a successfully recorded page.
	EventCrawled EventType = iota
	// EventBlocked reports a page skipped by robots.txt.
	EventBlocked
	// EventFailed reports a page whose fetch failed terminally.
	EventFailed
	// EventFinished reports the end of the crawl.
	EventFinished
)

// ProgressEvent reports progress as the crawl proceeds.
type ProgressEvent struct {
	Type         EventType
	PagesCrawled int
	MaxPages     int
	URL          string
	Title        string
	Depth        int
	StatusCode   int
	Err          error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Engine is the breadth-first crawl orchestrator.
//
// With Concurrency <= 1 tasks are processed strictly one at a time in BFS
// order. With higher concurrency the coordinator remains the only goroutine
// touching the frontier and emitting records, so the visited-set
// check-and-insert stays atomic and no URL is ever fetched twice; the
// HostLimiter serializes same-host requests across workers.
type Engine struct {
	Config    crawlspace.Config
	Fetcher   crawlspace.Fetcher
	Extractor crawlspace.Extractor

	// Robots may be nil when robots compliance is disabled.
	Robots crawlspace.RobotsPolicy

	// Limiter defaults to a HostLimiter at the configured delay.
	Limiter crawlspace.HostLimiter

	// Logger defaults to a discard logger.
	Logger *slog.Logger

	// RetryDelays defaults to exponential backoff sized by Config.MaxRetries.
	RetryDelays []time.Duration

	// Progress, if set, receives events as pages are processed.
	Progress ProgressFunc
}

// taskResult holds the outcome of processing a single task.
type taskResult struct {
	task   crawlspace.Task
	record *crawlspace.PageRecord
	links  []string
}

// Run executes the crawl and returns the aggregated result.
// Configuration problems abort before any request is made; per-task
// failures are recorded and never stop the traversal.
func (e *Engine) Run(ctx context.Context) (*crawlspace.Result, error) {
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}
	filter, err := crawlspace.NewURLFilter(e.Config)
	if err != nil {
		return nil, err
	}
	seed, err := crawlspace.Normalize(e.Config.SeedURL, nil)
	if err != nil {
		return nil, err
	}

	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limiter := e.Limiter
	if limiter == nil {
		limiter = NewHostLimiter(e.Config.Delay)
	}
	delays := e.RetryDelays
	if delays == nil {
		delays = RetryDelays(e.Config.MaxRetries)
	}
	concurrency := e.Config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	expected := uint(frontierExpectedURLs)
	if n := uint(e.Config.MaxPages) * 10; n > expected {
		expected = n
	}
	frontier := NewFrontier(expected, frontierFalsePositiveRate)
	frontier.Push(crawlspace.Task{URL: seed, Depth: 0})

	result := &crawlspace.Result{
		SeedURL:   seed,
		StartedAt: time.Now().UTC(),
	}

	workCh := make(chan crawlspace.Task, concurrency)
	resultCh := make(chan taskResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range workCh {
				res := e.process(ctx, task, filter, limiter, delays, logger)
				select {
				case resultCh <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	pending := 0
	var next *crawlspace.Task
	if task, ok := frontier.Pop(); ok {
		next = &task
	}

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		// Guard against stale over-depth tasks; discarded without a record.
		if next != nil && next.Depth > e.Config.MaxDepth {
			next = nil
		} else if next != nil && len(result.Records)+pending < e.Config.MaxPages {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				e.handle(res, frontier, result, logger)
			}
		} else if pending > 0 {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res := <-resultCh:
				pending--
				e.handle(res, frontier, result, logger)
			}
		} else {
			// Page budget exhausted with nothing in flight.
			break
		}

		if next == nil && len(result.Records)+pending < e.Config.MaxPages {
			if task, ok := frontier.Pop(); ok {
				next = &task
			}
		}
	}

	close(workCh)

	// Collect results dispatched before the loop ended; each already holds
	// a budget slot via pending. The channel closes once the workers drain.
	for res := range resultCh {
		e.handle(res, frontier, result, logger)
	}

	result.FinishedAt = time.Now().UTC()

	if e.Progress != nil {
		e.Progress(ProgressEvent{
			Type:         EventFinished,
			PagesCrawled: len(result.Records),
			MaxPages:     e.Config.MaxPages,
		})
	}

	logger.Info("crawl finished",
		"seed", seed,
		"crawled", result.Crawled,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	return result, nil
}

// process runs one task through the robots/fetch/extract pipeline and
// returns its record along with the filtered child links.
func (e *Engine) process(
	ctx context.Context,
	task crawlspace.Task,
	filter *crawlspace.URLFilter,
	limiter crawlspace.HostLimiter,
	delays []time.Duration,
	logger *slog.Logger,
) taskResult {
	record := &crawlspace.PageRecord{
		URL:             task.URL,
		Depth:           task.Depth,
		DiscoveredLinks: []string{},
		FetchedAt:       time.Now().UTC(),
	}

	host := ""
	if u, err := url.Parse(task.URL); err == nil {
		host = u.Host
	}

	if e.Config.RespectRobots && e.Robots != nil {
		if !e.Robots.Allowed(ctx, task.URL) {
			record.Status = crawlspace.StatusSkipped
			record.Error = "blocked by robots.txt"
			return taskResult{task: task, record: record}
		}
		if d := e.Robots.CrawlDelay(ctx, task.URL); d > e.Config.Delay && host != "" {
			limiter.SetMinInterval(host, d)
		}
	}

	fetchFn := func(ctx context.Context, u string) (*crawlspace.FetchResult, error) {
		if err := limiter.Wait(ctx, host); err != nil {
			return nil, err
		}
		return e.Fetcher.Fetch(ctx, u)
	}

	res, err := FetchWithRetry(ctx, task.URL, fetchFn, logger, delays)
	if err != nil {
		record.Status = crawlspace.StatusFailed
		record.Error = err.Error()
		var fe *crawlspace.FetchError
		if errors.As(err, &fe) {
			record.StatusCode = fe.StatusCode
		}
		return taskResult{task: task, record: record}
	}

	record.Status = crawlspace.StatusSuccess
	record.StatusCode = res.StatusCode

	content, err := e.Extractor.Extract(res.Body, task.URL)
	if err != nil {
		// Malformed HTML degrades to an empty extraction; the page itself
		// was fetched, so the record stays successful.
		logger.Warn("extraction degraded", "url", task.URL, "err", err)
		return taskResult{task: task, record: record}
	}

	record.Title = content.Title
	record.MetaDescription = content.MetaDescription
	record.ContentSnippet = content.Snippet
	record.Headlines = content.Headlines
	record.FullText = content.FullText

	base, err := url.Parse(task.URL)
	if err != nil {
		return taskResult{task: task, record: record}
	}

	seen := make(map[string]struct{}, len(content.Links))
	var survivors []string
	for _, raw := range content.Links {
		normalized, err := crawlspace.Normalize(raw, base)
		if err != nil {
			continue
		}
		if !filter.ShouldVisit(normalized) {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		survivors = append(survivors, normalized)
	}
	if survivors != nil {
		record.DiscoveredLinks = survivors
	}

	return taskResult{task: task, record: record, links: survivors}
}

// handle emits a completed record and enqueues its children.
func (e *Engine) handle(res taskResult, frontier *Frontier, result *crawlspace.Result, logger *slog.Logger) {
	result.Add(res.record)

	switch res.record.Status {
	case crawlspace.StatusSuccess:
		logger.Info("crawled",
			"n", len(result.Records),
			"max", e.Config.MaxPages,
			"depth", res.task.Depth,
			"url", res.task.URL,
			"title", res.record.Title,
		)
	case crawlspace.StatusFailed:
		logger.Warn("failed",
			"url", res.task.URL,
			"status", res.record.StatusCode,
			"err", res.record.Error,
		)
	case crawlspace.StatusSkipped:
		logger.Info("blocked by robots.txt", "url", res.task.URL)
	}

	if e.Progress != nil {
		eventType := EventCrawled
		switch res.record.Status {
		case crawlspace.StatusFailed:
			eventType = EventFailed
		case crawlspace.StatusSkipped:
			eventType = EventBlocked
		}
		e.Progress(ProgressEvent{
			Type:         eventType,
			PagesCrawled: len(result.Records),
			MaxPages:     e.Config.MaxPages,
			URL:          res.task.URL,
			Title:        res.record.Title,
			Depth:        res.task.Depth,
			StatusCode:   res.record.StatusCode,
		})
	}

	if res.record.Status != crawlspace.StatusSuccess || res.task.Depth >= e.Config.MaxDepth {
		return
	}
	for _, link := range res.links {
		frontier.Push(crawlspace.Task{URL: link, Depth: res.task.Depth + 1})
	}
}
