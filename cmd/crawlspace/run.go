package main

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aknapek/crawlspace"
	"github.com/aknapek/crawlspace/crawl"
	"github.com/aknapek/crawlspace/fs"
	"github.com/aknapek/crawlspace/goquery"
	cshttp "github.com/aknapek/crawlspace/http"
	"github.com/aknapek/crawlspace/keyword"
	csslog "github.com/aknapek/crawlspace/slog"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := crawlspace.DefaultConfig(c.URL)
	cfg.MaxDepth = c.Depth
	cfg.MaxPages = c.MaxPages
	cfg.Delay = c.Delay
	cfg.Timeout = c.Timeout
	cfg.MaxRetries = c.Retries
	cfg.RespectRobots = !c.NoRobots
	cfg.AllowExternal = c.AllowExternal
	cfg.URLPatterns = c.URLPattern
	cfg.OutputFormat = c.Format
	cfg.OutputDir = c.Output
	cfg.Concurrency = c.Concurrency
	cfg.Keyword = c.Keyword
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawlspace.ErrorMessage(err))
		return err
	}

	fetcher := csslog.NewLoggingFetcher(
		cshttp.NewFetcher(
			cshttp.WithTimeout(cfg.Timeout),
			cshttp.WithUserAgent(cfg.UserAgent),
		),
		deps.Logger,
	)

	var robots crawlspace.RobotsPolicy
	if cfg.RespectRobots {
		robots = csslog.NewLoggingPolicy(
			cshttp.NewPolicy(cfg.UserAgent, cshttp.WithRobotsLogger(deps.Logger)),
			deps.Logger,
		)
	}

	engine := &crawl.Engine{
		Config:    cfg,
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Robots:    robots,
		Limiter:   crawl.NewHostLimiter(cfg.Delay),
		Logger:    deps.Logger,
		Progress:  c.progress(deps),
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (depth %d, max %d pages)\n", cfg.SeedURL, cfg.MaxDepth, cfg.MaxPages)

	result, err := engine.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawlspace.ErrorMessage(err))
		return err
	}

	outputs, err := c.save(deps, result)
	if err != nil {
		return err
	}
	for _, path := range outputs {
		fmt.Fprintf(deps.Stdout, "  Saved %s\n", path)
	}

	if cfg.Keyword != "" {
		kw := keyword.NewAnalyzer()
		report := kw.Analyze(result.Records, cfg.Keyword)
		printKeywords(deps, report, 10)

		writer := fs.NewWriter(cfg.OutputDir)
		if path, err := writer.SaveKeywordsJSON(report); err == nil {
			fmt.Fprintf(deps.Stdout, "  Saved %s\n", path)
		} else {
			fmt.Fprintf(deps.Stderr, "error saving keywords: %v\n", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Crawl complete: %d crawled, %d failed, %d skipped in %s\n",
		result.Crawled, result.Failed, result.Skipped,
		result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))

	return nil
}

// progress returns the callback that prints crawl progress to the terminal.
func (c *RunCmd) progress(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.EventCrawled:
			title := event.Title
			if title == "" {
				title = "(no title)"
			}
			fmt.Fprintf(deps.Stdout, "  [%d/%d] d%d %s %s\n",
				event.PagesCrawled, event.MaxPages, event.Depth, event.URL, title)
		case crawl.EventBlocked:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s: blocked by robots.txt\n",
				event.PagesCrawled, event.MaxPages, event.URL)
		case crawl.EventFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s\n",
				event.PagesCrawled, event.MaxPages, event.URL)
		case crawl.EventFinished:
			// Summary printed after outputs are saved.
		}
	}
}

// save writes the result files and the database archive concurrently and
// appends a history entry. It returns the written file paths.
func (c *RunCmd) save(deps *Dependencies, result *crawlspace.Result) ([]string, error) {
	writer := fs.NewWriter(c.Output)

	var jsonPath, csvPath string
	g, ctx := errgroup.WithContext(deps.Ctx)

	if c.Format == "json" || c.Format == "both" {
		g.Go(func() error {
			var err error
			jsonPath, err = writer.SaveJSON(result)
			return err
		})
	}
	if c.Format == "csv" || c.Format == "both" {
		g.Go(func() error {
			var err error
			csvPath, err = writer.SaveCSV(result)
			return err
		})
	}
	if !c.NoArchive {
		g.Go(func() error {
			run := &crawlspace.Run{
				SeedURL:    result.SeedURL,
				StartedAt:  result.StartedAt,
				FinishedAt: result.FinishedAt,
				Crawled:    result.Crawled,
				Failed:     result.Failed,
				Skipped:    result.Skipped,
			}
			return deps.Runs.CreateRun(ctx, run, result.Records)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error saving results: %v\n", err)
		return nil, err
	}

	var outputs []string
	if jsonPath != "" {
		outputs = append(outputs, jsonPath)
	}
	if csvPath != "" {
		outputs = append(outputs, csvPath)
	}

	if _, err := writer.AppendHistory(fs.HistoryEntry{
		SeedURL:    result.SeedURL,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Crawled:    result.Crawled,
		Failed:     result.Failed,
		Skipped:    result.Skipped,
		Outputs:    outputs,
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error appending history: %v\n", err)
	}

	return outputs, nil
}

// printKeywords renders the top related keywords as an aligned table.
func printKeywords(deps *Dependencies, report *crawlspace.KeywordResult, limit int) {
	fmt.Fprintf(deps.Stdout, "\nKeywords related to %q (%d/%d pages contain it):\n",
		report.QueryKeyword, report.PagesContainingQuery, report.TotalPagesAnalyzed)

	if len(report.RelatedKeywords) == 0 {
		fmt.Fprintln(deps.Stdout, "  no related keywords found")
		return
	}

	fmt.Fprintf(deps.Stdout, "  %-4s %-24s %6s %6s %8s\n", "rank", "keyword", "freq", "cooc", "score")
	for i, kw := range report.RelatedKeywords {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(deps.Stdout, "  %-4d %-24s %6d %6d %8.4f\n",
			i+1, kw.Keyword, kw.Frequency, kw.CoOccurrence, kw.CombinedScore)
	}
}
