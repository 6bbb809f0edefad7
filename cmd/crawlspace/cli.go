package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aknapek/crawlspace"
	"github.com/aknapek/crawlspace/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	DB     *sqlite.DB
	Runs   crawlspace.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `help:"Database path for the run archive (default: $CRAWLSPACE_DB or ~/.crawlspace/crawlspace.db)"`

	Run     RunCmd     `cmd:"" help:"Crawl a site breadth-first from a seed URL"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze an archived run for related keywords"`
	History HistoryCmd `cmd:"" help:"List archived crawl runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL string `arg:"" help:"Seed URL to crawl from"`

	Depth         int           `short:"d" default:"2" help:"Maximum link depth relative to the seed"`
	MaxPages      int           `short:"n" default:"100" help:"Maximum number of pages to record"`
	Delay         time.Duration `default:"1s" help:"Minimum interval between requests to the same host"`
	Timeout       time.Duration `default:"10s" help:"Per-request timeout"`
	Retries       int           `default:"2" help:"Retries per page after a failed attempt"`
	NoRobots      bool          `help:"Ignore robots.txt"`
	AllowExternal bool          `help:"Follow links to hosts other than the seed's"`
	URLPattern    []string      `short:"p" name:"url-pattern" help:"Only visit URLs matching a regex (repeatable)"`
	Format        string        `short:"f" default:"json" enum:"json,csv,both" help:"Output file format"`
	Output        string        `short:"o" default:"output" help:"Output directory"`
	Concurrency   int           `short:"c" default:"1" help:"Concurrent fetch workers"`
	UserAgent     string        `help:"Override the User-Agent header"`
	Keyword       string        `short:"k" help:"Run keyword analysis over the crawled pages"`
	NoArchive     bool          `help:"Skip archiving the run to the database"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Keyword string `arg:"" help:"Keyword to find related terms for"`
	RunID   string `name:"run" help:"Run ID to analyze (defaults to the most recent run)"`
	Top     int    `default:"30" help:"Number of related keywords to show"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `default:"20" help:"Maximum number of runs to show"`
	Seed  string `help:"Only show runs for this seed URL"`
}
