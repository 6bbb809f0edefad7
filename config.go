package crawlspace

import (
	"net/url"
	"regexp"
	"time"
)

// Default configuration values, matching the CLI defaults.
const (
	DefaultMaxDepth   = 2
	DefaultMaxPages   = 100
	DefaultDelay      = 1 * time.Second
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultUserAgent  = "crawlspace/1.0 (+https://github.com/aknapek/crawlspace)"
)

// Config holds the immutable settings for one crawl run.
type Config struct {
	// SeedURL is the absolute HTTP(S) URL the crawl starts from.
	SeedURL string

	// MaxDepth is the maximum link depth relative to the seed (seed = 0).
	MaxDepth int

	// MaxPages bounds the number of records the crawl may emit.
	MaxPages int

	// Delay is the minimum interval between requests to the same host.
	// robots.txt crawl-delay directives can raise it per host.
	Delay time.Duration

	// Timeout applies to each individual HTTP request.
	Timeout time.Duration

	// MaxRetries is the number of retries after a failed attempt,
	// so a task performs at most 1+MaxRetries requests.
	MaxRetries int

	// RespectRobots enables robots.txt compliance.
	RespectRobots bool

	// AllowExternal permits following links to hosts other than the seed's.
	AllowExternal bool

	// URLPatterns restricts the frontier to URLs matching at least one
	// pattern. An empty list accepts all URLs.
	URLPatterns []string

	// OutputFormat is one of "json", "csv" or "both".
	OutputFormat string

	// OutputDir is where result files are written.
	OutputDir string

	// UserAgent is sent with every request and matched against robots rules.
	UserAgent string

	// Keyword, when set, triggers keyword analysis over the crawled pages.
	Keyword string

	// Concurrency is the number of fetch workers. Values below 2 give the
	// sequential baseline that preserves strict BFS record order.
	Concurrency int
}

// DefaultConfig returns a Config for the seed URL with the package defaults.
func DefaultConfig(seedURL string) Config {
	return Config{
		SeedURL:       seedURL,
		MaxDepth:      DefaultMaxDepth,
		MaxPages:      DefaultMaxPages,
		Delay:         DefaultDelay,
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		RespectRobots: true,
		OutputFormat:  "json",
		OutputDir:     "output",
		UserAgent:     DefaultUserAgent,
		Concurrency:   1,
	}
}

// Validate returns an EINVALID error if the configuration cannot start a crawl.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SeedURL)
	if err != nil {
		return Errorf(EINVALID, "invalid seed URL %q: %v", c.SeedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "seed URL must be absolute http(s), got %q", c.SeedURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "seed URL missing host: %q", c.SeedURL)
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be >= 1, got %d", c.MaxPages)
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must be >= 0, got %s", c.Delay)
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be > 0, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return Errorf(EINVALID, "retries must be >= 0, got %d", c.MaxRetries)
	}
	for _, pattern := range c.URLPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return Errorf(EINVALID, "invalid URL pattern %q: %v", pattern, err)
		}
	}
	switch c.OutputFormat {
	case "", "json", "csv", "both":
	default:
		return Errorf(EINVALID, "output format must be json, csv or both, got %q", c.OutputFormat)
	}
	return nil
}
