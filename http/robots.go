package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/aknapek/crawlspace"
)

// DefaultRobotsTimeout bounds the single robots.txt fetch per host.
const DefaultRobotsTimeout = 5 * time.Second

// Ensure Policy implements crawlspace.RobotsPolicy at compile time.
var _ crawlspace.RobotsPolicy = (*Policy)(nil)

// Policy answers robots.txt queries with per-host caching.
//
// The robots.txt of a host is fetched once, on the first query, with a
// short timeout and no retries. Any failure to obtain or parse it is a
// soft condition: the host is cached as allow-all for the rest of the run.
type Policy struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger

	mu sync.Mutex
	// cache maps scheme://host to parsed rules; nil means allow-all.
	cache map[string]*robotstxt.RobotsData
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithRobotsTimeout sets the robots.txt fetch timeout.
func WithRobotsTimeout(d time.Duration) PolicyOption {
	return func(p *Policy) {
		p.client.Timeout = d
	}
}

// WithRobotsLogger sets the logger for soft fetch failures.
func WithRobotsLogger(logger *slog.Logger) PolicyOption {
	return func(p *Policy) {
		p.logger = logger
	}
}

// NewPolicy creates a Policy for the given user agent.
func NewPolicy(userAgent string, opts ...PolicyOption) *Policy {
	p := &Policy{
		client:    &http.Client{Timeout: DefaultRobotsTimeout},
		userAgent: userAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache:     make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Allowed reports whether the URL may be fetched under the host's robots
// rules. Unparseable URLs are denied; hosts without usable rules allow all.
func (p *Policy) Allowed(ctx context.Context, rawURL string) bool {
	target, err := url.Parse(rawURL)
	if err != nil || !target.IsAbs() {
		return false
	}

	data := p.rules(ctx, target)
	if data == nil {
		return true
	}

	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}
	if target.RawQuery != "" {
		path += "?" + target.RawQuery
	}
	return data.FindGroup(p.userAgent).Test(path)
}

// CrawlDelay returns the crawl-delay directive for the URL's host, or 0.
func (p *Policy) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	target, err := url.Parse(rawURL)
	if err != nil || !target.IsAbs() {
		return 0
	}

	data := p.rules(ctx, target)
	if data == nil {
		return 0
	}
	return data.FindGroup(p.userAgent).CrawlDelay
}

// rules returns the cached rules for the target's origin, fetching them on
// first use. A nil return means allow-all.
func (p *Policy) rules(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	origin := strings.ToLower(target.Scheme + "://" + target.Host)

	p.mu.Lock()
	data, ok := p.cache[origin]
	p.mu.Unlock()
	if ok {
		return data
	}

	data = p.fetch(ctx, origin)

	p.mu.Lock()
	p.cache[origin] = data
	p.mu.Unlock()

	return data
}

// fetch performs the single robots.txt request for an origin.
func (p *Policy) fetch(ctx context.Context, origin string) *robotstxt.RobotsData {
	robotsURL := origin + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("robots.txt unavailable, allowing all", "url", robotsURL, "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug("robots.txt not served, allowing all", "url", robotsURL, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		p.logger.Debug("robots.txt read failed, allowing all", "url", robotsURL, "err", err)
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		p.logger.Debug("robots.txt unparseable, allowing all", "url", robotsURL, "err", err)
		return nil
	}
	return data
}
