// Package crawlspace provides a polite breadth-first web crawler.
// Given a seed URL it discovers and fetches linked pages up to a bounded
// depth and page count, respecting robots.txt and per-host request pacing,
// and produces one immutable record per processed page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., goquery/, sqlite/, crawl/).
package crawlspace
