// Package goquery provides the content extractor built on goquery.
// It turns fetched page bytes into a title, meta description, bounded text
// snippet, headlines, and the page's outbound links.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aknapek/crawlspace"
)

// DefaultSnippetLength is the bound on the content snippet, in runes.
const DefaultSnippetLength = 500

// minHeadlineLen is the minimum length for a text to count as a headline.
const minHeadlineLen = 8

// Ensure Extractor implements crawlspace.Extractor at compile time.
var _ crawlspace.Extractor = (*Extractor)(nil)

// Extractor parses HTML into structured page content.
type Extractor struct {
	snippetLength int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSnippetLength sets the snippet bound in runes.
// Defaults to DefaultSnippetLength if not specified.
func WithSnippetLength(n int) Option {
	return func(e *Extractor) {
		e.snippetLength = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{snippetLength: DefaultSnippetLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the page bytes. goquery's underlying parser is lenient, so
// malformed markup degrades to partial content rather than an error; the
// error return covers an unparseable source URL or a broken document tree.
func (e *Extractor) Extract(body []byte, sourceURL string) (*crawlspace.PageContent, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, crawlspace.Errorf(crawlspace.EINVALID, "invalid source URL %q: %v", sourceURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, crawlspace.Errorf(crawlspace.EINVALID, "failed to parse HTML: %v", err)
	}

	content := &crawlspace.PageContent{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
	}

	content.Headlines = extractHeadlines(doc)
	content.Links = extractLinks(doc, base)

	// Drop non-visible elements before gathering text.
	doc.Find("script, style, noscript").Remove()
	content.FullText = strings.Join(strings.Fields(doc.Text()), " ")
	content.Snippet = truncate(content.FullText, e.snippetLength)

	return content, nil
}

// truncate bounds s to n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// extractHeadlines collects candidate article titles: h1-h3 texts plus
// anchor texts long enough to look like titles, first-seen order, deduped.
func extractHeadlines(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var headlines []string

	add := func(text string) {
		text = strings.TrimSpace(text)
		if len(text) < minHeadlineLen {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		headlines = append(headlines, text)
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		add(sel.Text())
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		// Bare URLs as link text are navigation, not titles.
		if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") || strings.HasPrefix(text, "www.") {
			return
		}
		add(text)
	})

	return headlines
}

// extractLinks resolves anchor hrefs against the base URL, strips fragments,
// and deduplicates while preserving first-seen order. Scheme and domain
// filtering happen later in the engine.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "javascript:") ||
			strings.HasPrefix(lower, "mailto:") ||
			strings.HasPrefix(lower, "tel:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		abs := resolved.String()

		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}
