package crawlspace

// PageContent holds the fields extracted from one fetched page.
type PageContent struct {
	// Title is the <title> text, trimmed.
	Title string

	// MetaDescription is the content of <meta name="description">.
	MetaDescription string

	// Snippet is a bounded prefix of the page's visible text.
	Snippet string

	// FullText is the complete visible text with collapsed whitespace.
	FullText string

	// Headlines are candidate article titles: h1-h3 texts and prominent
	// anchor texts, deduplicated in first-seen order.
	Headlines []string

	// Links are the anchor hrefs resolved against the source URL with
	// fragments stripped, deduplicated in first-seen order. Scheme and
	// domain filtering is the engine's job, not the extractor's.
	Links []string
}

// Extractor parses fetched bytes into structured page content.
//
// Malformed HTML is a soft condition: implementations should degrade to
// partial or empty content rather than fail, and the engine logs any
// returned error as a warning while still emitting a success record.
type Extractor interface {
	Extract(body []byte, sourceURL string) (*PageContent, error)
}
