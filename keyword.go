package crawlspace

// RelatedKeyword is one keyword ranked by its relevance to a query.
type RelatedKeyword struct {
	Keyword       string  `json:"keyword"`
	Frequency     int     `json:"frequency"`
	CoOccurrence  int     `json:"co_occurrence"`
	TFIDFScore    float64 `json:"tfidf_score"`
	CombinedScore float64 `json:"combined_score"`
}

// KeywordResult is the outcome of keyword analysis over crawled pages.
type KeywordResult struct {
	QueryKeyword         string           `json:"query_keyword"`
	RelatedKeywords      []RelatedKeyword `json:"related_keywords"`
	TotalPagesAnalyzed   int              `json:"total_pages_analyzed"`
	PagesContainingQuery int              `json:"pages_containing_query"`
}
