package keyword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknapek/crawlspace"
	"github.com/aknapek/crawlspace/keyword"
)

func page(text string) *crawlspace.PageRecord {
	return &crawlspace.PageRecord{
		Status:   crawlspace.StatusSuccess,
		FullText: text,
	}
}

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("counts pages containing the query", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			page("coffee beans from brazil"),
			page("tea leaves from china"),
			page("coffee roasting machines"),
		}

		result := keyword.NewAnalyzer().Analyze(records, "coffee")

		assert.Equal(t, "coffee", result.QueryKeyword)
		assert.Equal(t, 3, result.TotalPagesAnalyzed)
		assert.Equal(t, 2, result.PagesContainingQuery)
	})

	t.Run("query matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{page("Coffee is great")}
		result := keyword.NewAnalyzer().Analyze(records, "COFFEE")
		assert.Equal(t, 1, result.PagesContainingQuery)
	})

	t.Run("related keywords exclude the query itself", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			page("coffee coffee coffee roasting"),
		}
		result := keyword.NewAnalyzer().Analyze(records, "coffee")

		for _, kw := range result.RelatedKeywords {
			assert.NotEqual(t, "coffee", kw.Keyword)
		}
	})

	t.Run("co-occurring terms rank above non-co-occurring ones", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			page("coffee roasting roasting"),
			page("unrelated gardening gardening"),
		}
		result := keyword.NewAnalyzer().Analyze(records, "coffee")

		require.NotEmpty(t, result.RelatedKeywords)

		rank := make(map[string]int)
		for i, kw := range result.RelatedKeywords {
			rank[kw.Keyword] = i
		}
		require.Contains(t, rank, "roasting")
		require.Contains(t, rank, "gardening")
		assert.Less(t, rank["roasting"], rank["gardening"],
			"terms sharing pages with the query should rank higher")
	})

	t.Run("drops stopwords and short tokens", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			page("the coffee is a drink and it x y z"),
		}
		result := keyword.NewAnalyzer().Analyze(records, "coffee")

		for _, kw := range result.RelatedKeywords {
			assert.NotContains(t, []string{"the", "is", "a", "and", "it", "x", "y", "z"}, kw.Keyword)
		}
	})

	t.Run("respects TopN", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			page("coffee alpha bravo charlie delta echo foxtrot golf hotel india juliet"),
		}
		analyzer := keyword.NewAnalyzer()
		analyzer.TopN = 3

		result := analyzer.Analyze(records, "coffee")
		assert.Len(t, result.RelatedKeywords, 3)
	})

	t.Run("falls back to snippet when full text is empty", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			{Status: crawlspace.StatusSuccess, ContentSnippet: "coffee roasting guide"},
		}
		result := keyword.NewAnalyzer().Analyze(records, "coffee")
		assert.Equal(t, 1, result.PagesContainingQuery)
	})

	t.Run("headlines-only mode ignores body text", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			{
				Status:    crawlspace.StatusSuccess,
				FullText:  "coffee appears in the body",
				Headlines: []string{"gardening tips for summer"},
			},
		}
		analyzer := keyword.NewAnalyzer()
		analyzer.HeadlinesOnly = true

		result := analyzer.Analyze(records, "coffee")
		assert.Equal(t, 0, result.PagesContainingQuery)
	})

	t.Run("no records yields an empty result", func(t *testing.T) {
		t.Parallel()

		result := keyword.NewAnalyzer().Analyze(nil, "coffee")
		assert.Equal(t, 0, result.TotalPagesAnalyzed)
		assert.Empty(t, result.RelatedKeywords)
	})

	t.Run("scores are populated and ordered", func(t *testing.T) {
		t.Parallel()

		records := []*crawlspace.PageRecord{
			page("coffee roasting roasting beans"),
			page("coffee beans brazil"),
			page("tea ceremony japan"),
		}
		result := keyword.NewAnalyzer().Analyze(records, "coffee")

		require.NotEmpty(t, result.RelatedKeywords)
		for i, kw := range result.RelatedKeywords {
			assert.Positive(t, kw.Frequency, "keyword %q", kw.Keyword)
			assert.GreaterOrEqual(t, kw.TFIDFScore, 0.0)
			if i > 0 {
				assert.LessOrEqual(t, kw.CombinedScore, result.RelatedKeywords[i-1].CombinedScore)
			}
		}
	})
}
