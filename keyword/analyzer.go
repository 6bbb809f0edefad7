// Package keyword ranks terms related to a query keyword across crawled
// pages using term frequency, TF-IDF, and co-occurrence.
package keyword

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/aknapek/crawlspace"
)

// Default analyzer settings.
const (
	DefaultTopN          = 30
	DefaultMinWordLength = 2
)

// Combined score weights: TF-IDF dominates, co-occurrence nudges terms that
// share pages with the query.
const (
	tfidfWeight = 0.7
	coocWeight  = 0.3
)

// tokenRE matches words and numbers.
var tokenRE = regexp.MustCompile(`[a-zA-Z]+|[0-9]+`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a an the and or but in on at to for of with by from is are was were be been " +
			"being have has had do does did will would could should may might shall can " +
			"need must not no nor so if then than too very just about above after again " +
			"all also am any as because before between both each few get got he her here " +
			"him his how i into it its let me more most my new now old only other our out " +
			"own part per put re s same she some still such t take that their them there " +
			"these they this those through under up us use want we what when where which " +
			"while who whom why you your") {
		stopwords[w] = struct{}{}
	}
}

// Analyzer extracts keywords related to a query from page text.
type Analyzer struct {
	// TopN bounds the number of related keywords returned.
	TopN int

	// MinWordLength drops short tokens.
	MinWordLength int

	// HeadlinesOnly analyzes only extracted headlines instead of full text.
	HeadlinesOnly bool
}

// NewAnalyzer creates an Analyzer with the package defaults.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		TopN:          DefaultTopN,
		MinWordLength: DefaultMinWordLength,
	}
}

// Analyze ranks keywords related to query across the records.
// Per-record text is full text when available, falling back to the snippet.
func (a *Analyzer) Analyze(records []*crawlspace.PageRecord, query string) *crawlspace.KeywordResult {
	queryLower := strings.ToLower(query)

	documents := make([][]string, 0, len(records))
	pagesWithQuery := 0
	for _, record := range records {
		tokens := a.tokenize(a.text(record))
		documents = append(documents, tokens)
		if contains(tokens, queryLower) {
			pagesWithQuery++
		}
	}

	result := &crawlspace.KeywordResult{
		QueryKeyword:         query,
		TotalPagesAnalyzed:   len(records),
		PagesContainingQuery: pagesWithQuery,
	}
	if len(documents) == 0 {
		return result
	}

	// Document frequency and global term frequency.
	df := make(map[string]int)
	globalTF := make(map[string]int)
	for _, tokens := range documents {
		for _, token := range unique(tokens) {
			df[token]++
		}
		for _, token := range tokens {
			globalTF[token]++
		}
	}

	// Co-occurrence with the query keyword.
	cooc := make(map[string]int)
	for _, tokens := range documents {
		if !contains(tokens, queryLower) {
			continue
		}
		for _, token := range unique(tokens) {
			if token != queryLower {
				cooc[token]++
			}
		}
	}

	// TF-IDF per term.
	nDocs := float64(len(documents))
	tfidf := make(map[string]float64, len(globalTF))
	for token, tf := range globalTF {
		if token == queryLower {
			continue
		}
		idf := math.Log((nDocs+1)/float64(df[token]+1)) + 1
		tfidf[token] = float64(tf) * idf
	}

	maxTFIDF := 1.0
	for _, v := range tfidf {
		if v > maxTFIDF {
			maxTFIDF = v
		}
	}
	maxCooc := 1.0
	for _, v := range cooc {
		if float64(v) > maxCooc {
			maxCooc = float64(v)
		}
	}

	// Combined score over the union of both rankings.
	combined := make(map[string]float64)
	for token, v := range tfidf {
		combined[token] = tfidfWeight * v / maxTFIDF
	}
	for token, v := range cooc {
		combined[token] += coocWeight * float64(v) / maxCooc
	}

	tokens := make([]string, 0, len(combined))
	for token := range combined {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if combined[tokens[i]] != combined[tokens[j]] {
			return combined[tokens[i]] > combined[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	topN := a.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(tokens) > topN {
		tokens = tokens[:topN]
	}

	for _, token := range tokens {
		result.RelatedKeywords = append(result.RelatedKeywords, crawlspace.RelatedKeyword{
			Keyword:       token,
			Frequency:     globalTF[token],
			CoOccurrence:  cooc[token],
			TFIDFScore:    round4(tfidf[token]),
			CombinedScore: round4(combined[token]),
		})
	}

	return result
}

// text selects the analyzable text of a record.
func (a *Analyzer) text(record *crawlspace.PageRecord) string {
	if a.HeadlinesOnly {
		return strings.Join(record.Headlines, " ")
	}
	if record.FullText != "" {
		return record.FullText
	}
	return record.ContentSnippet
}

// tokenize lowercases, splits into word/number tokens, and drops stopwords
// and short tokens.
func (a *Analyzer) tokenize(text string) []string {
	minLen := a.MinWordLength
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}

	raw := tokenRE.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if len(token) < minLen {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func contains(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
