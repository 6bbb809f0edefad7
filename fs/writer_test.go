package fs_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknapek/crawlspace"
	"github.com/aknapek/crawlspace/fs"
)

func sampleResult() *crawlspace.Result {
	result := &crawlspace.Result{
		SeedURL:    "https://example.com/",
		StartedAt:  time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 23, 10, 1, 0, 0, time.UTC),
	}
	result.Add(&crawlspace.PageRecord{
		URL:             "https://example.com/",
		Depth:           0,
		Status:          crawlspace.StatusSuccess,
		StatusCode:      200,
		Title:           "Example",
		MetaDescription: "desc",
		ContentSnippet:  "some text",
		DiscoveredLinks: []string{"https://example.com/a", "https://example.com/b"},
		FetchedAt:       time.Date(2026, 8, 23, 10, 0, 1, 0, time.UTC),
	})
	result.Add(&crawlspace.PageRecord{
		URL:       "https://example.com/broken",
		Depth:     1,
		Status:    crawlspace.StatusFailed,
		Error:     "fetch https://example.com/broken: http_status 500",
		FetchedAt: time.Date(2026, 8, 23, 10, 0, 2, 0, time.UTC),
	})
	return result
}

func TestWriter(t *testing.T) {
	t.Parallel()

	t.Run("SaveJSON writes a timestamped readable file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writer := fs.NewWriter(dir)

		path, err := writer.SaveJSON(sampleResult())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(filepath.Base(path), "crawl_"))
		assert.True(t, strings.HasSuffix(path, ".json"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got crawlspace.Result
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "https://example.com/", got.SeedURL)
		assert.Equal(t, 1, got.Crawled)
		assert.Equal(t, 1, got.Failed)
		require.Len(t, got.Records, 2)
		assert.Equal(t, "Example", got.Records[0].Title)
	})

	t.Run("SaveCSV writes a header and one row per record", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writer := fs.NewWriter(dir)

		path, err := writer.SaveCSV(sampleResult())
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, "url", rows[0][0])
		assert.Equal(t, "https://example.com/", rows[1][0])
		assert.Equal(t, "success", rows[1][2])
		assert.Equal(t, "https://example.com/a|https://example.com/b", rows[1][7])
		assert.Equal(t, "failed", rows[2][2])
	})

	t.Run("creates the output directory when missing", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "output")
		writer := fs.NewWriter(dir)

		_, err := writer.SaveJSON(sampleResult())
		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("saves keyword reports", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writer := fs.NewWriter(dir)
		report := &crawlspace.KeywordResult{
			QueryKeyword:       "go",
			TotalPagesAnalyzed: 3,
			RelatedKeywords: []crawlspace.RelatedKeyword{
				{Keyword: "gopher", Frequency: 5, CoOccurrence: 2, TFIDFScore: 1.5, CombinedScore: 0.9},
			},
		}

		jsonPath, err := writer.SaveKeywordsJSON(report)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(jsonPath, ".json"))

		csvPath, err := writer.SaveKeywordsCSV(report)
		require.NoError(t, err)

		f, err := os.Open(csvPath)
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"rank", "keyword", "frequency", "co_occurrence", "tfidf_score"}, rows[0])
		assert.Equal(t, "gopher", rows[1][1])
	})
}

func TestHistory(t *testing.T) {
	t.Parallel()

	entry := func(seed string) fs.HistoryEntry {
		return fs.HistoryEntry{
			SeedURL:    seed,
			StartedAt:  time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
			FinishedAt: time.Date(2026, 8, 23, 10, 1, 0, 0, time.UTC),
			Crawled:    10,
			Failed:     1,
		}
	}

	t.Run("appends entries across writes", func(t *testing.T) {
		t.Parallel()

		writer := fs.NewWriter(t.TempDir())

		_, err := writer.AppendHistory(entry("https://a.com/"))
		require.NoError(t, err)
		_, err = writer.AppendHistory(entry("https://b.com/"))
		require.NoError(t, err)

		history, err := writer.LoadHistory()
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "https://a.com/", history[0].SeedURL)
		assert.Equal(t, "https://b.com/", history[1].SeedURL)
	})

	t.Run("missing history loads as empty", func(t *testing.T) {
		t.Parallel()

		writer := fs.NewWriter(t.TempDir())
		history, err := writer.LoadHistory()
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("corrupt history is replaced, not fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0o644))

		writer := fs.NewWriter(dir)
		_, err := writer.AppendHistory(entry("https://a.com/"))
		require.NoError(t, err)

		history, err := writer.LoadHistory()
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "https://a.com/", history[0].SeedURL)
	})
}
