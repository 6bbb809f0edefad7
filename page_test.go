package crawlspace_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknapek/crawlspace"
)

func TestResultAdd(t *testing.T) {
	t.Parallel()

	result := &crawlspace.Result{SeedURL: "https://example.com/"}

	result.Add(&crawlspace.PageRecord{URL: "https://example.com/", Status: crawlspace.StatusSuccess})
	result.Add(&crawlspace.PageRecord{URL: "https://example.com/a", Status: crawlspace.StatusSuccess})
	result.Add(&crawlspace.PageRecord{URL: "https://example.com/b", Status: crawlspace.StatusFailed})
	result.Add(&crawlspace.PageRecord{URL: "https://example.com/c", Status: crawlspace.StatusSkipped})

	assert.Equal(t, 2, result.Crawled)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Records, 4)
}

func TestPageRecordJSON(t *testing.T) {
	t.Parallel()

	t.Run("uses snake_case field names", func(t *testing.T) {
		t.Parallel()

		record := &crawlspace.PageRecord{
			URL:             "https://example.com/",
			Depth:           1,
			Status:          crawlspace.StatusSuccess,
			StatusCode:      200,
			Title:           "Example",
			MetaDescription: "desc",
			ContentSnippet:  "snippet",
			DiscoveredLinks: []string{"https://example.com/a"},
			FetchedAt:       time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		}

		data, err := json.Marshal(record)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Contains(t, fields, "url")
		assert.Contains(t, fields, "status_code")
		assert.Contains(t, fields, "meta_description")
		assert.Contains(t, fields, "content_snippet")
		assert.Contains(t, fields, "discovered_links")
		assert.Contains(t, fields, "fetched_at")
	})

	t.Run("omits empty error and headlines", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(&crawlspace.PageRecord{URL: "https://example.com/"})
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.NotContains(t, fields, "error")
		assert.NotContains(t, fields, "headlines")
	})

	t.Run("full text never serializes", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(&crawlspace.PageRecord{
			URL:      "https://example.com/",
			FullText: "the entire page text",
		})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "entire page text")
	})
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("timeouts and network failures are retryable", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&crawlspace.FetchError{Kind: crawlspace.FetchTimeout}).Retryable())
		assert.True(t, (&crawlspace.FetchError{Kind: crawlspace.FetchNetwork}).Retryable())
	})

	t.Run("5xx and 429 are retryable", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&crawlspace.FetchError{Kind: crawlspace.FetchStatus, StatusCode: 500}).Retryable())
		assert.True(t, (&crawlspace.FetchError{Kind: crawlspace.FetchStatus, StatusCode: 503}).Retryable())
		assert.True(t, (&crawlspace.FetchError{Kind: crawlspace.FetchStatus, StatusCode: 429}).Retryable())
	})

	t.Run("other 4xx are terminal", func(t *testing.T) {
		t.Parallel()

		assert.False(t, (&crawlspace.FetchError{Kind: crawlspace.FetchStatus, StatusCode: 404}).Retryable())
		assert.False(t, (&crawlspace.FetchError{Kind: crawlspace.FetchStatus, StatusCode: 403}).Retryable())
	})

	t.Run("unsupported content is terminal", func(t *testing.T) {
		t.Parallel()

		assert.False(t, (&crawlspace.FetchError{Kind: crawlspace.FetchContent, StatusCode: 200}).Retryable())
	})

	t.Run("unknown errors are treated as transient", func(t *testing.T) {
		t.Parallel()

		assert.True(t, crawlspace.RetryableError(assert.AnError))
	})
}
