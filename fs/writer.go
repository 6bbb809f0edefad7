// Package fs persists crawl results, keyword reports, and crawl history
// as files in an output directory.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aknapek/crawlspace"
)

// linkDelimiter joins discovered links into a single CSV field.
const linkDelimiter = "|"

// csvHeader is the column order for result CSV files.
var csvHeader = []string{
	"url", "depth", "status", "status_code", "title",
	"meta_description", "content_snippet", "discovered_links",
	"fetched_at", "error",
}

// Writer writes timestamped result files into a directory.
type Writer struct {
	dir string

	// now is the clock used for file naming; replaceable in tests.
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// SaveJSON writes the result as an indented JSON file and returns its path.
func (w *Writer) SaveJSON(result *crawlspace.Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return w.write(w.timestampedPath("crawl", "json"), data)
}

// SaveCSV writes the result as one CSV row per record and returns its path.
// Discovered links are joined with "|".
func (w *Writer) SaveCSV(result *crawlspace.Result) (string, error) {
	var buf strings.Builder
	cw := csv.NewWriter(&buf)

	if err := cw.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write CSV header: %w", err)
	}
	for _, record := range result.Records {
		row := []string{
			record.URL,
			strconv.Itoa(record.Depth),
			string(record.Status),
			strconv.Itoa(record.StatusCode),
			record.Title,
			record.MetaDescription,
			record.ContentSnippet,
			strings.Join(record.DiscoveredLinks, linkDelimiter),
			record.FetchedAt.Format(time.RFC3339),
			record.Error,
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush CSV: %w", err)
	}

	return w.write(w.timestampedPath("crawl", "csv"), []byte(buf.String()))
}

// SaveKeywordsJSON writes a keyword analysis report as JSON.
func (w *Writer) SaveKeywordsJSON(result *crawlspace.KeywordResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode keyword result: %w", err)
	}
	return w.write(w.timestampedPath("keywords", "json"), data)
}

// SaveKeywordsCSV writes a keyword analysis report as ranked CSV rows.
func (w *Writer) SaveKeywordsCSV(result *crawlspace.KeywordResult) (string, error) {
	var buf strings.Builder
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"rank", "keyword", "frequency", "co_occurrence", "tfidf_score"}); err != nil {
		return "", fmt.Errorf("write CSV header: %w", err)
	}
	for i, kw := range result.RelatedKeywords {
		row := []string{
			strconv.Itoa(i + 1),
			kw.Keyword,
			strconv.Itoa(kw.Frequency),
			strconv.Itoa(kw.CoOccurrence),
			strconv.FormatFloat(kw.TFIDFScore, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush CSV: %w", err)
	}

	return w.write(w.timestampedPath("keywords", "csv"), []byte(buf.String()))
}

// timestampedPath builds output paths like crawl_20260102_150405.json.
func (w *Writer) timestampedPath(prefix, ext string) string {
	ts := w.now().Format("20060102_150405")
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.%s", prefix, ts, ext))
}

// write creates the output directory if needed and writes the file.
func (w *Writer) write(path string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
