package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyFile is the per-directory crawl history file name.
const historyFile = "history.json"

// HistoryEntry summarizes one crawl run in the history file.
type HistoryEntry struct {
	SeedURL    string    `json:"seed_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Crawled    int       `json:"total_crawled"`
	Failed     int       `json:"total_failed"`
	Skipped    int       `json:"total_skipped"`
	Outputs    []string  `json:"outputs,omitempty"`
}

// AppendHistory appends an entry to the directory's history.json and
// returns its path. A corrupt history file is replaced rather than failing.
func (w *Writer) AppendHistory(entry HistoryEntry) (string, error) {
	history, _ := w.LoadHistory()
	history = append(history, entry)

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return w.write(filepath.Join(w.dir, historyFile), data)
}

// LoadHistory reads the directory's crawl history.
// A missing or corrupt file yields an empty history.
func (w *Writer) LoadHistory() ([]HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(w.dir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var history []HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, nil
	}
	return history, nil
}
