package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/aknapek/crawlspace"
)

// Compile-time interface verification.
var _ crawlspace.RunService = (*RunService)(nil)

// RunService implements crawlspace.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	if content == "" {
		return ""
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateRun stores a run and its page records in one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *crawlspace.Run, records []*crawlspace.PageRecord) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, started_at, finished_at, total_crawled, total_failed, total_skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Crawled, run.Failed, run.Skipped)
	if err != nil {
		return err
	}

	for _, record := range records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (id, run_id, url, depth, status, status_code, title,
				meta_description, content_snippet, content_hash, discovered_links, fetched_at, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, record.URL, record.Depth, string(record.Status),
			record.StatusCode, record.Title, record.MetaDescription, record.ContentSnippet,
			hashContent(record.FullText), len(record.DiscoveredLinks),
			record.FetchedAt.UTC().Format(time.RFC3339), record.Error)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter crawlspace.RunFilter) ([]*crawlspace.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, seed_url, started_at, finished_at, total_crawled, total_failed, total_skipped
		FROM runs
		WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY started_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*crawlspace.Run
	for rows.Next() {
		var run crawlspace.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.SeedURL, &startedAt, &finishedAt,
			&run.Crawled, &run.Failed, &run.Skipped); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}

		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindPagesByRun retrieves the page records archived for a run.
func (s *RunService) FindPagesByRun(ctx context.Context, runID string) ([]*crawlspace.PageRecord, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, crawlspace.Errorf(crawlspace.ENOTFOUND, "run %q not found", runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, depth, status, status_code, title, meta_description,
			content_snippet, fetched_at, error
		FROM pages
		WHERE run_id = ?
		ORDER BY fetched_at ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*crawlspace.PageRecord
	for rows.Next() {
		var record crawlspace.PageRecord
		var status, fetchedAt string

		if err := rows.Scan(&record.URL, &record.Depth, &status, &record.StatusCode,
			&record.Title, &record.MetaDescription, &record.ContentSnippet,
			&fetchedAt, &record.Error); err != nil {
			return nil, err
		}
		record.Status = crawlspace.Status(status)
		if record.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt); err != nil {
			return nil, fmt.Errorf("parse fetched_at: %w", err)
		}
		record.DiscoveredLinks = []string{}

		records = append(records, &record)
	}
	return records, rows.Err()
}
