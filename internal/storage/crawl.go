package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// CrawlEntry is a crawl_log row, the dedup ledger of fetched URLs.
type CrawlEntry struct {
	CrawlID     string  `json:"crawl_id"`
	URL         string  `json:"url"`
	HTTPStatus  *int    `json:"http_status"`
	ContentHash *string `json:"content_hash"`
	Notes       *string `json:"notes"`
	Processed   bool    `json:"processed"`
	FirstSeen   string  `json:"first_seen"`
	LastSeen    string  `json:"last_seen"`
}

// CrawlInput carries the log_crawl fields.
type CrawlInput struct {
	CrawlID     string
	URL         string
	HTTPStatus  int
	ContentHash string
	Notes       string
}

// UpsertCrawl records a crawl, updating status, hash, notes and last_seen
// when the URL is already logged. The conflict resolution is a single atomic
// statement; no two rows ever share a URL.
func (db *DB) UpsertCrawl(ctx context.Context, in CrawlInput) error {
	ts := now()
	query, args, err := db.sb.Insert("crawl_log").
		Columns("crawl_id", "url", "http_status", "content_hash", "notes",
			"first_seen", "last_seen").
		Values(in.CrawlID, in.URL, in.HTTPStatus, nullString(in.ContentHash),
			nullString(in.Notes), ts, ts).
		Suffix(`ON CONFLICT (url) DO UPDATE SET
			http_status = EXCLUDED.http_status,
			content_hash = EXCLUDED.content_hash,
			notes = EXCLUDED.notes,
			last_seen = EXCLUDED.last_seen`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build crawl upsert: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert crawl for %s: %w", in.URL, err)
	}
	return nil
}

// GetCrawlByURL returns the crawl entry for a URL, or ErrNotFound.
func (db *DB) GetCrawlByURL(ctx context.Context, url string) (*CrawlEntry, error) {
	query, args, err := db.sb.Select("crawl_id", "url", "http_status",
		"content_hash", "notes", "processed", "first_seen", "last_seen").
		From("crawl_log").
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build crawl lookup: %w", err)
	}

	row := db.conn.QueryRowContext(ctx, query, args...)
	entry, err := scanCrawl(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan crawl entry for %s: %w", url, err)
	}
	return entry, nil
}

// CrawlIDByURL resolves a URL to its crawl_id for source linking. A URL that
// was never crawled yields an empty ID, not an error: the link is optional
// and resolved at source creation time only.
func (db *DB) CrawlIDByURL(ctx context.Context, url string) (string, error) {
	query, args, err := db.sb.Select("crawl_id").
		From("crawl_log").
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build crawl id lookup: %w", err)
	}

	var crawlID string
	err = db.conn.QueryRowContext(ctx, query, args...).Scan(&crawlID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up crawl id for %s: %w", url, err)
	}
	return crawlID, nil
}

// UnprocessedCrawls returns not-yet-processed crawl entries, oldest first.
// The limit is clamped to [1, 200].
func (db *DB) UnprocessedCrawls(ctx context.Context, limit int) ([]CrawlEntry, error) {
	query, args, err := db.sb.Select("crawl_id", "url", "http_status",
		"content_hash", "notes", "processed", "first_seen", "last_seen").
		From("crawl_log").
		Where(sq.Eq{"processed": false}).
		OrderBy("first_seen ASC").
		Limit(uint64(clampLimit(limit, 200))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unprocessed crawl query: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed crawls: %w", err)
	}
	defer rows.Close()

	entries := []CrawlEntry{}
	for rows.Next() {
		entry, err := scanCrawl(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crawl row: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// MarkCrawlProcessed flags a URL as processed.
func (db *DB) MarkCrawlProcessed(ctx context.Context, url string) error {
	query, args, err := db.sb.Update("crawl_log").
		Set("processed", true).
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build processed update: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark crawl processed for %s: %w", url, err)
	}
	return nil
}

func scanCrawl(scan func(dest ...interface{}) error) (*CrawlEntry, error) {
	var e CrawlEntry
	var httpStatus sql.NullInt64
	var contentHash, notes sql.NullString
	err := scan(&e.CrawlID, &e.URL, &httpStatus, &contentHash, &notes,
		&e.Processed, &e.FirstSeen, &e.LastSeen)
	if err != nil {
		return nil, err
	}
	e.HTTPStatus = intPtr(httpStatus)
	e.ContentHash = strPtr(contentHash)
	e.Notes = strPtr(notes)
	return &e, nil
}
