package storage

import (
	"context"
	"testing"

	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
)

func TestUpsertCrawlDeduplicates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	url := "https://archief.example/akte/42"
	err := db.UpsertCrawl(ctx, CrawlInput{
		CrawlID:     identity.NewID(),
		URL:         url,
		HTTPStatus:  200,
		ContentHash: "aaa",
		Notes:       "first pass",
	})
	if err != nil {
		t.Fatalf("first UpsertCrawl failed: %v", err)
	}

	first, err := db.GetCrawlByURL(ctx, url)
	if err != nil {
		t.Fatalf("GetCrawlByURL failed: %v", err)
	}

	err = db.UpsertCrawl(ctx, CrawlInput{
		CrawlID:     identity.NewID(),
		URL:         url,
		HTTPStatus:  304,
		ContentHash: "bbb",
		Notes:       "second pass",
	})
	if err != nil {
		t.Fatalf("second UpsertCrawl failed: %v", err)
	}

	second, err := db.GetCrawlByURL(ctx, url)
	if err != nil {
		t.Fatalf("GetCrawlByURL after upsert failed: %v", err)
	}

	// Same row: the original id and first_seen survive.
	if second.CrawlID != first.CrawlID {
		t.Errorf("upsert must not create a new row: %s != %s", second.CrawlID, first.CrawlID)
	}
	if second.FirstSeen != first.FirstSeen {
		t.Errorf("first_seen must not change: %s != %s", second.FirstSeen, first.FirstSeen)
	}

	// The second call's fields win and last_seen advances.
	if second.HTTPStatus == nil || *second.HTTPStatus != 304 {
		t.Errorf("expected http_status 304, got %v", second.HTTPStatus)
	}
	if second.ContentHash == nil || *second.ContentHash != "bbb" {
		t.Errorf("expected content_hash bbb, got %v", second.ContentHash)
	}
	if second.Notes == nil || *second.Notes != "second pass" {
		t.Errorf("expected notes from second call, got %v", second.Notes)
	}
	if !(second.LastSeen > first.LastSeen) {
		t.Errorf("last_seen should advance: %s -> %s", first.LastSeen, second.LastSeen)
	}

	// Exactly one row for the URL.
	crawls, err := db.UnprocessedCrawls(ctx, 200)
	if err != nil {
		t.Fatalf("UnprocessedCrawls failed: %v", err)
	}
	if len(crawls) != 1 {
		t.Errorf("expected exactly one crawl row, got %d", len(crawls))
	}
}

func TestUnprocessedCrawlsOrderAndClamp(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	urls := []string{
		"https://example.test/a",
		"https://example.test/b",
		"https://example.test/c",
	}
	for _, url := range urls {
		err := db.UpsertCrawl(ctx, CrawlInput{
			CrawlID:    identity.NewID(),
			URL:        url,
			HTTPStatus: 200,
		})
		if err != nil {
			t.Fatalf("UpsertCrawl failed: %v", err)
		}
	}

	// Oldest first.
	crawls, err := db.UnprocessedCrawls(ctx, 20)
	if err != nil {
		t.Fatalf("UnprocessedCrawls failed: %v", err)
	}
	if len(crawls) != 3 {
		t.Fatalf("expected 3 unprocessed crawls, got %d", len(crawls))
	}
	for i, url := range urls {
		if crawls[i].URL != url {
			t.Errorf("crawl %d out of order: got %s, want %s", i, crawls[i].URL, url)
		}
	}

	// Limit clamps to at least 1.
	crawls, err = db.UnprocessedCrawls(ctx, 0)
	if err != nil {
		t.Fatalf("UnprocessedCrawls failed: %v", err)
	}
	if len(crawls) != 1 {
		t.Errorf("limit 0 should behave as 1, got %d rows", len(crawls))
	}
}

func TestMarkCrawlProcessed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	url := "https://example.test/done"
	err := db.UpsertCrawl(ctx, CrawlInput{
		CrawlID:    identity.NewID(),
		URL:        url,
		HTTPStatus: 200,
	})
	if err != nil {
		t.Fatalf("UpsertCrawl failed: %v", err)
	}

	if err := db.MarkCrawlProcessed(ctx, url); err != nil {
		t.Fatalf("MarkCrawlProcessed failed: %v", err)
	}

	crawls, err := db.UnprocessedCrawls(ctx, 20)
	if err != nil {
		t.Fatalf("UnprocessedCrawls failed: %v", err)
	}
	if len(crawls) != 0 {
		t.Errorf("processed crawl should not be listed, got %d rows", len(crawls))
	}

	entry, err := db.GetCrawlByURL(ctx, url)
	if err != nil {
		t.Fatalf("GetCrawlByURL failed: %v", err)
	}
	if !entry.Processed {
		t.Error("expected processed flag set")
	}
}
