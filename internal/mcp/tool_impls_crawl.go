package mcp

import (
	"context"
	"fmt"

	"github.com/peterdewit/mcp-genealogy-memory/internal/envelope"
	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// toolLogCrawl records or updates a crawl entry. Calling it again for the
// same URL refreshes status, hash, notes and last_seen on the existing row.
func (s *Server) toolLogCrawl(params map[string]interface{}) (*envelope.Response, error) {
	url := stringParam(params, "url")
	if url == "" {
		return envelope.Err(envelope.CodeMissingURL), nil
	}

	in := storage.CrawlInput{
		CrawlID:     identity.NewID(),
		URL:         url,
		HTTPStatus:  intParam(params, "http_status", 200),
		ContentHash: stringParam(params, "content_hash"),
		Notes:       stringParam(params, "notes"),
	}
	if err := s.store.UpsertCrawl(context.Background(), in); err != nil {
		return nil, fmt.Errorf("log_crawl: %w", err)
	}

	return envelope.OK(map[string]interface{}{"url": url}), nil
}

// toolGetUnprocessedCrawls returns crawl log rows not yet processed
func (s *Server) toolGetUnprocessedCrawls(params map[string]interface{}) (*envelope.Response, error) {
	limit := intParam(params, "limit", 20)

	crawls, err := s.store.UnprocessedCrawls(context.Background(), limit)
	if err != nil {
		return nil, fmt.Errorf("get_unprocessed_crawls: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":  len(crawls),
		"crawls": crawls,
	}), nil
}

// toolMarkCrawlProcessed marks a URL as processed in the crawl log
func (s *Server) toolMarkCrawlProcessed(params map[string]interface{}) (*envelope.Response, error) {
	url := stringParam(params, "url")
	if url == "" {
		return envelope.Err(envelope.CodeMissingURL), nil
	}

	if err := s.store.MarkCrawlProcessed(context.Background(), url); err != nil {
		return nil, fmt.Errorf("mark_crawl_processed: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"url":       url,
		"processed": true,
	}), nil
}
