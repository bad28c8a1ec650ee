package mcp

import (
	"context"
	"fmt"

	"github.com/peterdewit/mcp-genealogy-memory/internal/envelope"
	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// toolAddSource adds a source definition. When crawl_url matches a logged
// crawl the source is linked to it; an unknown URL just leaves crawl_id null.
func (s *Server) toolAddSource(params map[string]interface{}) (*envelope.Response, error) {
	ctx := context.Background()

	crawlID := ""
	if crawlURL := stringParam(params, "crawl_url"); crawlURL != "" {
		id, err := s.store.CrawlIDByURL(ctx, crawlURL)
		if err != nil {
			return nil, fmt.Errorf("add_source: %w", err)
		}
		crawlID = id
	}

	sid := identity.NewID()
	in := storage.SourceInput{
		SourceID:        sid,
		SourceType:      stringParam(params, "source_type"),
		ArchiveCode:     stringParam(params, "archive_code"),
		ArchiveName:     stringParam(params, "archive_name"),
		Identifier:      stringParam(params, "identifier"),
		URL:             stringParam(params, "url"),
		Collection:      stringParam(params, "collection"),
		DocumentNumber:  stringParam(params, "document_number"),
		RegistryNumber:  stringParam(params, "registry_number"),
		InstitutionName: stringParam(params, "institution_name"),
		RawJSON:         stringParam(params, "raw_json"),
		Notes:           stringParam(params, "notes"),
		ImageURL:        stringParam(params, "image_url"),
		CrawlID:         crawlID,
	}
	if err := s.store.InsertSource(ctx, in); err != nil {
		return nil, fmt.Errorf("add_source: %w", err)
	}

	return envelope.OK(map[string]interface{}{"source_id": sid}), nil
}
