package storage

import (
	"context"
	"fmt"
)

// SourceInput carries the add_source fields. The crawl link is resolved by
// the caller (URL lookup at creation time only); an empty CrawlID stays NULL.
type SourceInput struct {
	SourceID        string
	SourceType      string
	ArchiveCode     string
	ArchiveName     string
	Identifier      string
	URL             string
	Collection      string
	DocumentNumber  string
	RegistryNumber  string
	InstitutionName string
	RawJSON         string
	Notes           string
	ImageURL        string
	CrawlID         string
}

// InsertSource creates a source row.
func (db *DB) InsertSource(ctx context.Context, in SourceInput) error {
	query, args, err := db.sb.Insert("sources").
		Columns("source_id", "source_type", "archive_code", "archive_name",
			"identifier", "url", "collection", "document_number",
			"registry_number", "institution_name", "raw_json", "notes",
			"image_url", "crawl_id", "created_at").
		Values(in.SourceID, nullString(in.SourceType), nullString(in.ArchiveCode),
			nullString(in.ArchiveName), nullString(in.Identifier),
			nullString(in.URL), nullString(in.Collection),
			nullString(in.DocumentNumber), nullString(in.RegistryNumber),
			nullString(in.InstitutionName), nullString(in.RawJSON),
			nullString(in.Notes), nullString(in.ImageURL),
			nullString(in.CrawlID), now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for source: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert source %s: %w", in.SourceID, err)
	}
	return nil
}
