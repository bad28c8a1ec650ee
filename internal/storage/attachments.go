package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// AttachmentInput carries the add_attachment fields for file-backed
// attachments registered by path; the file itself is managed externally.
type AttachmentInput struct {
	AttachmentID string
	SourceID     string
	PersonID     string
	FileName     string
	FileType     string
	FilePath     string
	Description  string
}

// AttachmentMetadataInput carries the add_attachment_metadata fields for
// URL-backed attachments downloaded later by the fetcher.
type AttachmentMetadataInput struct {
	AttachmentID string
	PersonID     string
	SourceID     string
	DownloadURL  string
	Description  string
	ShouldFetch  bool
}

// PendingAttachment is a fetch-eligible row: should_fetch set, not yet
// fetched, download URL present.
type PendingAttachment struct {
	AttachmentID string
	DownloadURL  string
}

// InsertAttachment registers a file-backed attachment.
func (db *DB) InsertAttachment(ctx context.Context, in AttachmentInput) error {
	query, args, err := db.sb.Insert("attachments").
		Columns("attachment_id", "source_id", "person_id", "file_name",
			"file_type", "file_path", "description", "created_at").
		Values(in.AttachmentID, nullString(in.SourceID), nullString(in.PersonID),
			nullString(in.FileName), nullString(in.FileType),
			nullString(in.FilePath), nullString(in.Description), now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for attachment: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert attachment %s: %w", in.AttachmentID, err)
	}
	return nil
}

// InsertAttachmentMetadata registers a URL-backed attachment.
func (db *DB) InsertAttachmentMetadata(ctx context.Context, in AttachmentMetadataInput) error {
	query, args, err := db.sb.Insert("attachments").
		Columns("attachment_id", "person_id", "source_id", "download_url",
			"description", "should_fetch", "created_at").
		Values(in.AttachmentID, nullString(in.PersonID), nullString(in.SourceID),
			in.DownloadURL, nullString(in.Description), in.ShouldFetch, now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for attachment metadata: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert attachment metadata %s: %w", in.AttachmentID, err)
	}
	return nil
}

// PendingAttachments returns the fetch-eligible attachments for a person.
// The full result set is processed per fetch call, so no limit applies.
func (db *DB) PendingAttachments(ctx context.Context, personID string) ([]PendingAttachment, error) {
	query, args, err := db.sb.Select("attachment_id", "download_url").
		From("attachments").
		Where(sq.Eq{"person_id": personID, "should_fetch": true, "fetched": false}).
		Where(sq.NotEq{"download_url": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending attachment query: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending attachments for %s: %w", personID, err)
	}
	defer rows.Close()

	pending := []PendingAttachment{}
	for rows.Next() {
		var p PendingAttachment
		if err := rows.Scan(&p.AttachmentID, &p.DownloadURL); err != nil {
			return nil, fmt.Errorf("failed to scan pending attachment: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkAttachmentFetched records a completed download: the saved path, the
// fixed binary file type and the fetched flag.
func (db *DB) MarkAttachmentFetched(ctx context.Context, attachmentID, filePath string) error {
	query, args, err := db.sb.Update("attachments").
		Set("file_path", filePath).
		Set("file_type", "binary").
		Set("fetched", true).
		Where(sq.Eq{"attachment_id": attachmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build fetched update: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark attachment %s fetched: %w", attachmentID, err)
	}
	return nil
}

// AttachmentFetched reports the fetched flag for one attachment.
func (db *DB) AttachmentFetched(ctx context.Context, attachmentID string) (bool, error) {
	query, args, err := db.sb.Select("fetched").
		From("attachments").
		Where(sq.Eq{"attachment_id": attachmentID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build fetched query: %w", err)
	}

	var fetched bool
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&fetched); err != nil {
		return false, fmt.Errorf("failed to read fetched flag for %s: %w", attachmentID, err)
	}
	return fetched, nil
}
