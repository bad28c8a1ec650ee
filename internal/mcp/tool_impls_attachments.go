package mcp

import (
	"context"
	"fmt"

	"github.com/peterdewit/mcp-genealogy-memory/internal/envelope"
	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// toolAddAttachment registers a file-backed attachment. The file itself is
// managed externally; this record is metadata only.
func (s *Server) toolAddAttachment(params map[string]interface{}) (*envelope.Response, error) {
	fileName := stringParam(params, "file_name")
	filePath := stringParam(params, "file_path")
	if fileName == "" && filePath == "" {
		return envelope.Err(envelope.CodeMissingFileInfo), nil
	}

	attID := identity.NewID()
	in := storage.AttachmentInput{
		AttachmentID: attID,
		SourceID:     stringParam(params, "source_id"),
		PersonID:     stringParam(params, "person_id"),
		FileName:     fileName,
		FileType:     stringParam(params, "file_type"),
		FilePath:     filePath,
		Description:  stringParam(params, "description"),
	}
	if err := s.store.InsertAttachment(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_attachment: %w", err)
	}

	return envelope.OK(map[string]interface{}{"attachment_id": attID}), nil
}

// toolAddAttachmentMetadata registers a URL-only attachment for later download
func (s *Server) toolAddAttachmentMetadata(params map[string]interface{}) (*envelope.Response, error) {
	downloadURL := stringParam(params, "download_url")
	if downloadURL == "" {
		return envelope.Err(envelope.CodeMissingDownloadURL), nil
	}

	attID := identity.NewID()
	in := storage.AttachmentMetadataInput{
		AttachmentID: attID,
		PersonID:     stringParam(params, "person_id"),
		SourceID:     stringParam(params, "source_id"),
		DownloadURL:  downloadURL,
		Description:  stringParam(params, "description"),
		ShouldFetch:  boolParam(params, "should_fetch", false),
	}
	if err := s.store.InsertAttachmentMetadata(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_attachment_metadata: %w", err)
	}

	return envelope.OK(map[string]interface{}{"attachment_id": attID}), nil
}

// toolFetchAttachmentsForPerson downloads every pending attachment for the
// person. Individual failures land in the per-attachment results, never in
// the envelope status.
func (s *Server) toolFetchAttachmentsForPerson(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	results, err := s.fetcher.FetchForPerson(context.Background(), personID)
	if err != nil {
		return nil, fmt.Errorf("fetch_attachments_for_person: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"person_id": personID,
		"results":   results,
	}), nil
}

// toolAddComment adds a free-text comment or note
func (s *Server) toolAddComment(params map[string]interface{}) (*envelope.Response, error) {
	text := stringParam(params, "text")
	if text == "" {
		return envelope.Err(envelope.CodeMissingText), nil
	}

	cid := identity.NewID()
	in := storage.CommentInput{
		CommentID: cid,
		PersonID:  stringParam(params, "person_id"),
		SourceID:  stringParam(params, "source_id"),
		Author:    stringParam(params, "author"),
		Text:      text,
	}
	if err := s.store.InsertComment(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_comment: %w", err)
	}

	return envelope.OK(map[string]interface{}{"comment_id": cid}), nil
}

// toolListPersonComments lists all comments for a person
func (s *Server) toolListPersonComments(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	comments, err := s.store.ListPersonComments(context.Background(), personID)
	if err != nil {
		return nil, fmt.Errorf("list_person_comments: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":    len(comments),
		"comments": comments,
	}), nil
}
