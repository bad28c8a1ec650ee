// Package fetch downloads URL-backed attachments and persists their bytes.
// This is the one part of the system with externally-caused partial failure
// (network, disk), so it isolates failures per row: a single unreachable URL
// never blocks the rest of the batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/peterdewit/mcp-genealogy-memory/internal/logging"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// requestTimeout bounds each download.
const requestTimeout = 20 * time.Second

// Store is the slice of the record store the fetcher needs.
type Store interface {
	PendingAttachments(ctx context.Context, personID string) ([]storage.PendingAttachment, error)
	MarkAttachmentFetched(ctx context.Context, attachmentID, filePath string) error
}

// Outcome is the per-row result: either a saved path or an error message,
// never both.
type Outcome struct {
	AttachmentID string `json:"attachment_id"`
	SavedPath    string `json:"saved_path,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Fetcher downloads pending attachments into a content directory.
type Fetcher struct {
	store  Store
	client *http.Client
	dir    string
	logger *logging.Logger
}

// New creates a fetcher writing into dir. The directory is created lazily on
// first use.
func New(store Store, dir string, logger *logging.Logger) *Fetcher {
	return &Fetcher{
		store:  store,
		client: &http.Client{Timeout: requestTimeout},
		dir:    dir,
		logger: logger,
	}
}

// FetchForPerson downloads every fetch-eligible attachment of a person,
// sequentially and without an upper bound on row count. Per-row failures are
// recorded in the returned outcomes; only querying the pending set or
// creating the content directory can fail the call itself.
func (f *Fetcher) FetchForPerson(ctx context.Context, personID string) ([]Outcome, error) {
	pending, err := f.store.PendingAttachments(ctx, personID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}

	results := make([]Outcome, 0, len(pending))
	for _, att := range pending {
		results = append(results, f.fetchOne(ctx, att))
	}
	return results, nil
}

// fetchOne downloads a single attachment and updates its row on success.
func (f *Fetcher) fetchOne(ctx context.Context, att storage.PendingAttachment) Outcome {
	outcome := Outcome{AttachmentID: att.AttachmentID}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.DownloadURL, nil)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Attachment download failed", map[string]interface{}{
			"attachment_id": att.AttachmentID,
			"error":         err.Error(),
		})
		outcome.Error = err.Error()
		return outcome
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// No retry, no backoff: the row stays eligible for a later call.
		outcome.Error = fmt.Sprintf("http_status=%d", resp.StatusCode)
		return outcome
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	savedPath := filepath.Join(f.dir, att.AttachmentID+".bin")
	if err := os.WriteFile(savedPath, body, 0644); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	if err := f.store.MarkAttachmentFetched(ctx, att.AttachmentID, savedPath); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	f.logger.Info("Attachment fetched", map[string]interface{}{
		"attachment_id": att.AttachmentID,
		"saved_path":    savedPath,
	})
	outcome.SavedPath = savedPath
	return outcome
}
