package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/peterdewit/mcp-genealogy-memory/internal/config"
	"github.com/peterdewit/mcp-genealogy-memory/internal/fetch"
	"github.com/peterdewit/mcp-genealogy-memory/internal/logging"
	"github.com/peterdewit/mcp-genealogy-memory/internal/mcp"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
	"github.com/peterdewit/mcp-genealogy-memory/internal/version"
)

// loadConfig reads a local .env if present, then builds the configuration
// from the environment.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return config.Load()
}

// newLogger builds a logger from the configuration. Logs always go to
// stderr; stdout is reserved for the protocol.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: os.Stderr,
	})
}

// buildServer wires the storage, fetcher and MCP server together. The caller
// owns the returned store and must Close it.
func buildServer(cfg *config.Config, logger *logging.Logger) (*mcp.Server, *storage.DB, error) {
	store, err := storage.Open(cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	fetcher := fetch.New(store, cfg.Attachments.Dir, logger)
	server := mcp.NewServer(version.Version, store, fetcher, logger)

	return server, store, nil
}
