// Package mcp implements the tool surface: a JSON-RPC 2.0 server speaking
// the Model Context Protocol over stdio or HTTP, with one tool per operation
// on the genealogy schema.
package mcp

import (
	"bufio"
	"io"
	"os"

	"github.com/peterdewit/mcp-genealogy-memory/internal/fetch"
	"github.com/peterdewit/mcp-genealogy-memory/internal/logging"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// Server represents the MCP server. Each incoming call runs straight-line to
// completion; there is no shared mutable state across calls beyond the
// database pool.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *logging.Logger
	version string
	store   *storage.DB
	fetcher *fetch.Fetcher
	tools   map[string]ToolHandler
}

// NewServer creates a new MCP server over the given record store and fetcher.
func NewServer(version string, store *storage.DB, fetcher *fetch.Fetcher, logger *logging.Logger) *Server {
	server := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		store:   store,
		fetcher: fetcher,
		tools:   make(map[string]ToolHandler),
	}

	server.RegisterTools()

	return server
}

// Start begins processing messages from stdin until EOF.
func (s *Server) Start() error {
	s.logger.Info("MCP server starting", map[string]interface{}{
		"version": s.version,
	})

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)", nil)
				return nil
			}
			s.logger.Error("Error reading message", map[string]interface{}{
				"error": err.Error(),
			})

			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, "Failed to parse message: "+err.Error())
			}
			continue
		}

		// Notifications don't generate responses.
		response := s.handleMessage(msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("Error writing response", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // Reset scanner so it will be recreated with new reader
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
