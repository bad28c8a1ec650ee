package main

import (
	"github.com/peterdewit/mcp-genealogy-memory/internal/version"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol (MCP) server.

The server lets research agents record and query genealogy findings via
tool calls. It communicates over stdio using JSON-RPC 2.0 and is
typically invoked by an MCP client, not directly by users.

Example usage:
  genmem mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	logger.Info("Starting MCP server", map[string]interface{}{
		"version": version.Version,
		"driver":  cfg.Database.Driver,
	})

	server, store, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := server.Start(); err != nil {
		logger.Error("MCP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	return nil
}
