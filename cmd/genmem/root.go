package main

import (
	"github.com/peterdewit/mcp-genealogy-memory/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "genmem",
	Short: "genmem - genealogy research memory server",
	Long: `genmem is a Model Context Protocol (MCP) server that gives research agents
a persistent memory for genealogy work: persons, sources, life events,
professions, addresses, attachments, comments, a crawl log and person
relationships, stored in PostgreSQL or SQLite.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("genmem version {{.Version}}\n")
}
