// Package storage is the record store: it translates already-validated tool
// inputs into single parameterized statements against the genealogy schema
// and maps rows back to records. There are no multi-statement transactions
// and no retries; the one place relying on atomic conflict resolution is the
// crawl log upsert.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	_ "modernc.org/sqlite"             // Pure Go SQLite driver

	"github.com/peterdewit/mcp-genealogy-memory/internal/config"
	"github.com/peterdewit/mcp-genealogy-memory/internal/logging"
)

// ErrNotFound is returned by lookups that match no row. Every other failure
// propagates unwrapped so the transport can treat it as fatal.
var ErrNotFound = errors.New("record not found")

// DB represents a database connection plus the statement builder matching
// the driver's placeholder syntax.
type DB struct {
	conn   *sql.DB
	sb     sq.StatementBuilderType
	logger *logging.Logger
}

// Open connects to the configured database, verifies the connection and
// bootstraps the schema. Timestamps are stored as RFC 3339 text so the same
// schema works on both supported drivers.
func Open(cfg config.DatabaseConfig, logger *logging.Logger) (*DB, error) {
	driverName := "pgx"
	var placeholder sq.PlaceholderFormat = sq.Dollar
	if cfg.Driver == config.DriverSQLite {
		driverName = "sqlite"
		placeholder = sq.Question
	}

	conn, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// WAL and a busy timeout keep concurrent tool calls from tripping
		// over the single writer.
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA foreign_keys=ON",
			"PRAGMA busy_timeout=5000",
		}
		for _, pragma := range pragmas {
			if _, err := conn.Exec(pragma); err != nil {
				conn.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	}

	db := &DB{
		conn:   conn,
		sb:     sq.StatementBuilder.PlaceholderFormat(placeholder),
		logger: logger,
	}

	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("Database ready", map[string]interface{}{
		"driver": cfg.Driver,
	})

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// timestampLayout is RFC 3339 with a fixed-width fraction so lexicographic
// order equals chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// now returns the canonical stored timestamp.
func now() string {
	return time.Now().UTC().Format(timestampLayout)
}

// clampLimit bounds a caller-supplied limit to [1, max]. Clamping an
// already-clamped value is a no-op.
func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
