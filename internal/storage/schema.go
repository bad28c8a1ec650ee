package storage

import "fmt"

// schemaStatements creates the genealogy tables. Written in the portable
// subset shared by Postgres and SQLite: TEXT keys generated by the
// application, RFC 3339 text timestamps, ON CONFLICT upserts.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS persons (
		person_id TEXT PRIMARY KEY,
		given_name TEXT,
		prefix TEXT,
		surname TEXT,
		gender TEXT,
		birth_year_estimate INTEGER,
		death_year_estimate INTEGER,
		notes TEXT,
		full_name_normalized TEXT,
		confidence_score REAL NOT NULL DEFAULT 1.0,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		research_status TEXT,
		research_notes TEXT,
		possible_duplicate_of TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sources (
		source_id TEXT PRIMARY KEY,
		source_type TEXT,
		archive_code TEXT,
		archive_name TEXT,
		identifier TEXT,
		url TEXT,
		collection TEXT,
		document_number TEXT,
		registry_number TEXT,
		institution_name TEXT,
		raw_json TEXT,
		notes TEXT,
		image_url TEXT,
		crawl_id TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		date_literal TEXT,
		year INTEGER,
		month INTEGER,
		day INTEGER,
		place TEXT,
		country TEXT,
		source_id TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS professions (
		profession_id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		title TEXT NOT NULL,
		start_year INTEGER,
		end_year INTEGER,
		location TEXT,
		source_id TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		address_id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		street TEXT,
		house_number TEXT,
		city TEXT,
		province TEXT,
		country TEXT,
		start_year INTEGER,
		end_year INTEGER,
		source_id TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attachments (
		attachment_id TEXT PRIMARY KEY,
		source_id TEXT,
		person_id TEXT,
		file_name TEXT,
		file_type TEXT,
		file_path TEXT,
		description TEXT,
		download_url TEXT,
		should_fetch BOOLEAN NOT NULL DEFAULT FALSE,
		fetched BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		comment_id TEXT PRIMARY KEY,
		person_id TEXT,
		source_id TEXT,
		author TEXT,
		text TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crawl_log (
		crawl_id TEXT PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		http_status INTEGER,
		content_hash TEXT,
		notes TEXT,
		processed BOOLEAN NOT NULL DEFAULT FALSE,
		first_seen TEXT NOT NULL,
		last_seen TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS relationships (
		relationship_id TEXT PRIMARY KEY,
		person_id_a TEXT NOT NULL,
		person_id_b TEXT NOT NULL,
		relation_type TEXT NOT NULL,
		confidence_score REAL NOT NULL DEFAULT 1.0,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_person ON events(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_professions_person ON professions(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_person ON addresses(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_person ON attachments(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_person ON comments(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_relationships_a ON relationships(person_id_a)`,
	`CREATE INDEX IF NOT EXISTS idx_relationships_b ON relationships(person_id_b)`,
}

func (db *DB) initializeSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
