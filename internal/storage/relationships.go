package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Relationship links two persons with a relation kind
// (parent, child, spouse, sibling, partner, unknown).
type Relationship struct {
	RelationshipID  string  `json:"relationship_id"`
	PersonIDA       string  `json:"person_id_a"`
	PersonIDB       string  `json:"person_id_b"`
	RelationType    string  `json:"relation_type"`
	ConfidenceScore float64 `json:"confidence_score"`
	Notes           *string `json:"notes"`
	CreatedAt       string  `json:"created_at"`
}

// RelationshipInput carries the add_relationship fields.
type RelationshipInput struct {
	RelationshipID  string
	PersonIDA       string
	PersonIDB       string
	RelationType    string
	ConfidenceScore float64
	Notes           string
}

// InsertRelationship creates a relationship row.
func (db *DB) InsertRelationship(ctx context.Context, in RelationshipInput) error {
	query, args, err := db.sb.Insert("relationships").
		Columns("relationship_id", "person_id_a", "person_id_b",
			"relation_type", "confidence_score", "notes", "created_at").
		Values(in.RelationshipID, in.PersonIDA, in.PersonIDB, in.RelationType,
			in.ConfidenceScore, nullString(in.Notes), now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for relationship: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert relationship %s: %w", in.RelationshipID, err)
	}
	return nil
}

// PersonRelationships returns every relationship involving the person,
// whether they appear as A or as B.
func (db *DB) PersonRelationships(ctx context.Context, personID string) ([]Relationship, error) {
	query, args, err := db.sb.Select("relationship_id", "person_id_a",
		"person_id_b", "relation_type", "confidence_score", "notes", "created_at").
		From("relationships").
		Where(sq.Or{
			sq.Eq{"person_id_a": personID},
			sq.Eq{"person_id_b": personID},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build relationship list: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships for %s: %w", personID, err)
	}
	defer rows.Close()

	relationships := []Relationship{}
	for rows.Next() {
		var r Relationship
		var notes sql.NullString
		err := rows.Scan(&r.RelationshipID, &r.PersonIDA, &r.PersonIDB,
			&r.RelationType, &r.ConfidenceScore, &notes, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		r.Notes = strPtr(notes)
		relationships = append(relationships, r)
	}
	return relationships, rows.Err()
}
