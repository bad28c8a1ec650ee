package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Profession is an occupation row, optionally bounded by a year range.
type Profession struct {
	ProfessionID string  `json:"profession_id"`
	PersonID     string  `json:"person_id"`
	Title        string  `json:"title"`
	StartYear    *int    `json:"start_year"`
	EndYear      *int    `json:"end_year"`
	Location     *string `json:"location"`
	SourceID     *string `json:"source_id"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at"`
}

// ProfessionInput carries the add_profession fields.
type ProfessionInput struct {
	ProfessionID string
	PersonID     string
	Title        string
	StartYear    int
	EndYear      int
	Location     string
	SourceID     string
	Notes        string
}

// InsertProfession creates a profession row.
func (db *DB) InsertProfession(ctx context.Context, in ProfessionInput) error {
	query, args, err := db.sb.Insert("professions").
		Columns("profession_id", "person_id", "title", "start_year",
			"end_year", "location", "source_id", "notes", "created_at").
		Values(in.ProfessionID, in.PersonID, in.Title, nullInt(in.StartYear),
			nullInt(in.EndYear), nullString(in.Location),
			nullString(in.SourceID), nullString(in.Notes), now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for profession: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert profession %s: %w", in.ProfessionID, err)
	}
	return nil
}

// ListPersonProfessions returns all professions for a person, earliest
// start year first, undated entries last.
func (db *DB) ListPersonProfessions(ctx context.Context, personID string) ([]Profession, error) {
	query, args, err := db.sb.Select("profession_id", "person_id", "title",
		"start_year", "end_year", "location", "source_id", "notes", "created_at").
		From("professions").
		Where(sq.Eq{"person_id": personID}).
		OrderBy("start_year ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profession list: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list professions for %s: %w", personID, err)
	}
	defer rows.Close()

	professions := []Profession{}
	for rows.Next() {
		var p Profession
		var location, sourceID, notes sql.NullString
		var startYear, endYear sql.NullInt64
		err := rows.Scan(&p.ProfessionID, &p.PersonID, &p.Title, &startYear,
			&endYear, &location, &sourceID, &notes, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profession row: %w", err)
		}
		p.StartYear = intPtr(startYear)
		p.EndYear = intPtr(endYear)
		p.Location = strPtr(location)
		p.SourceID = strPtr(sourceID)
		p.Notes = strPtr(notes)
		professions = append(professions, p)
	}
	return professions, rows.Err()
}
