package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Person is a full person row. Optional columns are pointers so absent
// values serialize as JSON null.
type Person struct {
	PersonID            string  `json:"person_id"`
	GivenName           *string `json:"given_name"`
	Prefix              *string `json:"prefix"`
	Surname             *string `json:"surname"`
	Gender              *string `json:"gender"`
	BirthYearEstimate   *int    `json:"birth_year_estimate"`
	DeathYearEstimate   *int    `json:"death_year_estimate"`
	Notes               *string `json:"notes"`
	FullNameNormalized  *string `json:"full_name_normalized"`
	ConfidenceScore     float64 `json:"confidence_score"`
	Verified            bool    `json:"verified"`
	ResearchStatus      *string `json:"research_status"`
	ResearchNotes       *string `json:"research_notes"`
	PossibleDuplicateOf *string `json:"possible_duplicate_of"`
	CreatedAt           string  `json:"created_at"`
}

// PersonInput carries the add_person fields. Empty strings and zeros are
// normalized to NULL on insert.
type PersonInput struct {
	PersonID           string
	GivenName          string
	Prefix             string
	Surname            string
	Gender             string
	BirthYearEstimate  int
	DeathYearEstimate  int
	Notes              string
	FullNameNormalized string
	ConfidenceScore    float64
}

var personColumns = []string{
	"person_id", "given_name", "prefix", "surname", "gender",
	"birth_year_estimate", "death_year_estimate", "notes",
	"full_name_normalized", "confidence_score", "verified",
	"research_status", "research_notes", "possible_duplicate_of", "created_at",
}

// InsertPerson creates a person row.
func (db *DB) InsertPerson(ctx context.Context, in PersonInput) error {
	query, args, err := db.sb.Insert("persons").
		Columns("person_id", "given_name", "prefix", "surname", "gender",
			"birth_year_estimate", "death_year_estimate", "notes",
			"full_name_normalized", "confidence_score", "created_at").
		Values(in.PersonID, nullString(in.GivenName), nullString(in.Prefix),
			nullString(in.Surname), nullString(in.Gender),
			nullInt(in.BirthYearEstimate), nullInt(in.DeathYearEstimate),
			nullString(in.Notes), nullString(in.FullNameNormalized),
			in.ConfidenceScore, now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for person: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert person %s: %w", in.PersonID, err)
	}
	return nil
}

// GetPerson retrieves a person by ID, or ErrNotFound.
func (db *DB) GetPerson(ctx context.Context, personID string) (*Person, error) {
	query, args, err := db.sb.Select(personColumns...).
		From("persons").
		Where(sq.Eq{"person_id": personID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select for person: %w", err)
	}

	row := db.conn.QueryRowContext(ctx, query, args...)
	p, err := scanPerson(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan person %s: %w", personID, err)
	}
	return p, nil
}

// FindPersons performs a case-insensitive substring search across surname,
// given name and normalized full name. The limit is clamped to [1, 100].
func (db *DB) FindPersons(ctx context.Context, nameQuery string, limit int) ([]Person, error) {
	like := "%" + nameQuery + "%"
	query, args, err := db.sb.Select(personColumns...).
		From("persons").
		Where(sq.Or{
			sq.Expr("LOWER(surname) LIKE LOWER(?)", like),
			sq.Expr("LOWER(given_name) LIKE LOWER(?)", like),
			sq.Expr("LOWER(full_name_normalized) LIKE LOWER(?)", like),
		}).
		OrderBy("surname ASC NULLS LAST", "given_name ASC NULLS LAST").
		Limit(uint64(clampLimit(limit, 100))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build person search: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search persons: %w", err)
	}
	defer rows.Close()

	persons := []Person{}
	for rows.Next() {
		p, err := scanPerson(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, *p)
	}
	return persons, rows.Err()
}

// SetPersonVerified updates the verified flag.
func (db *DB) SetPersonVerified(ctx context.Context, personID string, verified bool) error {
	query, args, err := db.sb.Update("persons").
		Set("verified", verified).
		Where(sq.Eq{"person_id": personID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build verified update: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set verified for %s: %w", personID, err)
	}
	return nil
}

// SetPersonStatus updates research_status and research_notes.
func (db *DB) SetPersonStatus(ctx context.Context, personID, status, notes string) error {
	query, args, err := db.sb.Update("persons").
		Set("research_status", status).
		Set("research_notes", nullString(notes)).
		Where(sq.Eq{"person_id": personID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set status for %s: %w", personID, err)
	}
	return nil
}

// SetPossibleDuplicateOf links a person to a likely duplicate and appends
// extraNote to the existing research notes rather than overwriting them.
func (db *DB) SetPossibleDuplicateOf(ctx context.Context, personID, duplicateOf, extraNote string) error {
	query, args, err := db.sb.Update("persons").
		Set("possible_duplicate_of", duplicateOf).
		Set("research_notes", sq.Expr("COALESCE(research_notes, '') || ?", extraNote)).
		Where(sq.Eq{"person_id": personID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build duplicate update: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set duplicate for %s: %w", personID, err)
	}
	return nil
}

func scanPerson(scan func(dest ...interface{}) error) (*Person, error) {
	var p Person
	var givenName, prefix, surname, gender sql.NullString
	var notes, fullName, status, resNotes, dupOf sql.NullString
	var birthYear, deathYear sql.NullInt64
	err := scan(&p.PersonID, &givenName, &prefix, &surname, &gender,
		&birthYear, &deathYear, &notes, &fullName, &p.ConfidenceScore,
		&p.Verified, &status, &resNotes, &dupOf, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.GivenName = strPtr(givenName)
	p.Prefix = strPtr(prefix)
	p.Surname = strPtr(surname)
	p.Gender = strPtr(gender)
	p.BirthYearEstimate = intPtr(birthYear)
	p.DeathYearEstimate = intPtr(deathYear)
	p.Notes = strPtr(notes)
	p.FullNameNormalized = strPtr(fullName)
	p.ResearchStatus = strPtr(status)
	p.ResearchNotes = strPtr(resNotes)
	p.PossibleDuplicateOf = strPtr(dupOf)
	return &p, nil
}
