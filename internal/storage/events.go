package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Event is a life event row (birth, marriage, death, census, residence, ...).
type Event struct {
	EventID     string  `json:"event_id"`
	PersonID    string  `json:"person_id"`
	EventType   string  `json:"event_type"`
	DateLiteral *string `json:"date_literal"`
	Year        *int    `json:"year"`
	Month       *int    `json:"month"`
	Day         *int    `json:"day"`
	Place       *string `json:"place"`
	Country     *string `json:"country"`
	SourceID    *string `json:"source_id"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// EventInput carries the add_event fields.
type EventInput struct {
	EventID     string
	PersonID    string
	EventType   string
	DateLiteral string
	Year        int
	Month       int
	Day         int
	Place       string
	Country     string
	SourceID    string
	Notes       string
}

// InsertEvent creates an event row.
func (db *DB) InsertEvent(ctx context.Context, in EventInput) error {
	query, args, err := db.sb.Insert("events").
		Columns("event_id", "person_id", "event_type", "date_literal",
			"year", "month", "day", "place", "country", "source_id",
			"notes", "created_at").
		Values(in.EventID, in.PersonID, in.EventType, nullString(in.DateLiteral),
			nullInt(in.Year), nullInt(in.Month), nullInt(in.Day),
			nullString(in.Place), nullString(in.Country),
			nullString(in.SourceID), nullString(in.Notes), now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for event: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert event %s: %w", in.EventID, err)
	}
	return nil
}

// ListPersonEvents returns all events for a person, ordered chronologically
// with undated events last.
func (db *DB) ListPersonEvents(ctx context.Context, personID string) ([]Event, error) {
	query, args, err := db.sb.Select("event_id", "person_id", "event_type",
		"date_literal", "year", "month", "day", "place", "country",
		"source_id", "notes", "created_at").
		From("events").
		Where(sq.Eq{"person_id": personID}).
		OrderBy("year ASC NULLS LAST", "month ASC NULLS LAST", "day ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event list: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", personID, err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		var dateLiteral, place, country, sourceID, notes sql.NullString
		var year, month, day sql.NullInt64
		err := rows.Scan(&e.EventID, &e.PersonID, &e.EventType, &dateLiteral,
			&year, &month, &day, &place, &country, &sourceID, &notes,
			&e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		e.DateLiteral = strPtr(dateLiteral)
		e.Year = intPtr(year)
		e.Month = intPtr(month)
		e.Day = intPtr(day)
		e.Place = strPtr(place)
		e.Country = strPtr(country)
		e.SourceID = strPtr(sourceID)
		e.Notes = strPtr(notes)
		events = append(events, e)
	}
	return events, rows.Err()
}
