package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Address is a residence row; a person can have several over time.
type Address struct {
	AddressID   string  `json:"address_id"`
	PersonID    string  `json:"person_id"`
	Street      *string `json:"street"`
	HouseNumber *string `json:"house_number"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	Country     *string `json:"country"`
	StartYear   *int    `json:"start_year"`
	EndYear     *int    `json:"end_year"`
	SourceID    *string `json:"source_id"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// AddressInput carries the add_address fields.
type AddressInput struct {
	AddressID   string
	PersonID    string
	Street      string
	HouseNumber string
	City        string
	Province    string
	Country     string
	StartYear   int
	EndYear     int
	SourceID    string
	Notes       string
}

// InsertAddress creates an address row.
func (db *DB) InsertAddress(ctx context.Context, in AddressInput) error {
	query, args, err := db.sb.Insert("addresses").
		Columns("address_id", "person_id", "street", "house_number", "city",
			"province", "country", "start_year", "end_year", "source_id",
			"notes", "created_at").
		Values(in.AddressID, in.PersonID, nullString(in.Street),
			nullString(in.HouseNumber), nullString(in.City),
			nullString(in.Province), nullString(in.Country),
			nullInt(in.StartYear), nullInt(in.EndYear),
			nullString(in.SourceID), nullString(in.Notes), now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for address: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert address %s: %w", in.AddressID, err)
	}
	return nil
}

// ListPersonAddresses returns all addresses for a person, earliest start
// year first, undated entries last.
func (db *DB) ListPersonAddresses(ctx context.Context, personID string) ([]Address, error) {
	query, args, err := db.sb.Select("address_id", "person_id", "street",
		"house_number", "city", "province", "country", "start_year",
		"end_year", "source_id", "notes", "created_at").
		From("addresses").
		Where(sq.Eq{"person_id": personID}).
		OrderBy("start_year ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build address list: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses for %s: %w", personID, err)
	}
	defer rows.Close()

	addresses := []Address{}
	for rows.Next() {
		var a Address
		var street, houseNumber, city, province, country sql.NullString
		var sourceID, notes sql.NullString
		var startYear, endYear sql.NullInt64
		err := rows.Scan(&a.AddressID, &a.PersonID, &street, &houseNumber,
			&city, &province, &country, &startYear, &endYear, &sourceID,
			&notes, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address row: %w", err)
		}
		a.Street = strPtr(street)
		a.HouseNumber = strPtr(houseNumber)
		a.City = strPtr(city)
		a.Province = strPtr(province)
		a.Country = strPtr(country)
		a.StartYear = intPtr(startYear)
		a.EndYear = intPtr(endYear)
		a.SourceID = strPtr(sourceID)
		a.Notes = strPtr(notes)
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
