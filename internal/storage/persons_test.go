package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
)

func TestPersonRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id := identity.NewID()
	err := db.InsertPerson(ctx, PersonInput{
		PersonID:          id,
		GivenName:         "Willem",
		Surname:           "de Vries",
		Gender:            "m",
		BirthYearEstimate: 1880,
		ConfidenceScore:   0.8,
	})
	if err != nil {
		t.Fatalf("InsertPerson failed: %v", err)
	}

	p, err := db.GetPerson(ctx, id)
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}

	if p.PersonID != id {
		t.Errorf("expected person_id %s, got %s", id, p.PersonID)
	}
	if p.GivenName == nil || *p.GivenName != "Willem" {
		t.Errorf("unexpected given_name: %v", p.GivenName)
	}
	if p.Surname == nil || *p.Surname != "de Vries" {
		t.Errorf("unexpected surname: %v", p.Surname)
	}
	if p.BirthYearEstimate == nil || *p.BirthYearEstimate != 1880 {
		t.Errorf("unexpected birth_year_estimate: %v", p.BirthYearEstimate)
	}
	if p.ConfidenceScore != 0.8 {
		t.Errorf("unexpected confidence_score: %v", p.ConfidenceScore)
	}
	if p.Verified {
		t.Error("new person should not be verified")
	}
	if p.CreatedAt == "" {
		t.Error("created_at should be set")
	}

	// Absent sentinels become real nulls.
	if p.Prefix != nil || p.Gender == nil || p.DeathYearEstimate != nil || p.Notes != nil {
		t.Errorf("sentinel normalization wrong: prefix=%v death=%v notes=%v",
			p.Prefix, p.DeathYearEstimate, p.Notes)
	}
}

func TestGetPersonNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetPerson(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindPersons(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	names := []struct{ given, surname string }{
		{"Willem", "de Vries"},
		{"Johanna", "de Vries"},
		{"Willem", "Bakker"},
		{"Pieter", "Jansen"},
	}
	for _, n := range names {
		err := db.InsertPerson(ctx, PersonInput{
			PersonID:        identity.NewID(),
			GivenName:       n.given,
			Surname:         n.surname,
			ConfidenceScore: 1.0,
		})
		if err != nil {
			t.Fatalf("InsertPerson failed: %v", err)
		}
	}

	// Case-insensitive substring match on surname.
	found, err := db.FindPersons(ctx, "VRIES", 10)
	if err != nil {
		t.Fatalf("FindPersons failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches for VRIES, got %d", len(found))
	}

	// Matches given names too.
	found, err = db.FindPersons(ctx, "willem", 10)
	if err != nil {
		t.Fatalf("FindPersons failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches for willem, got %d", len(found))
	}
	for _, p := range found {
		if p.GivenName == nil || !strings.EqualFold(*p.GivenName, "Willem") {
			t.Errorf("unexpected match: %+v", p)
		}
	}
}

func TestFindPersonsLimitClamp(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := db.InsertPerson(ctx, PersonInput{
			PersonID:        identity.NewID(),
			Surname:         "Mulder",
			ConfidenceScore: 1.0,
		})
		if err != nil {
			t.Fatalf("InsertPerson failed: %v", err)
		}
	}

	// Zero and negative limits behave as limit 1.
	for _, limit := range []int{0, -10} {
		found, err := db.FindPersons(ctx, "Mulder", limit)
		if err != nil {
			t.Fatalf("FindPersons failed: %v", err)
		}
		if len(found) != 1 {
			t.Errorf("limit %d: expected 1 result, got %d", limit, len(found))
		}
	}

	// Oversized limits behave as limit 100.
	found, err := db.FindPersons(ctx, "Mulder", 1000)
	if err != nil {
		t.Fatalf("FindPersons failed: %v", err)
	}
	if len(found) != 5 {
		t.Errorf("expected all 5 results under clamped limit, got %d", len(found))
	}
}

func TestSetPersonVerifiedAndStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id := identity.NewID()
	err := db.InsertPerson(ctx, PersonInput{
		PersonID: id, Surname: "Visser", ConfidenceScore: 1.0,
	})
	if err != nil {
		t.Fatalf("InsertPerson failed: %v", err)
	}

	if err := db.SetPersonVerified(ctx, id, true); err != nil {
		t.Fatalf("SetPersonVerified failed: %v", err)
	}
	if err := db.SetPersonStatus(ctx, id, "in_progress", "checking birth record"); err != nil {
		t.Fatalf("SetPersonStatus failed: %v", err)
	}

	p, err := db.GetPerson(ctx, id)
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if !p.Verified {
		t.Error("expected verified flag set")
	}
	if p.ResearchStatus == nil || *p.ResearchStatus != "in_progress" {
		t.Errorf("unexpected research_status: %v", p.ResearchStatus)
	}
	if p.ResearchNotes == nil || *p.ResearchNotes != "checking birth record" {
		t.Errorf("unexpected research_notes: %v", p.ResearchNotes)
	}
}

func TestSetPossibleDuplicateOfAppendsNotes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id := identity.NewID()
	dupID := identity.NewID()
	err := db.InsertPerson(ctx, PersonInput{
		PersonID: id, Surname: "Smit", ConfidenceScore: 1.0,
	})
	if err != nil {
		t.Fatalf("InsertPerson failed: %v", err)
	}
	if err := db.SetPersonStatus(ctx, id, "open", "existing notes"); err != nil {
		t.Fatalf("SetPersonStatus failed: %v", err)
	}

	note := "\n[Possible duplicate noted] same birth year"
	if err := db.SetPossibleDuplicateOf(ctx, id, dupID, note); err != nil {
		t.Fatalf("SetPossibleDuplicateOf failed: %v", err)
	}

	p, err := db.GetPerson(ctx, id)
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if p.PossibleDuplicateOf == nil || *p.PossibleDuplicateOf != dupID {
		t.Errorf("unexpected possible_duplicate_of: %v", p.PossibleDuplicateOf)
	}
	if p.ResearchNotes == nil {
		t.Fatal("research_notes should survive the duplicate update")
	}
	want := "existing notes" + note
	if *p.ResearchNotes != want {
		t.Errorf("notes should be appended, not overwritten: got %q, want %q",
			*p.ResearchNotes, want)
	}
}
