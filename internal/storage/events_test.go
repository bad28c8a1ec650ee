package storage

import (
	"context"
	"testing"

	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
)

func TestListPersonEventsOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	personID := identity.NewID()
	// Inserted out of order, including an undated event.
	years := []int{1900, 0, 1850}
	for _, year := range years {
		err := db.InsertEvent(ctx, EventInput{
			EventID:   identity.NewID(),
			PersonID:  personID,
			EventType: "residence",
			Year:      year,
		})
		if err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}
	}

	events, err := db.ListPersonEvents(ctx, personID)
	if err != nil {
		t.Fatalf("ListPersonEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// Dated events ascending, the undated one last.
	if events[0].Year == nil || *events[0].Year != 1850 {
		t.Errorf("expected first event year 1850, got %v", events[0].Year)
	}
	if events[1].Year == nil || *events[1].Year != 1900 {
		t.Errorf("expected second event year 1900, got %v", events[1].Year)
	}
	if events[2].Year != nil {
		t.Errorf("expected undated event last, got year %v", *events[2].Year)
	}
}

func TestListPersonEventsEmpty(t *testing.T) {
	db := openTestDB(t)

	events, err := db.ListPersonEvents(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListPersonEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestEventRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	personID := identity.NewID()
	eventID := identity.NewID()
	err := db.InsertEvent(ctx, EventInput{
		EventID:     eventID,
		PersonID:    personID,
		EventType:   "birth",
		DateLiteral: "12 maart 1850",
		Year:        1850,
		Month:       3,
		Day:         12,
		Place:       "Amsterdam",
		Country:     "Netherlands",
	})
	if err != nil {
		t.Fatalf("InsertEvent failed: %v", err)
	}

	events, err := db.ListPersonEvents(ctx, personID)
	if err != nil {
		t.Fatalf("ListPersonEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.EventID != eventID || e.EventType != "birth" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Place == nil || *e.Place != "Amsterdam" {
		t.Errorf("unexpected place: %v", e.Place)
	}
	if e.Month == nil || *e.Month != 3 || e.Day == nil || *e.Day != 12 {
		t.Errorf("unexpected month/day: %v/%v", e.Month, e.Day)
	}
	if e.SourceID != nil {
		t.Errorf("empty source_id should be null, got %v", *e.SourceID)
	}
}

func TestProfessionsAndAddressesOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	personID := identity.NewID()
	for _, startYear := range []int{1910, 0, 1890} {
		err := db.InsertProfession(ctx, ProfessionInput{
			ProfessionID: identity.NewID(),
			PersonID:     personID,
			Title:        "smid",
			StartYear:    startYear,
		})
		if err != nil {
			t.Fatalf("InsertProfession failed: %v", err)
		}
		err = db.InsertAddress(ctx, AddressInput{
			AddressID: identity.NewID(),
			PersonID:  personID,
			City:      "Utrecht",
			StartYear: startYear,
		})
		if err != nil {
			t.Fatalf("InsertAddress failed: %v", err)
		}
	}

	professions, err := db.ListPersonProfessions(ctx, personID)
	if err != nil {
		t.Fatalf("ListPersonProfessions failed: %v", err)
	}
	if len(professions) != 3 {
		t.Fatalf("expected 3 professions, got %d", len(professions))
	}
	if professions[0].StartYear == nil || *professions[0].StartYear != 1890 {
		t.Errorf("expected earliest profession first, got %v", professions[0].StartYear)
	}
	if professions[2].StartYear != nil {
		t.Errorf("expected undated profession last, got %v", *professions[2].StartYear)
	}

	addresses, err := db.ListPersonAddresses(ctx, personID)
	if err != nil {
		t.Fatalf("ListPersonAddresses failed: %v", err)
	}
	if len(addresses) != 3 {
		t.Fatalf("expected 3 addresses, got %d", len(addresses))
	}
	if addresses[0].StartYear == nil || *addresses[0].StartYear != 1890 {
		t.Errorf("expected earliest address first, got %v", addresses[0].StartYear)
	}
	if addresses[2].StartYear != nil {
		t.Errorf("expected undated address last, got %v", *addresses[2].StartYear)
	}
}

func TestCommentsOrderedByCreation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	personID := identity.NewID()
	texts := []string{"first observation", "second observation", "third observation"}
	for _, text := range texts {
		err := db.InsertComment(ctx, CommentInput{
			CommentID: identity.NewID(),
			PersonID:  personID,
			Author:    "researcher",
			Text:      text,
		})
		if err != nil {
			t.Fatalf("InsertComment failed: %v", err)
		}
	}

	comments, err := db.ListPersonComments(ctx, personID)
	if err != nil {
		t.Fatalf("ListPersonComments failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	for i, text := range texts {
		if comments[i].Text != text {
			t.Errorf("comment %d out of order: got %q, want %q", i, comments[i].Text, text)
		}
	}
}
