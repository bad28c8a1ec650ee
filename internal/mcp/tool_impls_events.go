package mcp

import (
	"context"
	"fmt"

	"github.com/peterdewit/mcp-genealogy-memory/internal/envelope"
	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// toolAddEvent adds a life event for a person
func (s *Server) toolAddEvent(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}
	eventType := stringParam(params, "event_type")
	if eventType == "" {
		return envelope.Err(envelope.CodeMissingEventType), nil
	}

	eid := identity.NewID()
	in := storage.EventInput{
		EventID:     eid,
		PersonID:    personID,
		EventType:   eventType,
		DateLiteral: stringParam(params, "date_literal"),
		Year:        intParam(params, "year", 0),
		Month:       intParam(params, "month", 0),
		Day:         intParam(params, "day", 0),
		Place:       stringParam(params, "place"),
		Country:     stringParam(params, "country"),
		SourceID:    stringParam(params, "source_id"),
		Notes:       stringParam(params, "notes"),
	}
	if err := s.store.InsertEvent(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_event: %w", err)
	}

	return envelope.OK(map[string]interface{}{"event_id": eid}), nil
}

// toolListPersonEvents lists all events for a person
func (s *Server) toolListPersonEvents(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	events, err := s.store.ListPersonEvents(context.Background(), personID)
	if err != nil {
		return nil, fmt.Errorf("list_person_events: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":  len(events),
		"events": events,
	}), nil
}

// toolAddProfession adds a profession/job for a person
func (s *Server) toolAddProfession(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}
	title := stringParam(params, "title")
	if title == "" {
		return envelope.Err(envelope.CodeMissingTitle), nil
	}

	profID := identity.NewID()
	in := storage.ProfessionInput{
		ProfessionID: profID,
		PersonID:     personID,
		Title:        title,
		StartYear:    intParam(params, "start_year", 0),
		EndYear:      intParam(params, "end_year", 0),
		Location:     stringParam(params, "location"),
		SourceID:     stringParam(params, "source_id"),
		Notes:        stringParam(params, "notes"),
	}
	if err := s.store.InsertProfession(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_profession: %w", err)
	}

	return envelope.OK(map[string]interface{}{"profession_id": profID}), nil
}

// toolListPersonProfessions lists all professions for a person
func (s *Server) toolListPersonProfessions(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	professions, err := s.store.ListPersonProfessions(context.Background(), personID)
	if err != nil {
		return nil, fmt.Errorf("list_person_professions: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":       len(professions),
		"professions": professions,
	}), nil
}

// toolAddAddress adds a residential address for a person
func (s *Server) toolAddAddress(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	addrID := identity.NewID()
	in := storage.AddressInput{
		AddressID:   addrID,
		PersonID:    personID,
		Street:      stringParam(params, "street"),
		HouseNumber: stringParam(params, "house_number"),
		City:        stringParam(params, "city"),
		Province:    stringParam(params, "province"),
		Country:     stringParam(params, "country"),
		StartYear:   intParam(params, "start_year", 0),
		EndYear:     intParam(params, "end_year", 0),
		SourceID:    stringParam(params, "source_id"),
		Notes:       stringParam(params, "notes"),
	}
	if err := s.store.InsertAddress(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_address: %w", err)
	}

	return envelope.OK(map[string]interface{}{"address_id": addrID}), nil
}

// toolListPersonAddresses lists all addresses for a person
func (s *Server) toolListPersonAddresses(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	addresses, err := s.store.ListPersonAddresses(context.Background(), personID)
	if err != nil {
		return nil, fmt.Errorf("list_person_addresses: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":     len(addresses),
		"addresses": addresses,
	}), nil
}
