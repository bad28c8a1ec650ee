package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peterdewit/mcp-genealogy-memory/internal/envelope"
	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// toolAddPerson creates a new person record
func (s *Server) toolAddPerson(params map[string]interface{}) (*envelope.Response, error) {
	givenName := stringParam(params, "given_name")
	surname := stringParam(params, "surname")
	if givenName == "" && surname == "" {
		return envelope.ErrDetails(envelope.CodeMissingName, map[string]interface{}{
			"message": "At least given_name or surname is required",
		}), nil
	}

	pid := identity.NewID()
	in := storage.PersonInput{
		PersonID:           pid,
		GivenName:          givenName,
		Prefix:             stringParam(params, "prefix"),
		Surname:            surname,
		Gender:             stringParam(params, "gender"),
		BirthYearEstimate:  intParam(params, "birth_year_estimate", 0),
		DeathYearEstimate:  intParam(params, "death_year_estimate", 0),
		Notes:              stringParam(params, "notes"),
		FullNameNormalized: stringParam(params, "full_name_normalized"),
		ConfidenceScore:    floatParam(params, "confidence_score", 1.0),
	}
	if err := s.store.InsertPerson(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_person: %w", err)
	}

	return envelope.OK(map[string]interface{}{"person_id": pid}), nil
}

// toolGetPerson retrieves a person by ID
func (s *Server) toolGetPerson(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")

	person, err := s.store.GetPerson(context.Background(), personID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return envelope.ErrDetails(envelope.CodeNotFound, map[string]interface{}{
				"person_id": personID,
			}), nil
		}
		return nil, fmt.Errorf("get_person: %w", err)
	}

	return envelope.OK(person), nil
}

// toolFindPersonsSimple searches persons by partial name
func (s *Server) toolFindPersonsSimple(params map[string]interface{}) (*envelope.Response, error) {
	nameQuery := stringParam(params, "name_query")
	if strings.TrimSpace(nameQuery) == "" {
		return envelope.ErrDetails(envelope.CodeMissingQuery, map[string]interface{}{
			"message": "name_query is required",
		}), nil
	}
	limit := intParam(params, "limit", 10)

	persons, err := s.store.FindPersons(context.Background(), nameQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("find_persons_simple: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":   len(persons),
		"persons": persons,
	}), nil
}

// toolSetPersonVerified sets the verified flag on a person
func (s *Server) toolSetPersonVerified(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}
	verified := boolParam(params, "verified", true)

	if err := s.store.SetPersonVerified(context.Background(), personID, verified); err != nil {
		return nil, fmt.Errorf("set_person_verified: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"person_id": personID,
		"verified":  verified,
	}), nil
}

// toolSetPersonStatus updates research_status and research_notes
func (s *Server) toolSetPersonStatus(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}
	status := stringParam(params, "status")
	if status == "" {
		return envelope.Err(envelope.CodeMissingStatus), nil
	}

	notes := stringParam(params, "notes")
	if err := s.store.SetPersonStatus(context.Background(), personID, status, notes); err != nil {
		return nil, fmt.Errorf("set_person_status: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"person_id": personID,
		"status":    status,
	}), nil
}

// toolSetPossibleDuplicateOf links a person to a likely duplicate record
func (s *Server) toolSetPossibleDuplicateOf(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	duplicateOf := stringParam(params, "duplicate_of")
	if personID == "" || duplicateOf == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	extraNote := ""
	if notes := stringParam(params, "notes"); notes != "" {
		extraNote = "\n[Possible duplicate noted] " + notes
	}

	if err := s.store.SetPossibleDuplicateOf(context.Background(), personID, duplicateOf, extraNote); err != nil {
		return nil, fmt.Errorf("set_possible_duplicate_of: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"person_id":    personID,
		"duplicate_of": duplicateOf,
	}), nil
}
