package mcp

import (
	"context"
	"fmt"

	"github.com/peterdewit/mcp-genealogy-memory/internal/envelope"
	"github.com/peterdewit/mcp-genealogy-memory/internal/identity"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
)

// toolAddRelationship creates a relationship record between two persons
func (s *Server) toolAddRelationship(params map[string]interface{}) (*envelope.Response, error) {
	personIDA := stringParam(params, "person_id_a")
	personIDB := stringParam(params, "person_id_b")
	if personIDA == "" || personIDB == "" {
		return envelope.Err(envelope.CodeMissingPersonIDs), nil
	}
	relationType := stringParam(params, "relation_type")
	if relationType == "" {
		return envelope.Err(envelope.CodeMissingRelationType), nil
	}

	rid := identity.NewID()
	in := storage.RelationshipInput{
		RelationshipID:  rid,
		PersonIDA:       personIDA,
		PersonIDB:       personIDB,
		RelationType:    relationType,
		ConfidenceScore: floatParam(params, "confidence_score", 1.0),
		Notes:           stringParam(params, "notes"),
	}
	if err := s.store.InsertRelationship(context.Background(), in); err != nil {
		return nil, fmt.Errorf("add_relationship: %w", err)
	}

	return envelope.OK(map[string]interface{}{"relationship_id": rid}), nil
}

// toolGetPersonRelationships returns all relationships involving a person
func (s *Server) toolGetPersonRelationships(params map[string]interface{}) (*envelope.Response, error) {
	personID := stringParam(params, "person_id")
	if personID == "" {
		return envelope.Err(envelope.CodeMissingPersonID), nil
	}

	relationships, err := s.store.PersonRelationships(context.Background(), personID)
	if err != nil {
		return nil, fmt.Errorf("get_person_relationships: %w", err)
	}

	return envelope.OK(map[string]interface{}{
		"count":         len(relationships),
		"relationships": relationships,
	}), nil
}
