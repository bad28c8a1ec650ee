package mcp

import "github.com/peterdewit/mcp-genealogy-memory/internal/envelope"

// Tool represents a genealogy tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call and returns an envelope response.
type ToolHandler func(params map[string]interface{}) (*envelope.Response, error)

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// GetToolDefinitions returns all tool definitions
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "add_person",
			Description: "Create a new person. All fields optional except surname OR given_name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"given_name":           stringProp("Given (first) name"),
					"prefix":               stringProp("Name prefix such as 'van' or 'de'"),
					"surname":              stringProp("Family name"),
					"gender":               stringProp("Gender, free-form"),
					"birth_year_estimate":  intProp("Estimated birth year"),
					"death_year_estimate":  intProp("Estimated death year"),
					"notes":                stringProp("Free-text notes"),
					"full_name_normalized": stringProp("Normalized full name for matching"),
					"confidence_score": map[string]interface{}{
						"type":        "number",
						"default":     1.0,
						"description": "Confidence in this record (0..1)",
					},
				},
			},
		},
		{
			Name:        "get_person",
			Description: "Retrieve a person by ID, including basic details only.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "find_persons_simple",
			Description: "Simple case-insensitive search on surname, given name and normalized full name. Pass a partial or full name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name_query": stringProp("Partial or full name to search for"),
					"limit": map[string]interface{}{
						"type":        "integer",
						"default":     10,
						"description": "Maximum results (clamped to 1..100)",
					},
				},
				"required": []string{"name_query"},
			},
		},
		{
			Name:        "add_source",
			Description: "Add a source definition (archive/API/local document). raw_json should be a JSON string if provided. Optionally link to the crawl log via crawl_url.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source_type":      stringProp("Source type, e.g. archive, api, document"),
					"archive_code":     stringProp("Archive code"),
					"archive_name":     stringProp("Archive name"),
					"identifier":       stringProp("Identifier within the archive"),
					"url":              stringProp("Source URL"),
					"collection":       stringProp("Collection name"),
					"document_number":  stringProp("Document number"),
					"registry_number":  stringProp("Registry number"),
					"institution_name": stringProp("Institution name"),
					"raw_json":         stringProp("Raw payload as a JSON string"),
					"notes":            stringProp("Free-text notes"),
					"image_url":        stringProp("Image URL"),
					"crawl_url":        stringProp("URL of a logged crawl to link this source to"),
				},
			},
		},
		{
			Name:        "add_event",
			Description: "Add a life event for a person (birth, marriage, death, census, residence, etc.).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id":    stringProp("The person ID"),
					"event_type":   stringProp("Event type, e.g. birth, marriage, death"),
					"date_literal": stringProp("Date as written in the source"),
					"year":         intProp("Event year"),
					"month":        intProp("Event month"),
					"day":          intProp("Event day"),
					"place":        stringProp("Place name"),
					"country":      stringProp("Country"),
					"source_id":    stringProp("Source ID backing this event"),
					"notes":        stringProp("Free-text notes"),
				},
				"required": []string{"person_id", "event_type"},
			},
		},
		{
			Name:        "list_person_events",
			Description: "List all events for a person, ordered chronologically with undated events last.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "add_profession",
			Description: "Add a profession/job for a person.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id":  stringProp("The person ID"),
					"title":      stringProp("Job title"),
					"start_year": intProp("First year in this profession"),
					"end_year":   intProp("Last year in this profession"),
					"location":   stringProp("Where the profession was practiced"),
					"source_id":  stringProp("Source ID backing this record"),
					"notes":      stringProp("Free-text notes"),
				},
				"required": []string{"person_id", "title"},
			},
		},
		{
			Name:        "list_person_professions",
			Description: "List all professions/jobs for a person.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "add_address",
			Description: "Add a residential address for a person (can be multiple over time).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id":    stringProp("The person ID"),
					"street":       stringProp("Street name"),
					"house_number": stringProp("House number"),
					"city":         stringProp("City"),
					"province":     stringProp("Province or state"),
					"country":      stringProp("Country"),
					"start_year":   intProp("First year at this address"),
					"end_year":     intProp("Last year at this address"),
					"source_id":    stringProp("Source ID backing this record"),
					"notes":        stringProp("Free-text notes"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "list_person_addresses",
			Description: "List all addresses/residences for a person.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "add_attachment",
			Description: "Register an attachment (image/PDF/etc) by path. The file is managed externally; this record is metadata only.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source_id":   stringProp("Source ID this attachment belongs to"),
					"person_id":   stringProp("Person ID this attachment belongs to"),
					"file_name":   stringProp("File name"),
					"file_type":   stringProp("File type, e.g. image, pdf"),
					"file_path":   stringProp("Path where the file is stored"),
					"description": stringProp("Free-text description"),
				},
			},
		},
		{
			Name:        "add_comment",
			Description: "Add a free-text comment or note.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("Person ID the comment is about"),
					"source_id": stringProp("Source ID the comment is about"),
					"author":    stringProp("Comment author"),
					"text":      stringProp("Comment text"),
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "list_person_comments",
			Description: "List all comments for a person in creation order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "log_crawl",
			Description: "Record or update a crawl entry so the agent can avoid re-crawling the same URL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": stringProp("The crawled URL"),
					"http_status": map[string]interface{}{
						"type":        "integer",
						"default":     200,
						"description": "HTTP status returned by the crawl",
					},
					"content_hash": stringProp("Hash of the fetched content"),
					"notes":        stringProp("Free-text notes"),
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "get_unprocessed_crawls",
			Description: "Return crawl log rows that are not yet processed/analysed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "integer",
						"default":     20,
						"description": "Maximum results (clamped to 1..200)",
					},
				},
			},
		},
		{
			Name:        "mark_crawl_processed",
			Description: "Mark a given URL as processed in the crawl log.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": stringProp("The crawled URL"),
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "set_person_verified",
			Description: "Set the verified flag on a person.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
					"verified": map[string]interface{}{
						"type":        "boolean",
						"default":     true,
						"description": "Verified flag value",
					},
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "set_person_status",
			Description: "Update research status and optional research notes for a person.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
					"status":    stringProp("New research status"),
					"notes":     stringProp("Research notes to store alongside the status"),
				},
				"required": []string{"person_id", "status"},
			},
		},
		{
			Name:        "add_attachment_metadata",
			Description: "Register an attachment by URL only. The file is downloaded later by fetch_attachments_for_person.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id":    stringProp("Person ID this attachment belongs to"),
					"source_id":    stringProp("Source ID this attachment belongs to"),
					"download_url": stringProp("URL to download the file from"),
					"description":  stringProp("Free-text description"),
					"should_fetch": map[string]interface{}{
						"type":        "boolean",
						"default":     false,
						"description": "Whether the fetcher should download this file",
					},
				},
				"required": []string{"download_url"},
			},
		},
		{
			Name:        "fetch_attachments_for_person",
			Description: "Download all attachments for a person that are marked should_fetch but not fetched. Files are saved under the configured attachments directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "add_relationship",
			Description: "Create a relationship record between two persons. relation_type: parent | child | spouse | sibling | partner | unknown",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id_a":   stringProp("First person ID"),
					"person_id_b":   stringProp("Second person ID"),
					"relation_type": stringProp("Relationship type"),
					"confidence_score": map[string]interface{}{
						"type":        "number",
						"default":     1.0,
						"description": "Confidence in this relationship (0..1)",
					},
					"notes": stringProp("Free-text notes"),
				},
				"required": []string{"person_id_a", "person_id_b", "relation_type"},
			},
		},
		{
			Name:        "get_person_relationships",
			Description: "Return all relationships involving the given person (both as A and B).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id": stringProp("The person ID"),
				},
				"required": []string{"person_id"},
			},
		},
		{
			Name:        "set_possible_duplicate_of",
			Description: "Mark a person as a likely duplicate of another. This does not merge records; it just links them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"person_id":    stringProp("The person ID"),
					"duplicate_of": stringProp("Person ID this record likely duplicates"),
					"notes":        stringProp("Note appended to the person's research notes"),
				},
				"required": []string{"person_id", "duplicate_of"},
			},
		},
	}
}

// RegisterTools registers all tool handlers
func (s *Server) RegisterTools() {
	s.tools["add_person"] = s.toolAddPerson
	s.tools["get_person"] = s.toolGetPerson
	s.tools["find_persons_simple"] = s.toolFindPersonsSimple
	s.tools["add_source"] = s.toolAddSource
	s.tools["add_event"] = s.toolAddEvent
	s.tools["list_person_events"] = s.toolListPersonEvents
	s.tools["add_profession"] = s.toolAddProfession
	s.tools["list_person_professions"] = s.toolListPersonProfessions
	s.tools["add_address"] = s.toolAddAddress
	s.tools["list_person_addresses"] = s.toolListPersonAddresses
	s.tools["add_attachment"] = s.toolAddAttachment
	s.tools["add_comment"] = s.toolAddComment
	s.tools["list_person_comments"] = s.toolListPersonComments
	s.tools["log_crawl"] = s.toolLogCrawl
	s.tools["get_unprocessed_crawls"] = s.toolGetUnprocessedCrawls
	s.tools["mark_crawl_processed"] = s.toolMarkCrawlProcessed
	s.tools["set_person_verified"] = s.toolSetPersonVerified
	s.tools["set_person_status"] = s.toolSetPersonStatus
	s.tools["add_attachment_metadata"] = s.toolAddAttachmentMetadata
	s.tools["fetch_attachments_for_person"] = s.toolFetchAttachmentsForPerson
	s.tools["add_relationship"] = s.toolAddRelationship
	s.tools["get_person_relationships"] = s.toolGetPersonRelationships
	s.tools["set_possible_duplicate_of"] = s.toolSetPossibleDuplicateOf
}
