// Package envelope provides the uniform response wrapper shared by every
// tool. A call either succeeds with {"status":"ok","data":...} or fails with
// {"status":"error","error":<code>,"details":{...}}. Codes are stable,
// snake_case, machine-matchable tokens; the set is open but each code keeps
// its meaning once introduced.
package envelope

import "encoding/json"

// Code is a stable snake_case error token.
type Code string

// Validation error codes used across the tool surface.
const (
	CodeMissingName         Code = "missing_name"
	CodeMissingQuery        Code = "missing_query"
	CodeMissingPersonID     Code = "missing_person_id"
	CodeMissingPersonIDs    Code = "missing_person_ids"
	CodeMissingEventType    Code = "missing_event_type"
	CodeMissingTitle        Code = "missing_title"
	CodeMissingFileInfo     Code = "missing_file_info"
	CodeMissingText         Code = "missing_text"
	CodeMissingURL          Code = "missing_url"
	CodeMissingStatus       Code = "missing_status"
	CodeMissingDownloadURL  Code = "missing_download_url"
	CodeMissingRelationType Code = "missing_relation_type"
	CodeNotFound            Code = "not_found"
)

// Response is the uniform success/error envelope.
type Response struct {
	Status  string
	Data    interface{}
	Error   Code
	Details map[string]interface{}
}

// OK wraps a successful result.
func OK(data interface{}) *Response {
	return &Response{Status: "ok", Data: data}
}

// Err wraps a failure with an empty details object.
func Err(code Code) *Response {
	return ErrDetails(code, nil)
}

// ErrDetails wraps a failure with caller-supplied details.
func ErrDetails(code Code, details map[string]interface{}) *Response {
	return &Response{Status: "error", Error: code, Details: details}
}

// IsError reports whether the response carries an error code.
func (r *Response) IsError() bool {
	return r.Status == "error"
}

// MarshalJSON keeps the wire shape exact: success responses carry only
// status and data, error responses carry status, error and an always-present
// details object.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		details := r.Details
		if details == nil {
			details = map[string]interface{}{}
		}
		return json.Marshal(struct {
			Status  string                 `json:"status"`
			Error   Code                   `json:"error"`
			Details map[string]interface{} `json:"details"`
		}{r.Status, r.Error, details})
	}
	return json.Marshal(struct {
		Status string      `json:"status"`
		Data   interface{} `json:"data"`
	}{r.Status, r.Data})
}
