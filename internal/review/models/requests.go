package models

import (
	"bytes"
	"encoding/json"
	"strings"

	dErrors "benchreview/pkg/domain-errors"
)

// UpdateRecordRequest edits a single field of the record addressed by (PDF, ID).
// ID and Value are raw JSON so numeric and string identifiers both round-trip.
type UpdateRecordRequest struct {
	PDF   string          `json:"pdf"`
	ID    json.RawMessage `json:"id"`
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func (r *UpdateRecordRequest) Normalize() {
	if r == nil {
		return
	}
	r.Field = strings.TrimSpace(r.Field)
	if len(bytes.TrimSpace(r.Value)) == 0 {
		r.Value = json.RawMessage("null")
	}
}

// Follows validation order: Size -> Required -> Syntax.
func (r *UpdateRecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Field) > 128 {
		return dErrors.New(dErrors.CodeValidation, "field must be 128 characters or less")
	}
	if r.PDF == "" {
		return dErrors.New(dErrors.CodeValidation, "pdf is required")
	}
	if isMissing(r.ID) {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if r.Field == "" {
		return dErrors.New(dErrors.CodeValidation, "field is required")
	}
	return nil
}

// DecisionRequest addresses a record for a verify or reject shortcut.
type DecisionRequest struct {
	PDF string          `json:"pdf"`
	ID  json.RawMessage `json:"id"`
}

func (r *DecisionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.PDF == "" {
		return dErrors.New(dErrors.CodeValidation, "pdf is required")
	}
	if isMissing(r.ID) {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	return nil
}

func isMissing(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || isNull(raw)
}
