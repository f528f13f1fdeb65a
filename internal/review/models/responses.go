package models

import (
	"time"
)

// SessionView is what the front end renders: the cursor and the records of
// the current document. Done is set once every record has been reviewed and
// the cursor holds no document.
type SessionView struct {
	Done     bool      `json:"done"`
	Document string    `json:"pdf,omitempty"`
	Position int       `json:"pdf_index"`
	Total    int       `json:"total_pdfs"`
	Records  []*Record `json:"tests"`
}

// DocumentSummary reports review progress for one document.
type DocumentSummary struct {
	Position   int    `json:"index"`
	Document   string `json:"pdf"`
	Total      int    `json:"total"`
	Verified   int    `json:"verified"`
	Rejected   int    `json:"rejected"`
	Unreviewed int    `json:"unreviewed"`
}

// DocumentView lists the records of one document by position.
type DocumentView struct {
	Position int       `json:"index"`
	Document string    `json:"pdf"`
	Records  []*Record `json:"tests"`
}

// EditOutcome reports whether an edit matched a record. Unmatched edits are
// not errors; the dataset is still persisted.
type EditOutcome struct {
	Matched bool `json:"matched"`
}

// UpdateRecordResponse is returned by the edit endpoints.
type UpdateRecordResponse struct {
	Status  string `json:"status"`
	Matched bool   `json:"matched"`
}

// AuditEntry is the JSON shape of one review audit event.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Document  string    `json:"pdf"`
	RecordID  string    `json:"record_id,omitempty"`
	Field     string    `json:"field,omitempty"`
	Value     string    `json:"value,omitempty"`
	Previous  string    `json:"previous,omitempty"`
	Client    string    `json:"client,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
