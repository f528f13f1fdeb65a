package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryDecision covers review status changes (verify, reject, clear).
	CategoryDecision EventCategory = "decision"

	// CategoryEdit covers changes to any other record field.
	CategoryEdit EventCategory = "edit"

	// CategoryDataset covers whole-dataset events such as reloads.
	CategoryDataset EventCategory = "dataset"
)

// Event is emitted by the review service to capture reviewer actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Category  EventCategory
	Timestamp time.Time
	Action    string
	Document  string
	RecordID  string
	Field     string
	Value     string
	Previous  string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// Client is a human-readable description of the reviewer's browser.
	Client string
}

type AuditEvent string

const (
	EventRecordVerified  AuditEvent = "record_verified"
	EventRecordRejected  AuditEvent = "record_rejected"
	EventReviewCleared   AuditEvent = "review_cleared"
	EventReviewMarked    AuditEvent = "review_marked"
	EventFieldEdited     AuditEvent = "field_edited"
	EventDatasetReloaded AuditEvent = "dataset_reloaded"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	ListByDocument(ctx context.Context, document string) ([]Event, error)
}
