package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"benchreview/internal/review/models"
	"benchreview/internal/review/store"
	dErrors "benchreview/pkg/domain-errors"
	audit "benchreview/pkg/platform/audit"
	"benchreview/pkg/requestcontext"
)

// Edit outcomes, used as metric labels.
const (
	outcomeApplied   = "applied"
	outcomeUnmatched = "unmatched"
	outcomeInvalid   = "invalid"
	outcomeFailed    = "failed"
)

var (
	valueVerified = json.RawMessage(`"verified"`)
	valueRejected = json.RawMessage(`"rejected"`)
	valueNull     = json.RawMessage(`null`)
)

// Apply sets one field of the record addressed by (pdf, id) and rewrites the
// dataset.
//
// The field and value are validated first; a rejected edit changes nothing
// and writes nothing. An address that matches no record is not an error: the
// outcome reports Matched false and the dataset is still rewritten. When the
// rewrite fails the in-memory field is restored, so memory and file agree.
func (s *Service) Apply(ctx context.Context, pdf string, id json.RawMessage, field string, value json.RawMessage) (models.EditOutcome, error) {
	field = strings.TrimSpace(field)
	ctx, span := tracer.Start(ctx, "review.Apply", trace.WithAttributes(
		attribute.String("pdf", pdf),
		attribute.String("field", field),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.index.Find(pdf, id)
	if err := s.validate(rec, found, field, value); err != nil {
		s.countEdit("other", outcomeInvalid)
		span.RecordError(err)
		return models.EditOutcome{}, err
	}

	if !found {
		if err := s.persist(ctx); err != nil {
			s.countEdit(field, outcomeFailed)
			return models.EditOutcome{}, err
		}
		s.countEdit(field, outcomeUnmatched)
		s.logger.InfoContext(ctx, "edit matched no record",
			"pdf", pdf,
			"id", rawString(id),
			"field", field,
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.EditOutcome{Matched: false}, nil
	}

	previous, existed := rec.Get(field)
	previous = append(json.RawMessage(nil), previous...)
	if err := rec.Set(field, value); err != nil {
		s.countEdit(field, outcomeInvalid)
		return models.EditOutcome{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid value")
	}
	if err := s.persist(ctx); err != nil {
		rec.Restore(field, previous, existed)
		s.countEdit(field, outcomeFailed)
		return models.EditOutcome{}, err
	}

	current, _ := rec.Get(field)
	s.countEdit(field, outcomeApplied)
	if field == models.FieldChecked && s.metrics != nil {
		s.metrics.IncrementDecision(rec.Checked().String())
	}
	s.logger.InfoContext(ctx, "record updated",
		"pdf", pdf,
		"id", rawString(id),
		"field", field,
		"value", rawString(current),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, audit.Event{
		Category:  categoryFor(field),
		Action:    string(actionFor(field, rec.Checked())),
		Document:  pdf,
		RecordID:  rawString(rec.ID()),
		Field:     field,
		Value:     rawString(current),
		Previous:  rawString(previous),
		RequestID: requestcontext.RequestID(ctx),
		Client:    audit.DescribeClient(requestcontext.UserAgent(ctx)),
		Timestamp: requestcontext.Now(ctx),
	})
	return models.EditOutcome{Matched: true}, nil
}

// Verify marks the record as verified.
func (s *Service) Verify(ctx context.Context, pdf string, id json.RawMessage) (models.EditOutcome, error) {
	return s.Apply(ctx, pdf, id, models.FieldChecked, valueVerified)
}

// Reject marks the record as rejected.
func (s *Service) Reject(ctx context.Context, pdf string, id json.RawMessage) (models.EditOutcome, error) {
	return s.Apply(ctx, pdf, id, models.FieldChecked, valueRejected)
}

// ClearReview returns the record to the unreviewed state.
func (s *Service) ClearReview(ctx context.Context, pdf string, id json.RawMessage) (models.EditOutcome, error) {
	return s.Apply(ctx, pdf, id, models.FieldChecked, valueNull)
}

func (s *Service) validate(rec *models.Record, found bool, field string, value json.RawMessage) error {
	if found {
		return models.ValidateEdit(rec, field, value)
	}
	if models.IsLinkageField(field) {
		return dErrors.New(dErrors.CodeValidation, "field \""+field+"\" is not editable")
	}
	if !models.IsKnownField(field) {
		return dErrors.New(dErrors.CodeValidation, "unknown field \""+field+"\"")
	}
	return nil
}

func (s *Service) persist(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "review.persist")
	defer span.End()

	start := time.Now()
	content, err := s.index.Marshal()
	if err == nil {
		err = s.store.Persist(ctx, content)
	}
	if s.metrics != nil {
		s.metrics.ObservePersist(start, err)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "failed to persist dataset",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dataset")
	}
	s.lastDigest = store.Digest(content)
	span.SetAttributes(attribute.Int("bytes", len(content)))
	return nil
}

func (s *Service) countEdit(field, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementEdit(field, outcome)
	}
}

func categoryFor(field string) audit.EventCategory {
	if field == models.FieldChecked {
		return audit.CategoryDecision
	}
	return audit.CategoryEdit
}

func actionFor(field string, status models.CheckStatus) audit.AuditEvent {
	if field != models.FieldChecked {
		return audit.EventFieldEdited
	}
	switch status {
	case models.StatusVerified:
		return audit.EventRecordVerified
	case models.StatusRejected:
		return audit.EventRecordRejected
	case models.StatusUnreviewed:
		return audit.EventReviewCleared
	default:
		return audit.EventReviewMarked
	}
}
