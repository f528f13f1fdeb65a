package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"

	"benchreview/internal/platform/metrics"
	"benchreview/internal/review/models"
	"benchreview/internal/review/session"
	"benchreview/internal/review/store"
	dErrors "benchreview/pkg/domain-errors"
	audit "benchreview/pkg/platform/audit"
	"benchreview/pkg/requestcontext"
)

var tracer = otel.Tracer("benchreview.review")

// Load triggers, used as metric labels and log fields.
const (
	TriggerStartup = "startup"
	TriggerWatch   = "watch"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// DatasetStore loads and persists the whole record dataset.
type DatasetStore interface {
	Load(ctx context.Context) (*store.Index, store.LoadStats, error)
	Persist(ctx context.Context, content []byte) error
}

// AuditPublisher records reviewer actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Service owns the in-memory dataset and the reviewer's cursor.
//
// A single mutex guards the index, the session and persistence. Every edit
// rewrites the whole record file before the call returns, so the file always
// reflects every acknowledged edit. Views handed to callers are deep copies.
type Service struct {
	mu         sync.Mutex
	store      DatasetStore
	index      *store.Index
	session    *session.Session
	lastDigest [32]byte

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// New returns a service over an empty dataset. Call Load before serving.
func New(ds DatasetStore, opts ...Option) *Service {
	idx := store.NewIndex()
	s := &Service{
		store:   ds,
		index:   idx,
		session: session.New(idx),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Load reads the dataset and positions the session on the first document
// with unreviewed records.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.reload(ctx, TriggerStartup, true)
	return err
}

// ReloadIfChanged re-reads the dataset after an external change. Content
// identical to what the service last read or wrote is ignored. On a load
// error the current dataset stays in place.
func (s *Service) ReloadIfChanged(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx, TriggerWatch, false)
}

func (s *Service) reload(ctx context.Context, trigger string, force bool) (bool, error) {
	ctx, span := tracer.Start(ctx, "review.Reload")
	defer span.End()

	idx, stats, err := s.store.Load(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementLoadFailure(trigger)
		}
		span.RecordError(err)
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dataset")
	}
	if !force && stats.Digest == s.lastDigest {
		s.logger.DebugContext(ctx, "dataset unchanged, skipping reload", "trigger", trigger)
		return false, nil
	}

	s.index = idx
	s.lastDigest = stats.Digest
	if force {
		s.session = session.New(idx)
	} else {
		s.session.Rebind(idx)
	}

	if s.metrics != nil {
		s.metrics.ObserveLoad(trigger, idx.Len(), idx.RecordCount(), stats.Malformed, stats.Dropped)
	}
	s.logger.InfoContext(ctx, "dataset loaded",
		"trigger", trigger,
		"documents", idx.Len(),
		"records", idx.RecordCount(),
		"malformed", stats.Malformed,
		"dropped", stats.Dropped,
	)
	if trigger != TriggerStartup {
		s.emit(ctx, audit.Event{
			Category:  audit.CategoryDataset,
			Action:    string(audit.EventDatasetReloaded),
			Value:     fmt.Sprintf("%d documents, %d records", idx.Len(), idx.RecordCount()),
			Timestamp: requestcontext.Now(ctx),
		})
	}
	return true, nil
}

// Session returns the current view without moving the cursor.
func (s *Service) Session(_ context.Context) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Next advances the cursor and returns the new view.
func (s *Service) Next(_ context.Context) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Advance()
	s.countNavigation("next")
	return s.view()
}

// Prev moves the cursor back and returns the new view.
func (s *Service) Prev(_ context.Context) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Retreat()
	s.countNavigation("prev")
	return s.view()
}

// Goto selects the document at position i. Out-of-range positions leave the
// cursor where it is.
func (s *Service) Goto(_ context.Context, i int) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Goto(i)
	s.countNavigation("goto")
	return s.view()
}

// Documents lists every document with its review progress.
func (s *Service) Documents(_ context.Context) []models.DocumentSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Summaries()
}

// DocumentAt returns the records of the document at position i.
func (s *Service) DocumentAt(_ context.Context, i int) (models.DocumentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.index.DocumentAt(i)
	if !ok {
		return models.DocumentView{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("no document at index %d", i))
	}
	return models.DocumentView{Position: i, Document: doc, Records: s.index.Snapshot(doc)}, nil
}

// HasDocument reports whether doc is part of the loaded dataset.
func (s *Service) HasDocument(doc string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Has(doc)
}

// AuditTrail returns the most recent audit events, newest first.
func (s *Service) AuditTrail(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if s.auditor == nil {
		return []models.AuditEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)
	events, err := s.auditor.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	out := make([]models.AuditEntry, 0, len(events))
	for _, e := range events {
		out = append(out, models.AuditEntry{
			ID:        e.ID.String(),
			Action:    e.Action,
			Document:  e.Document,
			RecordID:  e.RecordID,
			Field:     e.Field,
			Value:     e.Value,
			Previous:  e.Previous,
			Client:    e.Client,
			RequestID: e.RequestID,
			Timestamp: e.Timestamp,
		})
	}
	return out, nil
}

func (s *Service) view() models.SessionView {
	v := models.SessionView{
		Position: -1,
		Total:    s.index.Len(),
		Records:  []*models.Record{},
	}
	doc, ok := s.session.Current()
	if !ok {
		v.Done = true
		return v
	}
	v.Document = doc
	v.Position = s.index.Position(doc)
	v.Records = s.index.Snapshot(doc)
	return v
}

func (s *Service) countNavigation(action string) {
	if s.metrics != nil {
		s.metrics.IncrementNavigation(action)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err.Error(),
		)
	}
}

func rawString(raw json.RawMessage) string {
	return string(raw)
}
