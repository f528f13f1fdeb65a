package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"benchreview/internal/platform/middleware"
	"benchreview/internal/review/models"
	dErrors "benchreview/pkg/domain-errors"
	"benchreview/pkg/platform/httputil"
)

// Service defines the review operations the HTTP layer exposes.
type Service interface {
	Session(ctx context.Context) models.SessionView
	Next(ctx context.Context) models.SessionView
	Prev(ctx context.Context) models.SessionView
	Goto(ctx context.Context, i int) models.SessionView
	Documents(ctx context.Context) []models.DocumentSummary
	DocumentAt(ctx context.Context, i int) (models.DocumentView, error)
	Apply(ctx context.Context, pdf string, id json.RawMessage, field string, value json.RawMessage) (models.EditOutcome, error)
	Verify(ctx context.Context, pdf string, id json.RawMessage) (models.EditOutcome, error)
	Reject(ctx context.Context, pdf string, id json.RawMessage) (models.EditOutcome, error)
	AuditTrail(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Handler serves the review API and the document files.
type Handler struct {
	logger *slog.Logger
	review Service
	pdfDir string
}

// New creates a review Handler. pdfDir is the directory documents are
// served from.
func New(review Service, pdfDir string, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		review: review,
		pdfDir: pdfDir,
	}
}

// Register registers the review routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		api.Get("/session", h.handleSession)
		api.Get("/documents", h.handleListDocuments)
		api.Get("/documents/{index}", h.handleGetDocument)
		api.Post("/next", h.handleNext)
		api.Post("/prev", h.handlePrev)
		api.Post("/goto/{index}", h.handleGoto)
		api.Post("/records", h.handleUpdateRecord)
		api.Post("/records/verify", h.handleVerify)
		api.Post("/records/reject", h.handleReject)
		api.Get("/audit", h.handleAudit)
	})
	r.Get("/pdf/*", h.handleServePDF)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.review.Session(r.Context()))
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.review.Next(r.Context()))
}

func (h *Handler) handlePrev(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.review.Prev(r.Context()))
}

// handleGoto moves the cursor to a document by position. Out-of-range
// positions are not an error; the view simply stays where it was.
func (h *Handler) handleGoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.review.Goto(ctx, index))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.review.Documents(r.Context()))
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}
	doc, err := h.review.DocumentAt(ctx, index)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpdateRecordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.review.Apply(ctx, req.PDF, req.ID, req.Field, req.Value)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update record", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.UpdateRecordResponse{Status: "success", Matched: outcome.Matched})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, h.review.Verify)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, h.review.Reject)
}

type decisionFunc func(ctx context.Context, pdf string, id json.RawMessage) (models.EditOutcome, error)

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, decide decisionFunc) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.DecisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := decide(ctx, req.PDF, req.ID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to record review decision", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.UpdateRecordResponse{Status: "success", Matched: outcome.Matched})
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.logger.WarnContext(ctx, "invalid audit limit",
				"request_id", middleware.GetRequestID(ctx),
				"limit", raw,
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.review.AuditTrail(ctx, limit)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list audit events", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	ctx := r.Context()
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid document index",
			"request_id", middleware.GetRequestID(ctx),
			"index", raw,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "index must be an integer"))
		return 0, false
	}
	return index, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := middleware.GetRequestID(ctx)
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
