package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"benchreview/internal/platform/middleware"
	dErrors "benchreview/pkg/domain-errors"
	"benchreview/pkg/platform/httputil"
)

// handleServePDF streams a document file byte for byte. Names are resolved
// inside the document directory only; anything that would escape it is
// rejected before the filesystem is touched.
func (h *Handler) handleServePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" || strings.ContainsAny(name, "\\\x00") || !filepath.IsLocal(name) {
		h.logger.WarnContext(ctx, "rejected document path",
			"request_id", requestID,
			"path", name,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid document path"))
		return
	}

	root, err := os.OpenRoot(h.pdfDir)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open document directory",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "document directory unavailable"))
		return
	}
	defer root.Close()

	f, err := root.Open(filepath.FromSlash(name))
	if err != nil {
		h.writeFileError(w, r, name, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.writeFileError(w, r, name, err)
		return
	}
	if info.IsDir() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "document not found"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *Handler) writeFileError(w http.ResponseWriter, r *http.Request, name string, err error) {
	ctx := r.Context()
	if errors.Is(err, fs.ErrNotExist) {
		h.logger.DebugContext(ctx, "document not found",
			"request_id", middleware.GetRequestID(ctx),
			"path", name,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "document not found"))
		return
	}
	h.logger.ErrorContext(ctx, "failed to open document",
		"request_id", middleware.GetRequestID(ctx),
		"path", name,
		"error", err.Error(),
	)
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open document"))
}
