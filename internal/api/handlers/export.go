package handlers

import (
	"bytes"
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/minbar-translate/backend/internal/api/middleware"
	"github.com/minbar-translate/backend/internal/export"
	"github.com/minbar-translate/backend/internal/session"
)

type ExportHandler struct {
	store *session.Store
}

func NewExportHandler(store *session.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

// Export packs the session's translation into a Word document and serves
// it as a download. The document is assembled into a buffer first so a
// packing failure never leaves a partial file on the wire.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	pairs, err := h.store.BeginExport(claims.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoResults):
			jsonError(w, "nothing to export", http.StatusBadRequest)
		case errors.Is(err, session.ErrBusy):
			jsonError(w, "an export is already running", http.StatusConflict)
		case errors.Is(err, session.ErrNotFound):
			jsonError(w, "session expired", http.StatusUnauthorized)
		default:
			jsonError(w, "session error", http.StatusInternalServerError)
		}
		return
	}
	defer h.store.EndExport(claims.SessionID)

	var buf bytes.Buffer
	filename, err := export.Export(pairs, &buf)
	if err != nil {
		log.Printf("[api] export failed for session %s: %v", claims.SessionID, err)
		jsonError(w, "document generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}
