package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/minbar-translate/backend/internal/api/middleware"
	"github.com/minbar-translate/backend/internal/session"
	"github.com/minbar-translate/backend/internal/translate"
)

// TranslationService is the slice of translate.Service the handler needs.
type TranslationService interface {
	Translate(ctx context.Context, sourceText, engineName string) ([]translate.SegmentPair, error)
	HasEngine(name string) bool
	Engines() []string
	Default() string
}

type TranslateHandler struct {
	svc   TranslationService
	store *session.Store
}

func NewTranslateHandler(svc TranslationService, store *session.Store) *TranslateHandler {
	return &TranslateHandler{svc: svc, store: store}
}

type translateRequest struct {
	Text   string `json:"text"`
	Engine string `json:"engine"`
}

type translateResponse struct {
	Pairs []translate.SegmentPair `json:"pairs"`
}

// Translate runs one translation round trip for the caller's session.
// The session state machine guards duplicate requests; the result sequence
// replaces any previous one wholesale.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		jsonError(w, "source text is empty", http.StatusBadRequest)
		return
	}
	if !h.svc.HasEngine(req.Engine) {
		jsonError(w, "unknown translation engine", http.StatusBadRequest)
		return
	}

	if err := h.store.BeginTranslate(claims.SessionID); err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			jsonError(w, "a translation is already running", http.StatusConflict)
		case errors.Is(err, session.ErrNotFound):
			jsonError(w, "session expired", http.StatusUnauthorized)
		default:
			jsonError(w, "session error", http.StatusInternalServerError)
		}
		return
	}

	pairs, err := h.svc.Translate(r.Context(), text, req.Engine)
	if err != nil {
		log.Printf("[api] translation failed for session %s: %v", claims.SessionID, err)
		h.store.FailTranslate(claims.SessionID, "Translation failed. Please try again.")
		jsonError(w, "translation failed", http.StatusBadGateway)
		return
	}

	if err := h.store.CompleteTranslate(claims.SessionID, pairs); err != nil {
		jsonError(w, "session expired", http.StatusUnauthorized)
		return
	}

	jsonResponse(w, translateResponse{Pairs: pairs}, http.StatusOK)
}

// Result returns the session's current presentation snapshot so the page
// can re-render after a reload.
func (h *TranslateHandler) Result(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	snap, err := h.store.Get(claims.SessionID)
	if err != nil {
		jsonError(w, "session expired", http.StatusUnauthorized)
		return
	}

	jsonResponse(w, snap, http.StatusOK)
}

// Engines lists the registered engines and the default choice.
func (h *TranslateHandler) Engines(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"engines": h.svc.Engines(),
		"default": h.svc.Default(),
	}, http.StatusOK)
}
