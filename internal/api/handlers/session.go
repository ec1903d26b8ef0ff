package handlers

import (
	"net/http"

	"github.com/minbar-translate/backend/internal/auth"
	"github.com/minbar-translate/backend/internal/session"
)

type SessionHandler struct {
	store *session.Store
	jwt   *auth.JWTService
}

func NewSessionHandler(store *session.Store, jwt *auth.JWTService) *SessionHandler {
	return &SessionHandler{store: store, jwt: jwt}
}

type sessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// Create opens a new anonymous session and returns its bearer token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Create()

	token, err := h.jwt.GenerateToken(sess.ID)
	if err != nil {
		jsonError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, sessionResponse{Token: token, SessionID: sess.ID}, http.StatusOK)
}
