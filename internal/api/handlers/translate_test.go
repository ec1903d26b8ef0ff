package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/minbar-translate/backend/internal/api/middleware"
	"github.com/minbar-translate/backend/internal/auth"
	"github.com/minbar-translate/backend/internal/session"
	"github.com/minbar-translate/backend/internal/translate"
)

// fakeService is a scripted TranslationService.
type fakeService struct {
	pairs []translate.SegmentPair
	err   error
}

func (f *fakeService) Translate(ctx context.Context, sourceText, engineName string) ([]translate.SegmentPair, error) {
	return f.pairs, f.err
}

func (f *fakeService) HasEngine(name string) bool { return name == "" || name == "fake" }
func (f *fakeService) Engines() []string          { return []string{"fake"} }
func (f *fakeService) Default() string            { return "fake" }

var testPairs = []translate.SegmentPair{
	{Arabic: "أ", English: "a title"},
	{Arabic: "ب", English: "row one"},
}

// authedRequest builds a request carrying session claims, as the auth
// middleware would.
func authedRequest(method, path, body, sessionID string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	claims := &auth.Claims{SessionID: sessionID}
	ctx := context.WithValue(r.Context(), middleware.SessionClaimsKey, claims)
	return r.WithContext(ctx)
}

func newSessionStore() (*session.Store, string) {
	store := session.NewStore(time.Hour)
	return store, store.Create().ID
}

func TestTranslate_Success(t *testing.T) {
	store, id := newSessionStore()
	h := NewTranslateHandler(&fakeService{pairs: testPairs}, store)

	w := httptest.NewRecorder()
	h.Translate(w, authedRequest("POST", "/api/translate", `{"text":"نص عربي"}`, id))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Pairs []translate.SegmentPair `json:"pairs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	if len(resp.Pairs) != 2 {
		t.Errorf("Expected 2 pairs, got %d", len(resp.Pairs))
	}

	snap, _ := store.Get(id)
	if snap.State != session.StateSuccess {
		t.Errorf("Expected session in success state, got %s", snap.State)
	}
}

func TestTranslate_EmptyInput(t *testing.T) {
	store, id := newSessionStore()
	h := NewTranslateHandler(&fakeService{pairs: testPairs}, store)

	for _, body := range []string{`{"text":""}`, `{"text":"   \n\t "}`} {
		w := httptest.NewRecorder()
		h.Translate(w, authedRequest("POST", "/api/translate", body, id))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", body, w.Code)
		}
	}

	// Guard fires before any state transition
	snap, _ := store.Get(id)
	if snap.State != session.StateIdle {
		t.Errorf("Expected session untouched, got %s", snap.State)
	}
}

func TestTranslate_UnknownEngine(t *testing.T) {
	store, id := newSessionStore()
	h := NewTranslateHandler(&fakeService{pairs: testPairs}, store)

	w := httptest.NewRecorder()
	h.Translate(w, authedRequest("POST", "/api/translate", `{"text":"نص","engine":"nope"}`, id))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestTranslate_UpstreamFailure(t *testing.T) {
	store, id := newSessionStore()
	h := NewTranslateHandler(&fakeService{err: fmt.Errorf("schema mismatch")}, store)

	w := httptest.NewRecorder()
	h.Translate(w, authedRequest("POST", "/api/translate", `{"text":"نص"}`, id))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", w.Code)
	}
	// Generic message only; the cause stays in the log
	if strings.Contains(w.Body.String(), "schema mismatch") {
		t.Error("Upstream cause leaked to the client")
	}

	snap, _ := store.Get(id)
	if snap.State != session.StateFailed {
		t.Errorf("Expected failed state, got %s", snap.State)
	}
	if snap.Error == "" {
		t.Error("Expected a human-readable failure message")
	}
}

func TestTranslate_BusySession(t *testing.T) {
	store, id := newSessionStore()
	h := NewTranslateHandler(&fakeService{pairs: testPairs}, store)

	if err := store.BeginTranslate(id); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.Translate(w, authedRequest("POST", "/api/translate", `{"text":"نص"}`, id))
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", w.Code)
	}
}

func TestTranslate_NoClaims(t *testing.T) {
	store, _ := newSessionStore()
	h := NewTranslateHandler(&fakeService{pairs: testPairs}, store)

	w := httptest.NewRecorder()
	h.Translate(w, httptest.NewRequest("POST", "/api/translate", strings.NewReader(`{"text":"نص"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestResult(t *testing.T) {
	store, id := newSessionStore()
	h := NewTranslateHandler(&fakeService{pairs: testPairs}, store)

	store.BeginTranslate(id)
	store.CompleteTranslate(id, testPairs)

	w := httptest.NewRecorder()
	h.Result(w, authedRequest("GET", "/api/result", "", id))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var snap session.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Decode snapshot: %v", err)
	}
	if snap.State != session.StateSuccess || len(snap.Pairs) != 2 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
}
