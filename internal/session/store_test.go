package session

import (
	"errors"
	"testing"
	"time"

	"github.com/minbar-translate/backend/internal/translate"
)

var testPairs = []translate.SegmentPair{
	{Arabic: "أ", English: "a title"},
	{Arabic: "ب", English: "row one"},
}

func newTestStore() *Store {
	return NewStore(time.Hour)
}

func TestCreateStartsIdle(t *testing.T) {
	store := newTestStore()

	snap := store.Create()
	if snap.State != StateIdle {
		t.Errorf("Expected new session to be idle, got %s", snap.State)
	}
	if snap.ID == "" {
		t.Error("Expected a session ID")
	}
}

func TestGet_UnknownSession(t *testing.T) {
	store := newTestStore()

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTranslateLifecycle(t *testing.T) {
	store := newTestStore()
	id := store.Create().ID

	if err := store.BeginTranslate(id); err != nil {
		t.Fatalf("BeginTranslate failed: %v", err)
	}

	snap, _ := store.Get(id)
	if snap.State != StateTranslating {
		t.Errorf("Expected translating, got %s", snap.State)
	}

	// A duplicate request while one is in flight is rejected
	if err := store.BeginTranslate(id); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for duplicate translate, got %v", err)
	}

	if err := store.CompleteTranslate(id, testPairs); err != nil {
		t.Fatalf("CompleteTranslate failed: %v", err)
	}

	snap, _ = store.Get(id)
	if snap.State != StateSuccess {
		t.Errorf("Expected success, got %s", snap.State)
	}
	if len(snap.Pairs) != 2 {
		t.Errorf("Expected 2 pairs, got %d", len(snap.Pairs))
	}
}

func TestFailTranslate(t *testing.T) {
	store := newTestStore()
	id := store.Create().ID

	store.BeginTranslate(id)
	store.CompleteTranslate(id, testPairs)

	// A new attempt clears the old result before failing
	store.BeginTranslate(id)
	if err := store.FailTranslate(id, "translation failed"); err != nil {
		t.Fatalf("FailTranslate failed: %v", err)
	}

	snap, _ := store.Get(id)
	if snap.State != StateFailed {
		t.Errorf("Expected failed, got %s", snap.State)
	}
	if snap.Error != "translation failed" {
		t.Errorf("Expected message retained, got %q", snap.Error)
	}
	if len(snap.Pairs) != 0 {
		t.Error("Expected previous pairs to be cleared")
	}
}

func TestRetranslateReplacesWholesale(t *testing.T) {
	store := newTestStore()
	id := store.Create().ID

	store.BeginTranslate(id)
	store.CompleteTranslate(id, testPairs)

	replacement := []translate.SegmentPair{{Arabic: "ج", English: "another title"}}
	store.BeginTranslate(id)
	store.CompleteTranslate(id, replacement)

	snap, _ := store.Get(id)
	if len(snap.Pairs) != 1 || snap.Pairs[0].English != "another title" {
		t.Errorf("Expected the new sequence to replace the old one, got %+v", snap.Pairs)
	}
}

func TestBeginExport_Guards(t *testing.T) {
	store := newTestStore()
	id := store.Create().ID

	// Idle session: nothing to export
	if _, err := store.BeginExport(id); !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults on idle session, got %v", err)
	}

	// Failed session: still nothing
	store.BeginTranslate(id)
	store.FailTranslate(id, "boom")
	if _, err := store.BeginExport(id); !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults on failed session, got %v", err)
	}

	store.BeginTranslate(id)
	store.CompleteTranslate(id, testPairs)

	pairs, err := store.BeginExport(id)
	if err != nil {
		t.Fatalf("BeginExport failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Errorf("Expected 2 pairs, got %d", len(pairs))
	}

	// Only one export at a time
	if _, err := store.BeginExport(id); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for concurrent export, got %v", err)
	}

	store.EndExport(id)
	if _, err := store.BeginExport(id); err != nil {
		t.Errorf("Expected export to be possible again, got %v", err)
	}
}

func TestBeginExport_CopiesPairs(t *testing.T) {
	store := newTestStore()
	id := store.Create().ID
	store.BeginTranslate(id)
	store.CompleteTranslate(id, testPairs)

	pairs, _ := store.BeginExport(id)
	pairs[0].English = "mutated"
	store.EndExport(id)

	snap, _ := store.Get(id)
	if snap.Pairs[0].English != "a title" {
		t.Error("Exported pairs must be a copy, not a view of session state")
	}
}
