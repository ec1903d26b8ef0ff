package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minbar-translate/backend/internal/translate"
)

// Store keeps sessions in memory. Nothing survives a restart: the data
// model has no lifecycle beyond the current browser session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a session store that evicts sessions idle for longer
// than ttl.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	// Sweep stale sessions every minute
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s.sweep()
		}
	}()

	return s
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// Create registers a new idle session and returns it.
func (s *Store) Create() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:       uuid.New().String(),
		State:    StateIdle,
		lastSeen: time.Now(),
	}
	s.sessions[sess.ID] = sess
	log.Printf("[session] created %s", sess.ID)
	return sess.snapshot()
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	sess.lastSeen = time.Now()
	return sess.snapshot(), nil
}

// BeginTranslate moves the session into the translating state. Prior
// results and error are cleared on entry. A session that is already
// translating rejects the duplicate request.
func (s *Store) BeginTranslate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if sess.State == StateTranslating {
		return ErrBusy
	}

	sess.State = StateTranslating
	sess.Pairs = nil
	sess.Error = ""
	sess.lastSeen = time.Now()
	return nil
}

// CompleteTranslate stores a new result sequence wholesale and moves the
// session to success.
func (s *Store) CompleteTranslate(id string, pairs []translate.SegmentPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}

	stored := make([]translate.SegmentPair, len(pairs))
	copy(stored, pairs)

	sess.State = StateSuccess
	sess.Pairs = stored
	sess.Error = ""
	sess.lastSeen = time.Now()
	return nil
}

// FailTranslate records a human-readable failure message. The client keeps
// its input; the server keeps nothing of the previous results.
func (s *Store) FailTranslate(id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}

	sess.State = StateFailed
	sess.Pairs = nil
	sess.Error = message
	sess.lastSeen = time.Now()
	return nil
}

// BeginExport marks the session as exporting and returns a copy of its
// pair sequence. Export is only valid from a successful translation with
// at least one pair, and only one export may be in flight at a time.
func (s *Store) BeginExport(id string) ([]translate.SegmentPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.State != StateSuccess || len(sess.Pairs) == 0 {
		return nil, ErrNoResults
	}
	if sess.Exporting {
		return nil, ErrBusy
	}

	sess.Exporting = true
	sess.lastSeen = time.Now()

	pairs := make([]translate.SegmentPair, len(sess.Pairs))
	copy(pairs, sess.Pairs)
	return pairs, nil
}

// EndExport clears the exporting overlay, whether the export succeeded
// or failed.
func (s *Store) EndExport(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.Exporting = false
		sess.lastSeen = time.Now()
	}
}
