package session

import (
	"errors"
	"time"

	"github.com/minbar-translate/backend/internal/translate"
)

// State is the presentation state of one session.
type State string

const (
	StateIdle        State = "idle"
	StateTranslating State = "translating"
	StateSuccess     State = "success"
	StateFailed      State = "failed"
)

var (
	// ErrNotFound means the session ID does not resolve to a live session.
	ErrNotFound = errors.New("session not found")
	// ErrBusy means the requested action is already in flight for this session.
	ErrBusy = errors.New("session is busy")
	// ErrNoResults means export was requested without a successful translation.
	ErrNoResults = errors.New("no translation results to export")
)

// Session holds the per-browser-session presentation state: the state
// machine of the last translate action, its result sequence, and the
// transient exporting overlay. The pair sequence is replaced wholesale on
// every successful translation, never mutated in place.
type Session struct {
	ID        string                  `json:"id"`
	State     State                   `json:"state"`
	Pairs     []translate.SegmentPair `json:"pairs,omitempty"`
	Error     string                  `json:"error,omitempty"`
	Exporting bool                    `json:"exporting"`

	lastSeen time.Time
}

// Snapshot is a copy of a session handed out to callers. Mutating it does
// not affect the stored session.
type Snapshot struct {
	ID        string                  `json:"id"`
	State     State                   `json:"state"`
	Pairs     []translate.SegmentPair `json:"pairs"`
	Error     string                  `json:"error,omitempty"`
	Exporting bool                    `json:"exporting"`
}

func (s *Session) snapshot() Snapshot {
	pairs := make([]translate.SegmentPair, len(s.Pairs))
	copy(pairs, s.Pairs)
	return Snapshot{
		ID:        s.ID,
		State:     s.State,
		Pairs:     pairs,
		Error:     s.Error,
		Exporting: s.Exporting,
	}
}
