package translate

import "context"

// SegmentPair is one Arabic source segment and its English counterpart.
// In a translated sequence, index 0 is the title pair and the remaining
// pairs are body rows. Line breaks inside one segment stay embedded in
// the segment text rather than producing extra pairs.
type SegmentPair struct {
	Arabic  string `json:"arabic"`
	English string `json:"english"`
}

// Translator is the common interface for all translation engines
type Translator interface {
	// Translate segments Arabic source text into ordered Arabic/English pairs
	Translate(ctx context.Context, sourceText string) ([]SegmentPair, error)
	// Name returns the engine name
	Name() string
}
