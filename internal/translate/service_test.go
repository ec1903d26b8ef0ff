package translate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sony/gobreaker"
)

// fakeEngine is a scripted Translator for service tests.
type fakeEngine struct {
	name  string
	pairs []SegmentPair
	err   error
	calls int
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Translate(ctx context.Context, sourceText string) ([]SegmentPair, error) {
	f.calls++
	return f.pairs, f.err
}

func newTestService(engine Translator) *Service {
	s := &Service{
		engines:       make(map[string]Translator),
		breakers:      make(map[string]*gobreaker.CircuitBreaker),
		defaultEngine: "fake",
	}
	if engine != nil {
		s.Register(engine)
	}
	return s
}

func TestServiceTranslate(t *testing.T) {
	engine := &fakeEngine{
		name:  "fake",
		pairs: []SegmentPair{{Arabic: "أ", English: "a"}},
	}
	s := newTestService(engine)

	pairs, err := s.Translate(context.Background(), "نص", "")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(pairs) != 1 || pairs[0].English != "a" {
		t.Errorf("Unexpected pairs: %+v", pairs)
	}
	if engine.calls != 1 {
		t.Errorf("Expected exactly one engine call, got %d", engine.calls)
	}
}

func TestServiceTranslate_UnknownEngine(t *testing.T) {
	s := newTestService(&fakeEngine{name: "fake"})

	_, err := s.Translate(context.Background(), "نص", "nope")
	if !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Expected ErrUnknownEngine, got %v", err)
	}
}

func TestServiceHasEngine(t *testing.T) {
	s := newTestService(&fakeEngine{name: "fake"})

	if !s.HasEngine("fake") {
		t.Error("Expected HasEngine(\"fake\") to be true")
	}
	if !s.HasEngine("") {
		t.Error("Expected empty name to resolve to the default engine")
	}
	if s.HasEngine("nope") {
		t.Error("Expected HasEngine(\"nope\") to be false")
	}
}

func TestServiceTranslate_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	engine := &fakeEngine{name: "fake", err: fmt.Errorf("upstream down")}
	s := newTestService(engine)

	for i := 0; i < 3; i++ {
		if _, err := s.Translate(context.Background(), "نص", "fake"); err == nil {
			t.Fatal("Expected failure")
		}
	}
	callsBefore := engine.calls

	// Breaker is open now: the engine must not be invoked again
	if _, err := s.Translate(context.Background(), "نص", "fake"); err == nil {
		t.Fatal("Expected fast failure with open breaker")
	}
	if engine.calls != callsBefore {
		t.Errorf("Engine was called with an open breaker (%d -> %d)", callsBefore, engine.calls)
	}
}
