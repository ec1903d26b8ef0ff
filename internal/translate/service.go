package translate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnknownEngine is returned when a request names an engine that was
// never registered. Callers treat it as a request error, not an upstream one.
var ErrUnknownEngine = errors.New("unknown translation engine")

// Service manages translation engines and dispatches translation requests.
// Each engine call goes through its own circuit breaker so a flapping
// upstream fails fast instead of holding every request for the full timeout.
type Service struct {
	engines       map[string]Translator
	breakers      map[string]*gobreaker.CircuitBreaker
	defaultEngine string
}

// NewService creates a translation service with the engines whose
// credentials are configured.
func NewService(openAIKey, openAIModel, geminiKey, geminiModel, defaultEngine string) *Service {
	s := &Service{
		engines:       make(map[string]Translator),
		breakers:      make(map[string]*gobreaker.CircuitBreaker),
		defaultEngine: defaultEngine,
	}

	if openAIKey != "" {
		s.Register(NewOpenAITranslator(openAIKey, openAIModel))
		log.Printf("[translate] registered OpenAI engine")
	}

	if geminiKey != "" {
		s.Register(NewGeminiTranslator(geminiKey, geminiModel))
		log.Printf("[translate] registered Gemini engine")
	}

	if _, ok := s.engines[s.defaultEngine]; !ok {
		log.Printf("[translate] default engine %q is not registered", s.defaultEngine)
	}

	return s
}

// Register adds an engine and wires its circuit breaker.
func (s *Service) Register(engine Translator) {
	name := engine.Name()
	s.engines[name] = engine
	s.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[translate] %s breaker: %s -> %s", name, from, to)
		},
	})
}

// HasEngine reports whether an engine name resolves to a registered engine.
// The empty name resolves to the default engine.
func (s *Service) HasEngine(name string) bool {
	if name == "" {
		name = s.defaultEngine
	}
	_, ok := s.engines[name]
	return ok
}

// Engines returns the registered engine names, sorted.
func (s *Service) Engines() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the default engine name.
func (s *Service) Default() string {
	return s.defaultEngine
}

// Translate runs one translation round trip against the named engine
// (or the default when name is empty). There is no retry: a failure is
// reported back for the user to act on.
func (s *Service) Translate(ctx context.Context, sourceText, engineName string) ([]SegmentPair, error) {
	name := engineName
	if name == "" {
		name = s.defaultEngine
	}

	engine, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}

	result, err := s.breakers[name].Execute(func() (interface{}, error) {
		return engine.Translate(ctx, sourceText)
	})
	if err != nil {
		return nil, fmt.Errorf("translate with %s: %w", name, err)
	}

	return result.([]SegmentPair), nil
}
