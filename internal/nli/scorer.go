package nli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/nli-prover/internal/model"
)

// Scorer is the inference capability the proof engine depends on.
// Score never fails; errors come back as an error-tagged ScoreSet.
type Scorer interface {
	Name() string
	Score(ctx context.Context, premise, hypothesis string) model.ScoreSet
	IsAvailable(ctx context.Context) bool
}

// SafeScorer adapts a Backend to the Scorer contract: inputs are truncated
// to the model limit, errors and panics become error-tagged score sets
type SafeScorer struct {
	backend       Backend
	maxInputChars int
	logger        *slog.Logger
}

// NewSafeScorer wraps backend. maxInputChars <= 0 disables truncation.
func NewSafeScorer(backend Backend, maxInputChars int, logger *slog.Logger) *SafeScorer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SafeScorer{
		backend:       backend,
		maxInputChars: maxInputChars,
		logger:        logger,
	}
}

// Name returns the backend name
func (s *SafeScorer) Name() string {
	return s.backend.Name()
}

// IsAvailable delegates to the backend
func (s *SafeScorer) IsAvailable(ctx context.Context) bool {
	return s.backend.IsAvailable(ctx)
}

// Score runs one synchronous inference call without retries
func (s *SafeScorer) Score(ctx context.Context, premise, hypothesis string) (result model.ScoreSet) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("nli backend panicked", "provider", s.backend.Name(), "panic", r, "stack", string(debug.Stack()))
			result = model.ErrorScores(fmt.Sprintf("NLI prediction failed: %v", r))
		}
	}()

	premise = truncate(premise, s.maxInputChars)
	hypothesis = truncate(hypothesis, s.maxInputChars)

	start := time.Now()
	scores, err := s.backend.Classify(ctx, premise, hypothesis)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Warn("nli prediction failed", "provider", s.backend.Name(), "elapsed", elapsed, "error", err)
		return model.ErrorScores("NLI prediction failed: " + err.Error())
	}

	set := model.ScoreSet{Scores: scores}
	s.logger.Debug("nli prediction",
		"provider", s.backend.Name(),
		"elapsed", elapsed,
		"label", set.Label(),
		"entailment", set.Entailment())

	return set
}

// truncate cuts s to at most limit runes
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
