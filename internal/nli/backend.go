// Package nli adapts natural-language-inference endpoints to a single
// Scorer contract: given a premise and a hypothesis, return a label to
// probability mapping or an error-tagged result.
package nli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/nli-prover/internal/model"
)

// Backend is one concrete inference endpoint. Unlike Scorer it reports
// failures as errors; Safe turns them into error-tagged score sets.
type Backend interface {
	// Name returns the provider name
	Name() string

	// Classify returns raw label probabilities for the pair
	Classify(ctx context.Context, premise, hypothesis string) (map[string]float64, error)

	// IsAvailable checks if the backend is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NewBackend creates the backend selected by cfg.Provider
func NewBackend(cfg model.NLIConfig, httpCfg model.HTTPConfig) (Backend, error) {
	switch strings.ToLower(cfg.Provider) {
	case "huggingface", "hf":
		return NewHuggingFaceBackend(cfg, httpCfg)

	case "openai":
		return NewOpenAIBackend(cfg, httpCfg)

	case "ollama":
		return NewOllamaBackend(cfg, httpCfg)

	case "anthropic", "claude":
		return NewAnthropicBackend(cfg, httpCfg)

	case "":
		return nil, fmt.Errorf("%w: no NLI provider configured", ErrModelUnavailable)

	default:
		return nil, fmt.Errorf("%w: unknown NLI provider: %s (supported: huggingface, openai, ollama, anthropic)", ErrModelUnavailable, cfg.Provider)
	}
}

func timeoutOf(cfg model.NLIConfig, fallback time.Duration) time.Duration {
	if cfg.Timeout <= 0 {
		return fallback
	}
	return time.Duration(cfg.Timeout) * time.Second
}

// normalizeLabels maps backend-specific labels onto the canonical
// entailment/neutral/contradiction names. labelMap entries win over the
// built-in synonyms; unrecognized labels are kept lower-cased.
func normalizeLabels(raw map[string]float64, labelMap map[string]string) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for label, p := range raw {
		out[canonicalLabel(label, labelMap)] += p
	}
	return out
}

func canonicalLabel(label string, labelMap map[string]string) string {
	if mapped, ok := labelMap[label]; ok {
		label = mapped
	} else if mapped, ok := labelMap[strings.ToLower(label)]; ok {
		label = mapped
	}

	switch l := strings.ToLower(strings.TrimSpace(label)); l {
	case "entailment", "entail", "entails", "entailed":
		return model.LabelEntailment
	case "contradiction", "contradict", "contradicts", "contradicted":
		return model.LabelContradiction
	case "neutral":
		return model.LabelNeutral
	default:
		return l
	}
}

// renormalize scales probabilities so they sum to 1. Used for LLM backends
// whose self-reported numbers rarely add up exactly.
func renormalize(scores map[string]float64) (map[string]float64, error) {
	var sum float64
	for _, p := range scores {
		if p < 0 {
			return nil, fmt.Errorf("negative probability in response")
		}
		sum += p
	}
	if sum == 0 {
		return nil, fmt.Errorf("all probabilities are zero")
	}

	out := make(map[string]float64, len(scores))
	for label, p := range scores {
		out[label] = p / sum
	}
	return out, nil
}
