package nli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/nli-prover/internal/model"
)

// systemPrompt is shared by the chat-model backends
const systemPrompt = "You are a natural language inference classifier. You answer only with a JSON object."

// BuildPrompt asks a chat model to behave like a 3-class NLI classifier
func BuildPrompt(premise, hypothesis string) string {
	return fmt.Sprintf(`Classify the relation between the premise and the hypothesis.

Premise: %q
Hypothesis: %q

Return a JSON object with exactly these keys and probabilities between 0 and 1
that sum to 1:
{"entailment": <p>, "neutral": <p>, "contradiction": <p>}

"entailment" means the premise logically implies the hypothesis.
"contradiction" means the premise and the hypothesis cannot both be true.
"neutral" means neither.`, premise, hypothesis)
}

// parseProbabilities extracts the first JSON object from a chat response and
// returns normalized canonical probabilities
func parseProbabilities(text string, labelMap map[string]string) (map[string]float64, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in response: %q", truncate(text, 80))
	}

	var raw map[string]float64
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse probabilities: %w", err)
	}

	scores := normalizeLabels(raw, labelMap)
	if _, ok := scores[model.LabelEntailment]; !ok {
		return nil, fmt.Errorf("response has no %s probability", model.LabelEntailment)
	}

	return renormalize(scores)
}
