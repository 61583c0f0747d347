package model

import "sort"

// Canonical NLI labels
const (
	LabelEntailment    = "entailment"
	LabelNeutral       = "neutral"
	LabelContradiction = "contradiction"
)

// Labels lists the canonical labels in display order
var Labels = []string{LabelEntailment, LabelNeutral, LabelContradiction}

// ScoreSet is the outcome of one (premise, hypothesis) inference call.
// Either Scores is populated or Err carries the failure message.
type ScoreSet struct {
	Scores map[string]float64 `json:"scores,omitempty"`
	Err    string             `json:"error,omitempty"`
}

// ErrorScores builds an error-tagged score set
func ErrorScores(msg string) ScoreSet {
	return ScoreSet{Err: msg}
}

// Failed reports whether the inference call errored
func (s ScoreSet) Failed() bool {
	return s.Err != ""
}

// Get returns the probability for label, 0.0 when absent
func (s ScoreSet) Get(label string) float64 {
	return s.Scores[label]
}

func (s ScoreSet) Entailment() float64    { return s.Get(LabelEntailment) }
func (s ScoreSet) Neutral() float64       { return s.Get(LabelNeutral) }
func (s ScoreSet) Contradiction() float64 { return s.Get(LabelContradiction) }

// Label returns the most probable label, or "" for an empty or failed set
func (s ScoreSet) Label() string {
	best, bestScore := "", -1.0
	for _, label := range s.sortedLabels() {
		if v := s.Scores[label]; v > bestScore {
			best, bestScore = label, v
		}
	}
	return best
}

// sortedLabels keeps Label deterministic when probabilities tie
func (s ScoreSet) sortedLabels() []string {
	labels := make([]string, 0, len(s.Scores))
	for label := range s.Scores {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ContradictionRecord is the per-axiom result of a contradiction check
type ContradictionRecord struct {
	Axiom         string   `json:"axiom"`
	Target        string   `json:"target"`
	Contradiction *float64 `json:"contradiction_probability"` // nil when scoring errored
	Scores        ScoreSet `json:"raw_scores"`
}
