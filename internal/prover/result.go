package prover

// Mode identifies how a proof was attempted or found
type Mode string

const (
	ModeCombined Mode = "combined" // joint premise from a using clause
	ModeDirect   Mode = "direct"   // axiom entails target
	ModeLemma    Mode = "lemma"    // axiom entails lemma entails target
)

// Step is one entailment edge in a proof chain
type Step struct {
	From       string  `json:"from"`
	FromRef    string  `json:"from_ref"` // "A1", "L2 ('name')" or "premise"
	To         string  `json:"to"`
	ToRef      string  `json:"to_ref"`
	Entailment float64 `json:"entailment"`
}

// NoteKind classifies non-fatal events recorded during a search
type NoteKind string

const (
	NoteInferenceError NoteKind = "inference_error"
	NoteWeakLemma      NoteKind = "weak_lemma" // supported by an axiom, but does not entail the target
	NoteNoLemmas       NoteKind = "no_lemmas"
)

// Note is a non-fatal event worth showing to the user
type Note struct {
	Kind    NoteKind `json:"kind"`
	Phase   Mode     `json:"phase"`
	Ref     string   `json:"ref,omitempty"`
	Message string   `json:"message,omitempty"`
	Support *Step    `json:"support,omitempty"` // axiom->lemma edge for weak lemmas
	Score   float64  `json:"score,omitempty"`
}

// Result is the full outcome of one prove command
type Result struct {
	Target string `json:"target"`
	Mode   Mode   `json:"mode"`
	Proven bool   `json:"proven"`

	// Combined mode only
	Premise    string  `json:"premise,omitempty"`
	Entailment float64 `json:"entailment,omitempty"`

	Steps []Step `json:"steps,omitempty"`
	Notes []Note `json:"notes,omitempty"`

	// Set when Proven: the axiom index of the target and whether it was new
	AxiomIndex int  `json:"axiom_index,omitempty"`
	AddedAxiom bool `json:"added_axiom,omitempty"`
}
