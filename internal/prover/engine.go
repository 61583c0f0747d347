// Package prover approximates logical proof over free-text statements by
// chaining NLI entailment judgements from axioms, optionally through one
// lemma, to a target.
package prover

import (
	"context"
	"strings"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/ppiankov/nli-prover/internal/nli"
	"github.com/ppiankov/nli-prover/internal/session"
)

// EntailmentThreshold is the probability at or above which a premise is
// taken to entail a hypothesis. It applies to every comparison.
const EntailmentThreshold = 0.7

// Engine runs contradiction checks and proof searches against a session
type Engine struct {
	session *session.Session
	scorer  nli.Scorer
}

// NewEngine creates a new engine
func NewEngine(s *session.Session, scorer nli.Scorer) *Engine {
	return &Engine{
		session: s,
		scorer:  scorer,
	}
}

// CheckContradiction scores target against every axiom
func (e *Engine) CheckContradiction(ctx context.Context, target string) ([]model.ContradictionRecord, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrEmptyTarget
	}

	axioms := e.session.Axioms()
	if len(axioms) == 0 {
		return nil, ErrNoAxioms
	}

	statements := make([]string, len(axioms))
	for i, ax := range axioms {
		statements[i] = ax.Statement
	}

	records := CheckContradiction(ctx, e.scorer, target, statements)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CheckContradiction returns one record per axiom, in order, with the
// probability that the axiom contradicts target. No aggregation is done.
func CheckContradiction(ctx context.Context, scorer nli.Scorer, target string, axioms []string) []model.ContradictionRecord {
	records := make([]model.ContradictionRecord, 0, len(axioms))

	for _, axiom := range axioms {
		if ctx.Err() != nil {
			break
		}
		set := scorer.Score(ctx, axiom, target)

		rec := model.ContradictionRecord{
			Axiom:  axiom,
			Target: target,
			Scores: set,
		}
		if !set.Failed() {
			p := set.Contradiction()
			rec.Contradiction = &p
		}

		records = append(records, rec)
	}

	return records
}

// Prove handles "<target> [using <clause>]". User-input errors are returned
// before any inference call; inference failures are recorded as notes.
// A proven target is added to the axioms.
func (e *Engine) Prove(ctx context.Context, input string) (*Result, error) {
	target, clause, hasUsing := SplitUsing(strings.TrimSpace(input))
	if target == "" {
		return nil, ErrEmptyTarget
	}

	var (
		res *Result
		err error
	)
	if hasUsing {
		res, err = e.proveCombined(ctx, target, clause)
	} else {
		res, err = e.proveUnrestricted(ctx, target)
	}
	if err != nil {
		return nil, err
	}

	if res.Proven {
		idx, added, err := e.session.AddAxiom(target)
		if err != nil {
			return nil, err
		}
		res.AxiomIndex = idx
		res.AddedAxiom = added
	}

	return res, nil
}

func (e *Engine) proveCombined(ctx context.Context, target, clause string) (*Result, error) {
	parts, err := ParseUsing(clause, e.session)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Target:  target,
		Mode:    ModeCombined,
		Premise: JoinPremise(parts),
	}

	set := e.scorer.Score(ctx, res.Premise, target)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if set.Failed() {
		res.Notes = append(res.Notes, Note{Kind: NoteInferenceError, Phase: ModeCombined, Ref: "premise", Message: set.Err})
		return res, nil
	}

	res.Entailment = set.Entailment()
	if res.Entailment >= EntailmentThreshold {
		res.Proven = true
		res.Steps = []Step{{
			From:       res.Premise,
			FromRef:    "premise",
			To:         target,
			ToRef:      "target",
			Entailment: res.Entailment,
		}}
	}

	return res, nil
}

func (e *Engine) proveUnrestricted(ctx context.Context, target string) (*Result, error) {
	axioms := e.session.Axioms()
	if len(axioms) == 0 {
		return nil, ErrNoAxioms
	}

	res := &Result{Target: target, Mode: ModeDirect}

	// Direct: first axiom that entails the target wins
	for _, ax := range axioms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := e.entails(ctx, res, ModeDirect, ax.Ref(), ax.Statement, target)
		if ok {
			res.Proven = true
			res.Steps = []Step{{
				From:       ax.Statement,
				FromRef:    ax.Ref(),
				To:         target,
				ToRef:      "target",
				Entailment: p,
			}}
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lemmas := e.session.Lemmas()
	if len(lemmas) == 0 {
		res.Notes = append(res.Notes, Note{Kind: NoteNoLemmas, Phase: ModeLemma})
		return res, nil
	}

	// Lemma-chained: first lemma with axiom support that entails the target
	for _, lemma := range lemmas {
		support := e.findSupport(ctx, res, axioms, lemma)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if support == nil {
			continue
		}

		p, ok := e.entails(ctx, res, ModeLemma, lemma.Ref(), lemma.Statement, target)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !ok {
			if !lastNoteIsErrorFor(res, lemma.Ref()) {
				res.Notes = append(res.Notes, Note{
					Kind:    NoteWeakLemma,
					Phase:   ModeLemma,
					Ref:     lemma.Ref(),
					Support: support,
					Score:   p,
				})
			}
			continue
		}

		res.Mode = ModeLemma
		res.Proven = true
		res.Steps = []Step{*support, {
			From:       lemma.Statement,
			FromRef:    lemma.Ref(),
			To:         target,
			ToRef:      "target",
			Entailment: p,
		}}
		return res, nil
	}

	return res, nil
}

// findSupport returns the edge from the first axiom entailing the lemma
func (e *Engine) findSupport(ctx context.Context, res *Result, axioms []session.Axiom, lemma session.Lemma) *Step {
	for _, ax := range axioms {
		if ctx.Err() != nil {
			return nil
		}
		p, ok := e.entails(ctx, res, ModeLemma, ax.Ref(), ax.Statement, lemma.Statement)
		if ok {
			return &Step{
				From:       ax.Statement,
				FromRef:    ax.Ref(),
				To:         lemma.Statement,
				ToRef:      lemma.Ref(),
				Entailment: p,
			}
		}
	}
	return nil
}

// entails scores one pair. A failed call counts as "not entailed" and is
// recorded on res.
func (e *Engine) entails(ctx context.Context, res *Result, phase Mode, ref, premise, hypothesis string) (float64, bool) {
	set := e.scorer.Score(ctx, premise, hypothesis)
	if set.Failed() {
		res.Notes = append(res.Notes, Note{Kind: NoteInferenceError, Phase: phase, Ref: ref, Message: set.Err})
		return 0, false
	}
	p := set.Entailment()
	return p, p >= EntailmentThreshold
}

func lastNoteIsErrorFor(res *Result, ref string) bool {
	if len(res.Notes) == 0 {
		return false
	}
	last := res.Notes[len(res.Notes)-1]
	return last.Kind == NoteInferenceError && last.Ref == ref
}
