package repl

import (
	"fmt"
	"io"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/ppiankov/nli-prover/internal/prover"
	"github.com/ppiankov/nli-prover/internal/session"
)

const rule = "------------------------------"

func renderBanner(w io.Writer, provider string) {
	fmt.Fprintf(w, "\nWelcome to the NLI proof assistant! Entailment threshold: %.1f\n", prover.EntailmentThreshold)
	if provider != "" {
		fmt.Fprintf(w, "Inference provider: %s\n", provider)
	}
	fmt.Fprintln(w, "Type 'help' for a list of commands.")
}

func renderHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w, "  axiom <statement>               - add a new axiom")
	fmt.Fprintln(w, "  lemma <name> <statement>        - add a named lemma (name must be a single word)")
	fmt.Fprintln(w, "  target <statement>              - check the contradiction probability of a statement against every axiom")
	fmt.Fprintln(w, "  prove <target> [using axioms <A_nums> [lemmas <L_names>]]")
	fmt.Fprintln(w, "                                  - try to prove the target. With 'using', the listed axioms (by number)")
	fmt.Fprintln(w, "                                    and/or lemmas (by name) are combined into one premise.")
	fmt.Fprintln(w, "                                    A proven target automatically becomes a new axiom.")
	fmt.Fprintln(w, "                                    e.g.: prove C using axioms 1 2 lemmas my_L")
	fmt.Fprintln(w, "  axioms                          - list all axioms (A1, A2, ...)")
	fmt.Fprintln(w, "  lemmas                          - list all lemmas (L1, L2, ... with names)")
	fmt.Fprintln(w, "  clear                           - remove all axioms and lemmas")
	fmt.Fprintln(w, "  help                            - show this help")
	fmt.Fprintln(w, "  exit / quit                     - leave the program")
	fmt.Fprintf(w, "(entailment threshold: %.1f)\n", prover.EntailmentThreshold)
	fmt.Fprintln(w)
}

func renderAxioms(w io.Writer, axioms []session.Axiom) {
	if len(axioms) == 0 {
		fmt.Fprintln(w, "No axioms defined.")
		return
	}

	fmt.Fprintln(w, "\nCurrent axioms:")
	for _, ax := range axioms {
		fmt.Fprintf(w, "  %s: %q\n", ax.Ref(), ax.Statement)
	}
	fmt.Fprintln(w)
}

func renderLemmas(w io.Writer, lemmas []session.Lemma) {
	if len(lemmas) == 0 {
		fmt.Fprintln(w, "No lemmas defined.")
		return
	}

	fmt.Fprintln(w, "\nCurrent lemmas:")
	for _, l := range lemmas {
		fmt.Fprintf(w, "  L%d (%s): %q\n", l.Index, l.Name, l.Statement)
	}
	fmt.Fprintln(w)
}

func renderContradictions(w io.Writer, target string, records []model.ContradictionRecord) {
	fmt.Fprintf(w, "\n--- Checking target %q for contradiction with the axioms ---\n", target)
	for _, rec := range records {
		fmt.Fprintf(w, "  Axiom: %q\n", rec.Axiom)
		if rec.Contradiction == nil {
			fmt.Fprintf(w, "  Contradiction probability with target %q: error (%s)\n", rec.Target, rec.Scores.Err)
		} else {
			fmt.Fprintf(w, "  Contradiction probability with target %q: %.4f\n", rec.Target, *rec.Contradiction)
		}
		fmt.Fprintln(w, rule)
	}
}

func renderProof(w io.Writer, res *prover.Result) {
	if res.Mode == prover.ModeCombined {
		renderCombined(w, res)
	} else {
		renderUnrestricted(w, res)
	}

	if res.Proven {
		if res.AddedAxiom {
			fmt.Fprintf(w, "  [Proven] target %q added as new axiom (A%d).\n", res.Target, res.AxiomIndex)
		} else {
			fmt.Fprintf(w, "  [Proven] target %q is already an axiom (A%d).\n", res.Target, res.AxiomIndex)
		}
	}
}

func renderCombined(w io.Writer, res *prover.Result) {
	fmt.Fprintf(w, "\n--- Proving target %q from a combined premise ---\n", res.Target)
	fmt.Fprintf(w, "  Combined premise: %q\n", res.Premise)

	for _, n := range res.Notes {
		if n.Kind == prover.NoteInferenceError {
			fmt.Fprintf(w, "  NLI prediction error: %s\n", n.Message)
			return
		}
	}

	if res.Proven {
		fmt.Fprintf(w, "  [Combined proof succeeded] combined premise\n    --entails(%.4f)--> target %q\n", res.Entailment, res.Target)
		return
	}
	fmt.Fprintf(w, "  [Combined proof failed] the combined premise does not sufficiently entail the target (entailment: %.4f, threshold: %.1f)\n",
		res.Entailment, prover.EntailmentThreshold)
}

func renderUnrestricted(w io.Writer, res *prover.Result) {
	fmt.Fprintf(w, "\n--- Proving target %q (no combined premise) ---\n", res.Target)
	renderNotes(w, res.Notes, prover.ModeDirect)

	if res.Proven && res.Mode == prover.ModeDirect {
		s := res.Steps[0]
		fmt.Fprintf(w, "  [Direct proof succeeded] axiom %s: %q\n    --entails(%.4f)--> target %q\n", s.FromRef, s.From, s.Entailment, res.Target)
		fmt.Fprintln(w, "--- Target proven directly ---")
		return
	}

	fmt.Fprintln(w, "  No direct proof found, trying lemmas...")
	renderNotes(w, res.Notes, prover.ModeLemma)

	if res.Proven && res.Mode == prover.ModeLemma {
		ax, lm := res.Steps[0], res.Steps[1]
		fmt.Fprintf(w, "    - path found: axiom %s: %q\n      --entails(%.4f)--> lemma %s: %q\n", ax.FromRef, ax.From, ax.Entailment, ax.ToRef, ax.To)
		fmt.Fprintf(w, "    - and lemma %s: %q\n      --entails(%.4f)--> target %q\n", lm.FromRef, lm.From, lm.Entailment, res.Target)
		fmt.Fprintf(w, "  [Proof via lemma succeeded] path:\n    axiom %s: %q\n    --entails(%.4f)--> lemma %s\n    --entails(%.4f)--> target %q\n",
			ax.FromRef, ax.From, ax.Entailment, lm.FromRef, lm.Entailment, res.Target)
		return
	}

	fmt.Fprintln(w, "--- Could not prove the target from the current axioms and lemmas ---")
}

// renderNotes prints the notes recorded during one search phase, in order
func renderNotes(w io.Writer, notes []prover.Note, phase prover.Mode) {
	for _, n := range notes {
		if n.Phase != phase {
			continue
		}
		switch n.Kind {
		case prover.NoteNoLemmas:
			fmt.Fprintln(w, "  No lemmas defined to try.")
		case prover.NoteInferenceError:
			fmt.Fprintf(w, "  NLI prediction error (%s): %s\n", n.Ref, n.Message)
		case prover.NoteWeakLemma:
			if s := n.Support; s != nil {
				fmt.Fprintf(w, "    - path found: axiom %s: %q\n      --entails(%.4f)--> lemma %s: %q\n", s.FromRef, s.From, s.Entailment, s.ToRef, s.To)
			}
			fmt.Fprintf(w, "    - but lemma %s does not sufficiently entail the target (entailment: %.4f, threshold: %.1f).\n",
				n.Ref, n.Score, prover.EntailmentThreshold)
		}
	}
}
