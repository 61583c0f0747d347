package prover

import (
	"strconv"
	"strings"

	"github.com/ppiankov/nli-prover/internal/session"
)

// SplitUsing separates "<target> using <clause>" at the first " using ".
// ok is false when the input has no using clause.
func SplitUsing(input string) (target, clause string, ok bool) {
	target, clause, ok = strings.Cut(input, " using ")
	return strings.TrimSpace(target), strings.TrimSpace(clause), ok
}

// ParseUsing resolves a clause such as "axioms 1 2 lemmas socrates" into
// the referenced statements, in the order listed. It only reads the session.
func ParseUsing(clause string, s *session.Session) ([]string, error) {
	const (
		modeNone = iota
		modeAxiom
		modeLemma
	)

	var premises []string
	mode := modeNone

	for _, token := range strings.Fields(clause) {
		switch strings.ToLower(token) {
		case "axioms":
			mode = modeAxiom
			continue
		case "lemmas":
			mode = modeLemma
			continue
		}

		switch mode {
		case modeAxiom:
			n, err := strconv.Atoi(token)
			if err != nil {
				return nil, &UsingError{Token: token, Max: s.AxiomCount(), Err: ErrAxiomIndex}
			}
			ax, ok := s.Axiom(n)
			if !ok {
				return nil, &UsingError{Token: token, Max: s.AxiomCount(), Err: ErrAxiomIndex}
			}
			premises = append(premises, ax.Statement)

		case modeLemma:
			l, ok := s.Lemma(token)
			if !ok {
				return nil, &UsingError{Token: token, Err: ErrUnknownLemma}
			}
			premises = append(premises, l.Statement)

		default:
			return nil, &UsingError{Token: token, Err: ErrUsingSyntax}
		}
	}

	if len(premises) == 0 {
		return nil, ErrEmptyPremise
	}

	return premises, nil
}

// JoinPremise concatenates statements into one joint premise. Each part is
// terminated with a period even if it already ends with one.
func JoinPremise(parts []string) string {
	return strings.Join(parts, ". ") + "."
}
