package prover

import (
	"errors"
	"fmt"
)

// User-input errors. They abort the command but never the session.
var (
	ErrEmptyTarget  = errors.New("target statement is empty")
	ErrNoAxioms     = errors.New("no axioms defined")
	ErrUsingSyntax  = errors.New("malformed 'using' clause")
	ErrAxiomIndex   = errors.New("invalid axiom number")
	ErrUnknownLemma = errors.New("lemma not found")
	ErrEmptyPremise = errors.New("no axioms or lemmas selected")
)

// UsingError reports the token that made a using clause unusable
type UsingError struct {
	Token string
	Max   int // number of axioms, for index errors
	Err   error
}

func (e *UsingError) Error() string {
	switch e.Err {
	case ErrAxiomIndex:
		if e.Max == 0 {
			return fmt.Sprintf("%v '%s' (no axioms defined)", e.Err, e.Token)
		}
		return fmt.Sprintf("%v '%s' (available range 1-%d)", e.Err, e.Token, e.Max)
	case ErrUnknownLemma:
		return fmt.Sprintf("%v: '%s'", e.Err, e.Token)
	case ErrUsingSyntax:
		return fmt.Sprintf("%v: expected 'axioms' or 'lemmas' before '%s'", e.Err, e.Token)
	default:
		return e.Err.Error()
	}
}

func (e *UsingError) Unwrap() error {
	return e.Err
}
