// Package session holds the axioms and lemmas accumulated during one
// interactive run. Nothing here is persisted.
package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyStatement = errors.New("statement is empty")
	ErrEmptyName      = errors.New("lemma name is empty")
	ErrInvalidName    = errors.New("lemma name must be a single word")
	ErrReservedName   = errors.New("lemma name conflicts with a keyword")
)

// reservedNames cannot be used as lemma names because the using-clause
// parser treats them as keywords
var reservedNames = map[string]bool{
	"axioms": true,
	"lemmas": true,
	"using":  true,
	"with":   true,
}

// IsReserved reports whether name collides with a keyword (case-insensitive)
func IsReserved(name string) bool {
	return reservedNames[strings.ToLower(name)]
}

// Axiom is a trusted statement with its 1-based display index
type Axiom struct {
	Index     int
	Statement string
}

// Ref renders the display reference, e.g. "A2"
func (a Axiom) Ref() string {
	return fmt.Sprintf("A%d", a.Index)
}

// Lemma is a named intermediate statement with its 1-based display index
type Lemma struct {
	Index     int
	Name      string
	Statement string
}

// Ref renders the display reference, e.g. "L1 ('mortal')"
func (l Lemma) Ref() string {
	return fmt.Sprintf("L%d ('%s')", l.Index, l.Name)
}

// Session is the statement store: an ordered axiom list and an
// insertion-ordered lemma mapping
type Session struct {
	axioms []string

	lemmaOrder []string
	lemmas     map[string]string
}

// New creates an empty session
func New() *Session {
	return &Session{
		lemmas: make(map[string]string),
	}
}

// AddAxiom appends text as a new axiom and returns its 1-based index.
// If the axiom already exists its index is returned with added=false.
func (s *Session) AddAxiom(text string) (index int, added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false, ErrEmptyStatement
	}

	if i := s.IndexOf(text); i > 0 {
		return i, false, nil
	}

	s.axioms = append(s.axioms, text)
	return len(s.axioms), true, nil
}

// AddLemma stores a named lemma. An existing name keeps its position and has
// its statement replaced (replaced=true).
func (s *Session) AddLemma(name, text string) (index int, replaced bool, err error) {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)

	switch {
	case name == "":
		return 0, false, ErrEmptyName
	case strings.ContainsAny(name, " \t\r\n"):
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidName, name)
	case IsReserved(name):
		return 0, false, fmt.Errorf("%w: '%s'", ErrReservedName, name)
	case text == "":
		return 0, false, ErrEmptyStatement
	}

	if _, exists := s.lemmas[name]; exists {
		replaced = true
	} else {
		s.lemmaOrder = append(s.lemmaOrder, name)
	}
	s.lemmas[name] = text

	return s.lemmaIndex(name), replaced, nil
}

// Axioms returns an ordered copy of the axioms
func (s *Session) Axioms() []Axiom {
	out := make([]Axiom, len(s.axioms))
	for i, text := range s.axioms {
		out[i] = Axiom{Index: i + 1, Statement: text}
	}
	return out
}

// Lemmas returns the lemmas in insertion order
func (s *Session) Lemmas() []Lemma {
	out := make([]Lemma, len(s.lemmaOrder))
	for i, name := range s.lemmaOrder {
		out[i] = Lemma{Index: i + 1, Name: name, Statement: s.lemmas[name]}
	}
	return out
}

// Axiom looks up an axiom by its 1-based index
func (s *Session) Axiom(index int) (Axiom, bool) {
	if index < 1 || index > len(s.axioms) {
		return Axiom{}, false
	}
	return Axiom{Index: index, Statement: s.axioms[index-1]}, true
}

// Lemma looks up a lemma by exact name
func (s *Session) Lemma(name string) (Lemma, bool) {
	text, ok := s.lemmas[name]
	if !ok {
		return Lemma{}, false
	}
	return Lemma{Index: s.lemmaIndex(name), Name: name, Statement: text}, true
}

// IndexOf returns the 1-based index of an axiom equal to text, or 0
func (s *Session) IndexOf(text string) int {
	for i, ax := range s.axioms {
		if ax == text {
			return i + 1
		}
	}
	return 0
}

// AxiomCount returns the number of axioms
func (s *Session) AxiomCount() int {
	return len(s.axioms)
}

// LemmaCount returns the number of lemmas
func (s *Session) LemmaCount() int {
	return len(s.lemmaOrder)
}

// Clear removes every axiom and lemma
func (s *Session) Clear() {
	s.axioms = nil
	s.lemmaOrder = nil
	s.lemmas = make(map[string]string)
}

func (s *Session) lemmaIndex(name string) int {
	for i, n := range s.lemmaOrder {
		if n == name {
			return i + 1
		}
	}
	return 0
}
