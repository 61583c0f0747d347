package session

import (
	"errors"
	"testing"
)

func TestSession_AddAxiom(t *testing.T) {
	s := New()

	idx, added, err := s.AddAxiom("All men are mortal.")
	if err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	if idx != 1 || !added {
		t.Errorf("expected (1, true), got (%d, %v)", idx, added)
	}

	idx, added, err = s.AddAxiom("Socrates is a man.")
	if err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	if idx != 2 || !added {
		t.Errorf("expected (2, true), got (%d, %v)", idx, added)
	}
}

func TestSession_AddAxiom_Duplicate(t *testing.T) {
	texts := []string{"A.", "Socrates is mortal.", "  padded  "}

	for _, text := range texts {
		s := New()
		if _, _, err := s.AddAxiom(text); err != nil {
			t.Fatalf("AddAxiom(%q) failed: %v", text, err)
		}
		idx, added, err := s.AddAxiom(text)
		if err != nil {
			t.Fatalf("second AddAxiom(%q) failed: %v", text, err)
		}
		if added {
			t.Errorf("expected duplicate %q to be rejected", text)
		}
		if idx != 1 {
			t.Errorf("expected existing index 1, got %d", idx)
		}
		if s.AxiomCount() != 1 {
			t.Errorf("expected exactly one axiom, got %d", s.AxiomCount())
		}
	}
}

func TestSession_AddAxiom_Empty(t *testing.T) {
	s := New()
	for _, text := range []string{"", "   ", "\t\n"} {
		_, _, err := s.AddAxiom(text)
		if !errors.Is(err, ErrEmptyStatement) {
			t.Errorf("AddAxiom(%q): expected ErrEmptyStatement, got %v", text, err)
		}
	}
	if s.AxiomCount() != 0 {
		t.Errorf("expected no axioms, got %d", s.AxiomCount())
	}
}

func TestSession_AddLemma_Reserved(t *testing.T) {
	for _, name := range []string{"axioms", "lemmas", "using", "with", "USING", "Axioms"} {
		s := New()
		if _, _, err := s.AddLemma("keep", "Kept statement."); err != nil {
			t.Fatalf("AddLemma failed: %v", err)
		}

		_, _, err := s.AddLemma(name, "Some statement.")
		if !errors.Is(err, ErrReservedName) {
			t.Errorf("AddLemma(%q): expected ErrReservedName, got %v", name, err)
		}

		lemmas := s.Lemmas()
		if len(lemmas) != 1 || lemmas[0].Name != "keep" || lemmas[0].Statement != "Kept statement." {
			t.Errorf("lemma mapping mutated after reserved name %q: %+v", name, lemmas)
		}
	}
}

func TestSession_AddLemma_Overwrite(t *testing.T) {
	s := New()
	_, _, _ = s.AddLemma("first", "One.")
	_, _, _ = s.AddLemma("second", "Two.")

	idx, replaced, err := s.AddLemma("first", "Uno.")
	if err != nil {
		t.Fatalf("AddLemma failed: %v", err)
	}
	if !replaced {
		t.Error("expected replaced=true")
	}
	if idx != 1 {
		t.Errorf("expected overwritten lemma to keep index 1, got %d", idx)
	}

	lemmas := s.Lemmas()
	if len(lemmas) != 2 {
		t.Fatalf("expected 2 lemmas, got %d", len(lemmas))
	}
	if lemmas[0].Statement != "Uno." || lemmas[1].Name != "second" {
		t.Errorf("unexpected lemmas: %+v", lemmas)
	}
}

func TestSession_AddLemma_Invalid(t *testing.T) {
	tests := []struct {
		name, text string
		want       error
	}{
		{"", "text", ErrEmptyName},
		{"two words", "text", ErrInvalidName},
		{"ok", "   ", ErrEmptyStatement},
	}

	for _, tt := range tests {
		s := New()
		_, _, err := s.AddLemma(tt.name, tt.text)
		if !errors.Is(err, tt.want) {
			t.Errorf("AddLemma(%q, %q): expected %v, got %v", tt.name, tt.text, tt.want, err)
		}
		if s.LemmaCount() != 0 {
			t.Errorf("AddLemma(%q, %q) mutated the session", tt.name, tt.text)
		}
	}
}

func TestSession_Lookups(t *testing.T) {
	s := New()
	_, _, _ = s.AddAxiom("A.")
	_, _, _ = s.AddAxiom("B.")
	_, _, _ = s.AddLemma("m", "M.")

	if ax, ok := s.Axiom(2); !ok || ax.Statement != "B." || ax.Ref() != "A2" {
		t.Errorf("Axiom(2) = %+v, %v", ax, ok)
	}
	for _, idx := range []int{0, 3, -1} {
		if _, ok := s.Axiom(idx); ok {
			t.Errorf("Axiom(%d) should not exist", idx)
		}
	}
	if l, ok := s.Lemma("m"); !ok || l.Statement != "M." || l.Ref() != "L1 ('m')" {
		t.Errorf("Lemma(m) = %+v, %v", l, ok)
	}
	if _, ok := s.Lemma("M"); ok {
		t.Error("lemma lookup should be case-sensitive")
	}
	if s.IndexOf("B.") != 2 || s.IndexOf("C.") != 0 {
		t.Error("IndexOf returned unexpected values")
	}
}

func TestSession_Clear(t *testing.T) {
	s := New()
	_, _, _ = s.AddAxiom("A.")
	_, _, _ = s.AddLemma("m", "M.")

	s.Clear()

	if len(s.Axioms()) != 0 {
		t.Errorf("expected no axioms after Clear, got %d", len(s.Axioms()))
	}
	if len(s.Lemmas()) != 0 {
		t.Errorf("expected no lemmas after Clear, got %d", len(s.Lemmas()))
	}

	// Session stays usable
	if idx, _, err := s.AddLemma("m", "M again."); err != nil || idx != 1 {
		t.Errorf("AddLemma after Clear = %d, %v", idx, err)
	}
}
