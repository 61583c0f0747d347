package repl

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/nli-prover/internal/model"
)

// tableScorer returns the configured entailment for known pairs and the
// fallback otherwise
type tableScorer struct {
	entailment map[[2]string]float64
	fallback   float64
	calls      int
}

func (s *tableScorer) Name() string                         { return "table" }
func (s *tableScorer) IsAvailable(ctx context.Context) bool { return true }

func (s *tableScorer) Score(ctx context.Context, premise, hypothesis string) model.ScoreSet {
	s.calls++
	p, ok := s.entailment[[2]string{premise, hypothesis}]
	if !ok {
		p = s.fallback
	}
	return model.ScoreSet{Scores: map[string]float64{
		model.LabelEntailment:    p,
		model.LabelNeutral:       (1 - p) / 2,
		model.LabelContradiction: (1 - p) / 2,
	}}
}

type panicScorer struct{}

func (panicScorer) Name() string                         { return "panic" }
func (panicScorer) IsAvailable(ctx context.Context) bool { return true }
func (panicScorer) Score(ctx context.Context, premise, hypothesis string) model.ScoreSet {
	panic("index out of range")
}

// blockingScorer waits until the command context is cancelled
type blockingScorer struct{ entered chan struct{} }

func (b *blockingScorer) Name() string                         { return "blocking" }
func (b *blockingScorer) IsAvailable(ctx context.Context) bool { return true }
func (b *blockingScorer) Score(ctx context.Context, premise, hypothesis string) model.ScoreSet {
	close(b.entered)
	<-ctx.Done()
	return model.ErrorScores(ctx.Err().Error())
}

func runScript(t *testing.T, scorer *tableScorer, script string) (string, *REPL) {
	t.Helper()
	var out bytes.Buffer
	r := New(scorer, Options{Out: &out})
	if err := r.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String(), r
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Command
		ok   bool
	}{
		{"", Command{}, false},
		{"   ", Command{}, false},
		{"axioms", Command{Name: "axioms"}, true},
		{"AXIOM  All men are mortal. ", Command{Name: "axiom", Arg: "All men are mortal."}, true},
		{"prove C using axioms 1 2", Command{Name: "prove", Arg: "C using axioms 1 2"}, true},
		{"Lemma Name Mixed Case", Command{Name: "lemma", Arg: "Name Mixed Case"}, true},
	}

	for _, tt := range tests {
		got, ok := ParseLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLine(%q) = %+v, %v", tt.line, got, ok)
		}
	}
}

func TestREPL_DirectProofScenario(t *testing.T) {
	scorer := &tableScorer{
		entailment: map[[2]string]float64{{"All men are mortal.", "Socrates is mortal."}: 0.9},
		fallback:   0.1,
	}

	out, r := runScript(t, scorer, "axiom All men are mortal.\nprove Socrates is mortal.\naxioms\nexit\n")

	for _, want := range []string{
		`Added axiom (A1): "All men are mortal."`,
		`[Direct proof succeeded] axiom A1: "All men are mortal."`,
		"--entails(0.9000)-->",
		`target "Socrates is mortal." added as new axiom (A2)`,
		`A2: "Socrates is mortal."`,
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if r.Session().AxiomCount() != 2 {
		t.Errorf("expected 2 axioms, got %d", r.Session().AxiomCount())
	}
}

func TestREPL_FailedProofDoesNotMutate(t *testing.T) {
	scorer := &tableScorer{fallback: 0.5}

	out, r := runScript(t, scorer, "axiom All men are mortal.\nprove Socrates is mortal.\n")

	if !strings.Contains(out, "Could not prove the target") {
		t.Errorf("expected failure notice\n%s", out)
	}
	if !strings.Contains(out, "No lemmas defined to try.") {
		t.Errorf("expected no-lemmas notice\n%s", out)
	}
	if r.Session().AxiomCount() != 1 {
		t.Errorf("expected axioms unchanged, got %d", r.Session().AxiomCount())
	}
}

func TestREPL_OutOfRangeSkipsInference(t *testing.T) {
	scorer := &tableScorer{fallback: 0.9}

	out, _ := runScript(t, scorer, "axiom A.\naxiom B.\nprove X using axioms 5\n")

	if !strings.Contains(out, "Error: invalid axiom number '5' (available range 1-2)") {
		t.Errorf("expected range error\n%s", out)
	}
	if scorer.calls != 0 {
		t.Errorf("expected no inference calls, got %d", scorer.calls)
	}
}

func TestREPL_CombinedPremise(t *testing.T) {
	scorer := &tableScorer{
		entailment: map[[2]string]float64{{"A.. B..", "C"}: 0.8},
	}

	out, r := runScript(t, scorer, "axiom A.\naxiom B.\nprove C using axioms 1 2\n")

	if !strings.Contains(out, `Combined premise: "A.. B.."`) {
		t.Errorf("expected joint premise\n%s", out)
	}
	if !strings.Contains(out, "[Combined proof succeeded]") {
		t.Errorf("expected success\n%s", out)
	}
	if scorer.calls != 1 {
		t.Errorf("expected one inference call, got %d", scorer.calls)
	}
	if r.Session().IndexOf("C") != 3 {
		t.Error("expected C to become A3")
	}
}

func TestREPL_LemmaCommands(t *testing.T) {
	scorer := &tableScorer{}

	out, r := runScript(t, scorer, strings.Join([]string{
		"lemma mortal Socrates is mortal.",
		"lemma using Something.",
		"lemma lonely",
		"lemma mortal Socrates will die.",
		"lemmas",
	}, "\n"))

	for _, want := range []string{
		`Added lemma L1 ('mortal'): "Socrates is mortal."`,
		"Error: lemma name conflicts with a keyword: 'using'",
		"Usage: lemma <name> <statement>",
		`Added lemma L1 ('mortal'): "Socrates will die."`,
		`L1 (mortal): "Socrates will die."`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if r.Session().LemmaCount() != 1 {
		t.Errorf("expected 1 lemma, got %d", r.Session().LemmaCount())
	}
}

func TestREPL_TargetContradiction(t *testing.T) {
	scorer := &tableScorer{fallback: 0.2}

	out, _ := runScript(t, scorer, "target The door is closed.\naxiom The door is open.\ntarget The door is closed.\n")

	if !strings.Contains(out, "Error: no axioms defined") {
		t.Errorf("expected missing-axiom error\n%s", out)
	}
	if !strings.Contains(out, `Contradiction probability with target "The door is closed.": 0.4000`) {
		t.Errorf("expected contradiction report\n%s", out)
	}
}

func TestREPL_MiscCommands(t *testing.T) {
	out, r := runScript(t, &tableScorer{}, "axiom A.\naxiom A.\naxiom\nfrobnicate now\nhelp\nclear\naxioms\nlemmas\n")

	for _, want := range []string{
		`Axiom "A." already exists (A1).`,
		"Usage: axiom <statement>",
		`Unknown command: "frobnicate"`,
		"Available commands:",
		"All axioms and lemmas have been cleared.",
		"No axioms defined.",
		"No lemmas defined.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if r.Session().AxiomCount() != 0 {
		t.Error("expected clear to remove axioms")
	}
}

func TestREPL_StopsAtExit(t *testing.T) {
	scorer := &tableScorer{}
	_, r := runScript(t, scorer, "axiom A.\nQUIT\naxiom B.\n")

	if r.Session().AxiomCount() != 1 {
		t.Errorf("expected commands after quit to be ignored, got %d axioms", r.Session().AxiomCount())
	}
}

func TestREPL_RecoversFromPanic(t *testing.T) {
	var out bytes.Buffer
	r := New(panicScorer{}, Options{Out: &out})

	err := r.Run(context.Background(), strings.NewReader("axiom A.\nprove B.\naxiom C.\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "An error occurred: index out of range") {
		t.Errorf("expected panic report\n%s", out.String())
	}
	if r.Session().IndexOf("C.") != 2 {
		t.Error("expected loop to continue after panic")
	}
}

func TestREPL_InterruptWhileWaiting(t *testing.T) {
	var out bytes.Buffer
	interrupts := make(chan os.Signal)
	r := New(&tableScorer{}, Options{Out: &out, Interactive: true, Interrupts: interrupts})

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background(), pr) }()

	interrupts <- os.Interrupt
	_, _ = pw.Write([]byte("exit\n"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	_ = pw.Close()

	got := out.String()
	if !strings.Contains(got, "Operation interrupted. Type 'exit' or 'quit' to leave.") {
		t.Errorf("expected interrupt notice\n%s", got)
	}
	if !strings.Contains(got, Prompt) || !strings.Contains(got, "Welcome") {
		t.Errorf("expected banner and prompt in interactive mode\n%s", got)
	}
}

func TestREPL_InterruptCancelsCommand(t *testing.T) {
	var out bytes.Buffer
	interrupts := make(chan os.Signal)
	scorer := &blockingScorer{entered: make(chan struct{})}
	r := New(scorer, Options{Out: &out, Interrupts: interrupts})
	_, _, _ = r.Session().AddAxiom("A.")

	done := make(chan bool, 1)
	go func() { done <- r.Execute(context.Background(), "prove T.") }()

	<-scorer.entered
	interrupts <- os.Interrupt

	select {
	case keep := <-done:
		if !keep {
			t.Error("expected loop to keep running")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command was not cancelled")
	}

	if !strings.Contains(out.String(), "Operation interrupted.") {
		t.Errorf("expected interrupt notice\n%s", out.String())
	}
	if r.Session().AxiomCount() != 1 {
		t.Error("cancelled proof must not add axioms")
	}
}
