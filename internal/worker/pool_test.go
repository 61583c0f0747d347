package worker

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/nli-prover/internal/model"
)

// countingScorer entails when the hypothesis is contained in the premise
type countingScorer struct {
	calls   int32
	current int32
	max     int32
	delay   time.Duration
	mu      sync.Mutex
}

func (s *countingScorer) Name() string                         { return "counting" }
func (s *countingScorer) IsAvailable(ctx context.Context) bool { return true }

func (s *countingScorer) Score(ctx context.Context, premise, hypothesis string) model.ScoreSet {
	atomic.AddInt32(&s.calls, 1)
	curr := atomic.AddInt32(&s.current, 1)
	defer atomic.AddInt32(&s.current, -1)

	s.mu.Lock()
	if curr > s.max {
		s.max = curr
	}
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return model.ErrorScores(ctx.Err().Error())
		}
	}

	if premise == "fail" {
		return model.ErrorScores("backend down")
	}
	if strings.Contains(premise, hypothesis) {
		return model.ScoreSet{Scores: map[string]float64{model.LabelEntailment: 0.9, model.LabelNeutral: 0.05, model.LabelContradiction: 0.05}}
	}
	return model.ScoreSet{Scores: map[string]float64{model.LabelEntailment: 0.1, model.LabelNeutral: 0.8, model.LabelContradiction: 0.1}}
}

func makePairs(n int) []Pair {
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{Line: i + 1, Premise: "the cat sat", Hypothesis: "cat"}
		if i%2 == 1 {
			pairs[i].Hypothesis = "dog"
		}
	}
	return pairs
}

func TestNewPool(t *testing.T) {
	if p := NewPool(&countingScorer{}, 5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(&countingScorer{}, 0); p.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(&countingScorer{}, -1); p.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_OrderedResults(t *testing.T) {
	scorer := &countingScorer{}
	pairs := makePairs(100)

	results := NewPool(scorer, 4).Run(context.Background(), pairs)

	if len(results) != len(pairs) {
		t.Fatalf("expected %d results, got %d", len(pairs), len(results))
	}
	for i, r := range results {
		if r.Pair != pairs[i] {
			t.Fatalf("result %d out of order: %+v", i, r.Pair)
		}
		want := model.LabelEntailment
		if i%2 == 1 {
			want = model.LabelNeutral
		}
		if got := r.Scores.Label(); got != want {
			t.Errorf("result %d label = %q, want %q", i, got, want)
		}
	}
	if atomic.LoadInt32(&scorer.calls) != 100 {
		t.Errorf("expected 100 calls, got %d", scorer.calls)
	}
}

func TestPool_Concurrency(t *testing.T) {
	workers := 5
	scorer := &countingScorer{delay: 10 * time.Millisecond}

	NewPool(scorer, workers).Run(context.Background(), makePairs(30))

	scorer.mu.Lock()
	max := scorer.max
	scorer.mu.Unlock()

	if max > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", max, workers)
	}
	if max <= 1 {
		t.Logf("Warning: max concurrency was %d, expected > 1", max)
	}
}

func TestPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewPool(&countingScorer{}, 2).Run(ctx, makePairs(10))

	for i, r := range results {
		if !r.Scores.Failed() {
			t.Errorf("result %d should be error-tagged after cancellation", i)
		}
		if r.Pair.Line != i+1 {
			t.Errorf("result %d lost its pair: %+v", i, r.Pair)
		}
	}
}

func TestPool_Empty(t *testing.T) {
	if results := NewPool(&countingScorer{}, 2).Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSummarize(t *testing.T) {
	pairs := append(makePairs(3), Pair{Line: 4, Premise: "fail", Hypothesis: "x"})
	results := NewPool(&countingScorer{}, 2).Run(context.Background(), pairs)

	s := Summarize(results)
	if s.Total != 4 || s.Failed != 1 {
		t.Errorf("unexpected totals: %+v", s)
	}
	if s.Labels[model.LabelEntailment] != 2 || s.Labels[model.LabelNeutral] != 1 {
		t.Errorf("unexpected label counts: %+v", s.Labels)
	}
}

func TestReadPairs(t *testing.T) {
	input := "# premise\thypothesis\n" +
		"All men are mortal.\tSocrates is mortal.\n" +
		"\n" +
		"  The door is open. \t The door is closed.  \n" +
		"All men are mortal.\tSocrates is mortal.\n"

	pairs, err := ReadPairs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPairs failed: %v", err)
	}

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs after dedupe, got %d", len(pairs))
	}
	if pairs[1] != (Pair{Line: 4, Premise: "The door is open.", Hypothesis: "The door is closed."}) {
		t.Errorf("unexpected pair: %+v", pairs[1])
	}
}

func TestReadPairs_Malformed(t *testing.T) {
	_, err := ReadPairs(strings.NewReader("ok\tfine\nno tab here\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line 2 error, got %v", err)
	}
}
