// Package worker scores many premise/hypothesis pairs concurrently for
// the batch command. The interactive loop never uses it.
package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/ppiankov/nli-prover/internal/nli"
)

// Pair is one (premise, hypothesis) job. Line is the source line, if any.
type Pair struct {
	Line       int
	Premise    string
	Hypothesis string
}

// PairResult is the score set for one pair
type PairResult struct {
	Pair   Pair
	Scores model.ScoreSet
}

type job struct {
	index int
	pair  Pair
}

type result struct {
	index int
	res   PairResult
}

// Pool runs a fixed number of workers against one scorer
type Pool struct {
	workers int
	scorer  nli.Scorer
}

// NewPool creates a pool. workers <= 0 means one worker.
func NewPool(scorer nli.Scorer, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		scorer:  scorer,
	}
}

// Run scores every pair and returns results in input order. Pairs not
// reached before ctx is cancelled get an error-tagged score set.
func (p *Pool) Run(ctx context.Context, pairs []Pair) []PairResult {
	out := make([]PairResult, len(pairs))
	if len(pairs) == 0 {
		return out
	}

	jobs := make(chan job, p.workers*2)
	results := make(chan result, p.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, jobs, results)
	}

	// Feed jobs from a separate goroutine so collection below never stalls
	// the workers on a full results channel
	go func() {
		defer close(jobs)
		for i, pair := range pairs {
			select {
			case jobs <- job{index: i, pair: pair}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	done := make([]bool, len(pairs))
	for r := range results {
		out[r.index] = r.res
		done[r.index] = true
	}

	msg := "not scored"
	if err := context.Cause(ctx); err != nil {
		msg += ": " + err.Error()
	}
	for i, ok := range done {
		if !ok {
			out[i] = PairResult{Pair: pairs[i], Scores: model.ErrorScores(msg)}
		}
	}

	return out
}

func (p *Pool) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan job, results chan<- result) {
	defer wg.Done()

	for j := range jobs {
		if ctx.Err() != nil {
			continue
		}
		set := p.scorer.Score(ctx, j.pair.Premise, j.pair.Hypothesis)
		results <- result{index: j.index, res: PairResult{Pair: j.pair, Scores: set}}
	}
}

// Summary counts outcomes by predicted label
type Summary struct {
	Total  int
	Failed int
	Labels map[string]int
}

// Summarize tallies results
func Summarize(results []PairResult) Summary {
	s := Summary{Total: len(results), Labels: make(map[string]int)}
	for _, r := range results {
		if r.Scores.Failed() {
			s.Failed++
			continue
		}
		s.Labels[r.Scores.Label()]++
	}
	return s
}
