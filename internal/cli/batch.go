package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/ppiankov/nli-prover/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency int
	batchOut    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score many premise/hypothesis pairs from a file in parallel",
	Long: `Batch scores a tab-separated file with one "premise<TAB>hypothesis" pair
per line. Blank lines and lines starting with # are skipped.

Pairs are scored concurrently; the configured rate limit and cache still
apply. Use it to compare providers or warm the disk cache before a session.

Example:
  nli-prover batch pairs.tsv
  nli-prover batch pairs.tsv --concurrency 8 --json scores.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "json", "", "write all results as JSON to this path")
}

type batchRecord struct {
	Line       int            `json:"line"`
	Premise    string         `json:"premise"`
	Hypothesis string         `json:"hypothesis"`
	Label      string         `json:"label,omitempty"`
	Scores     model.ScoreSet `json:"result"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pairs, err := worker.ReadPairsFile(args[0])
	if err != nil {
		return err
	}

	scorer, logger, err := newScorer(ctx)
	if err != nil {
		return err
	}

	logger.Info("batch started", "pairs", len(pairs), "concurrency", concurrency)
	results := worker.NewPool(scorer, concurrency).Run(ctx, pairs)

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Scores.Failed() {
			fmt.Fprintf(out, "line %d: error: %s\n", r.Pair.Line, r.Scores.Err)
			continue
		}
		fmt.Fprintf(out, "line %d: %-13s (entailment %.4f, neutral %.4f, contradiction %.4f)\n",
			r.Pair.Line, r.Scores.Label(), r.Scores.Entailment(), r.Scores.Neutral(), r.Scores.Contradiction())
	}

	summary := worker.Summarize(results)
	fmt.Fprintf(out, "\nScored %d pairs, %d failed\n", summary.Total, summary.Failed)
	labels := make([]string, 0, len(summary.Labels))
	for label := range summary.Labels {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(out, "  %-13s %d\n", label, summary.Labels[label])
	}

	if batchOut != "" {
		if err := writeBatchJSON(batchOut, results); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nResults written to %s\n", batchOut)
	}

	if summary.Total > 0 && summary.Failed == summary.Total {
		return fmt.Errorf("all %d pairs failed", summary.Total)
	}
	return nil
}

func writeBatchJSON(path string, results []worker.PairResult) error {
	records := make([]batchRecord, len(results))
	for i, r := range results {
		records[i] = batchRecord{
			Line:       r.Pair.Line,
			Premise:    r.Pair.Premise,
			Hypothesis: r.Pair.Hypothesis,
			Label:      r.Scores.Label(),
			Scores:     r.Scores,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
