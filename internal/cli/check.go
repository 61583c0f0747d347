package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/spf13/cobra"
)

var checkJSON bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <premise> <hypothesis>",
	Short: "Score a single premise/hypothesis pair",
	Long: `Check runs one inference call and prints the probability of each label.
It is useful for trying a provider before starting a session.

Example:
  nli-prover check "All men are mortal. Socrates is a man." "Socrates is mortal."
  nli-prover check "The door is open." "The door is closed." --json`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the score set as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	scorer, _, err := newScorer(ctx)
	if err != nil {
		return err
	}

	set := scorer.Score(ctx, args[0], args[1])
	if set.Failed() {
		return errors.New(set.Err)
	}

	out := cmd.OutOrStdout()
	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	for _, label := range model.Labels {
		fmt.Fprintf(out, "%-14s %.4f\n", label, set.Get(label))
	}
	fmt.Fprintf(out, "label: %s\n", set.Label())
	return nil
}
