package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/ppiankov/nli-prover/internal/logging"
	"github.com/ppiankov/nli-prover/internal/nli"
	"github.com/ppiankov/nli-prover/internal/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scriptFile string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive proof assistant",
	Long: `Start the command loop. This is also what nli-prover does without a
sub-command.

Example:
  nli-prover
  nli-prover repl --provider ollama --model llama3.1
  nli-prover repl --script socrates.txt`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&scriptFile, "script", "", "read commands from a file instead of stdin (no prompt)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	scorer, logger, err := newScorer(ctx)
	if err != nil {
		return err
	}

	var (
		in          io.Reader = os.Stdin
		interactive           = true
	)
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("error opening script: %w", err)
		}
		defer func() { _ = f.Close() }()
		in, interactive = f, false
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	loop := repl.New(scorer, repl.Options{
		Out:         cmd.OutOrStdout(),
		Logger:      logger,
		Interactive: interactive,
		Interrupts:  sigc,
	})

	return loop.Run(ctx, in)
}

// newScorer loads the configuration and builds a checked scorer. A backend
// that cannot be built or reached is reported once as ErrModelUnavailable.
func newScorer(ctx context.Context) (nli.Scorer, *slog.Logger, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	logger, _ := logging.WithRun(logging.New(cfg.Log, verbose, os.Stderr))
	logger.Debug("configuration loaded",
		"provider", cfg.NLI.Provider,
		"model", cfg.NLI.Model,
		"cache", cfg.Cache.Enabled,
		"cache_dir", cfg.Cache.Dir,
		"rate_limit", cfg.RateLimit.RequestsPerSecond)

	scorer, err := nli.NewScorer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	checkCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.NLI.Timeout+5)*time.Second)
	defer cancel()

	if !scorer.IsAvailable(checkCtx) {
		return nil, nil, fmt.Errorf("%w: %s backend (model %q) is not reachable or not configured", nli.ErrModelUnavailable, scorer.Name(), cfg.NLI.Model)
	}

	return scorer, logger, nil
}
