// Package repl implements the interactive nli-prover command loop.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/ppiankov/nli-prover/internal/nli"
	"github.com/ppiankov/nli-prover/internal/prover"
	"github.com/ppiankov/nli-prover/internal/session"
)

// Prompt is printed before each line in interactive mode
const Prompt = "nli-prover> "

const maxLineBytes = 1 << 20

// Options configures a REPL
type Options struct {
	// Out receives all user-facing output (default os.Stdout)
	Out io.Writer

	// Logger receives diagnostics such as recovered panics
	Logger *slog.Logger

	// Interactive prints the banner and the prompt
	Interactive bool

	// Interrupts delivers SIGINT. While waiting for input it prints a notice,
	// during a command it cancels that command. Nil disables both.
	Interrupts <-chan os.Signal
}

// REPL owns the session for one run and dispatches commands against it
type REPL struct {
	session *session.Session
	engine  *prover.Engine
	scorer  nli.Scorer
	opts    Options
	logger  *slog.Logger
}

// New creates a REPL with a fresh session
func New(scorer nli.Scorer, opts Options) *REPL {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := session.New()
	return &REPL{
		session: s,
		engine:  prover.NewEngine(s, scorer),
		scorer:  scorer,
		opts:    opts,
		logger:  logger,
	}
}

// Session exposes the statement store, mainly for tests
func (r *REPL) Session() *session.Session {
	return r.session
}

// Run reads commands from in until exit, quit or end of input
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	out := r.opts.Out

	if r.opts.Interactive {
		renderBanner(out, r.scorer.Name())
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := readLines(readCtx, in)

	for {
		if r.opts.Interactive {
			fmt.Fprint(out, Prompt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-r.opts.Interrupts:
			fmt.Fprintln(out, "\nOperation interrupted. Type 'exit' or 'quit' to leave.")

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out, "\nExiting the NLI proof assistant. Goodbye!")
				return <-readErr
			}
			if !r.Execute(ctx, line) {
				return nil
			}
		}
	}
}

// readLines feeds input lines on a channel so Run can also wait on
// interrupts. The error channel yields once, after lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

// Execute runs one input line and reports whether the loop should continue
func (r *REPL) Execute(ctx context.Context, line string) (keepRunning bool) {
	cmd, ok := ParseLine(line)
	if !ok {
		return true
	}

	if cmd.Name == "exit" || cmd.Name == "quit" {
		fmt.Fprintln(r.opts.Out, "Exiting the NLI proof assistant. Goodbye!")
		return false
	}

	cmdCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.opts.Interrupts != nil {
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-r.opts.Interrupts:
				cancel()
			case <-done:
			}
		}()
	}

	r.dispatch(cmdCtx, cmd)
	return true
}

// dispatch never lets a failing command end the session
func (r *REPL) dispatch(ctx context.Context, cmd Command) {
	out := r.opts.Out

	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(out, "An error occurred: %v\n", rec)
			r.logger.Error("command panicked", "command", cmd.Name, "panic", rec, "stack", string(debug.Stack()))
		}
	}()

	var err error
	switch cmd.Name {
	case "axiom":
		err = r.cmdAxiom(cmd.Arg)
	case "lemma":
		err = r.cmdLemma(cmd.Arg)
	case "target":
		err = r.cmdTarget(ctx, cmd.Arg)
	case "prove":
		err = r.cmdProve(ctx, cmd.Arg)
	case "axioms":
		renderAxioms(out, r.session.Axioms())
	case "lemmas":
		renderLemmas(out, r.session.Lemmas())
	case "clear":
		r.session.Clear()
		fmt.Fprintln(out, "All axioms and lemmas have been cleared.")
	case "help":
		renderHelp(out)
	default:
		fmt.Fprintf(out, "Unknown command: %q. Type 'help' for available commands.\n", cmd.Name)
	}

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "\nOperation interrupted.")
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

func (r *REPL) cmdAxiom(arg string) error {
	if arg == "" {
		fmt.Fprintln(r.opts.Out, "Usage: axiom <statement>")
		return nil
	}

	idx, added, err := r.session.AddAxiom(arg)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintf(r.opts.Out, "Axiom %q already exists (A%d).\n", arg, idx)
		return nil
	}

	fmt.Fprintf(r.opts.Out, "Added axiom (A%d): %q\n", idx, arg)
	return nil
}

func (r *REPL) cmdLemma(arg string) error {
	name, statement, ok := splitLemma(arg)
	if !ok {
		fmt.Fprintln(r.opts.Out, "Usage: lemma <name> <statement> (name must be a single word)")
		return nil
	}

	idx, replaced, err := r.session.AddLemma(name, statement)
	if err != nil {
		return err
	}
	if replaced {
		r.logger.Debug("lemma replaced", "name", name)
	}

	fmt.Fprintf(r.opts.Out, "Added lemma L%d ('%s'): %q\n", idx, name, statement)
	return nil
}

func (r *REPL) cmdTarget(ctx context.Context, arg string) error {
	if arg == "" {
		fmt.Fprintln(r.opts.Out, "Usage: target <statement> (contradiction check)")
		return nil
	}
	if r.session.AxiomCount() == 0 {
		return fmt.Errorf("%w: add at least one axiom before checking a target", prover.ErrNoAxioms)
	}

	records, err := r.engine.CheckContradiction(ctx, arg)
	if err != nil {
		return err
	}

	renderContradictions(r.opts.Out, arg, records)
	return nil
}

func (r *REPL) cmdProve(ctx context.Context, arg string) error {
	if arg == "" {
		fmt.Fprintln(r.opts.Out, "Usage: prove <target> [using axioms <A_nums> [lemmas <L_names>]]")
		return nil
	}

	res, err := r.engine.Prove(ctx, arg)
	if err != nil {
		if errors.Is(err, prover.ErrNoAxioms) {
			return fmt.Errorf("%w: cannot attempt a direct or lemma proof", err)
		}
		return err
	}

	renderProof(r.opts.Out, res)
	return nil
}
