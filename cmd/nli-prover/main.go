// Command nli-prover is an interactive proof assistant that chains
// natural-language-inference judgements from axioms to a target.
package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/nli-prover/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
