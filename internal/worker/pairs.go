package worker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadPairsFile reads pairs from a file, see ReadPairs
func ReadPairsFile(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadPairs(file)
}

// ReadPairs parses one "premise<TAB>hypothesis" pair per line. Blank lines
// and lines starting with # are skipped; repeated pairs are kept once.
func ReadPairs(r io.Reader) ([]Pair, error) {
	var pairs []Pair
	seen := make(map[[2]string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		premise, hypothesis, ok := strings.Cut(line, "\t")
		premise, hypothesis = strings.TrimSpace(premise), strings.TrimSpace(hypothesis)
		if !ok || premise == "" || hypothesis == "" {
			return nil, fmt.Errorf("line %d: expected <premise>TAB<hypothesis>", lineNo)
		}

		key := [2]string{premise, hypothesis}
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, Pair{Line: lineNo, Premise: premise, Hypothesis: hypothesis})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return pairs, nil
}
