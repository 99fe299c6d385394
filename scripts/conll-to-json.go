//go:build ignore

// Convert CoNLL-style IOB2 files into the JSON token-record format read by
// seqeval. Each non-blank input line is "token<TAB>label[<TAB>...]" and a
// blank line ends a sentence. Lines starting with "#" are skipped.
// Output is a list of sentences, each a list of [token, label, index] records.
// Usage: go run ./scripts/conll-to-json.go IN.conll [OUT.json]
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: conll-to-json IN.conll [OUT.json]")
		os.Exit(1)
	}
	inFile := os.Args[1]
	outFile := strings.TrimSuffix(inFile, filepath.Ext(inFile)) + ".json"
	if len(os.Args) > 2 {
		outFile = os.Args[2]
	}

	sentences, err := processCoNLL(inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
		os.Exit(1)
	}

	if err := writeSentences(outFile, sentences); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
		os.Exit(1)
	}

	tokens := 0
	for _, s := range sentences {
		tokens += len(s)
	}
	fmt.Printf("  -> %s (%d sentences, %d tokens)\n", outFile, len(sentences), tokens)
}

func processCoNLL(path string) ([][][3]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		sentences [][][3]any
		current   [][3]any
		index     int
		lineNo    int
	)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, "#") {
			continue
		}

		// Blank line = end of sentence
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sentences = append(sentences, current)
				current = nil
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want token<TAB>label, got %q", lineNo, line)
		}
		current = append(current, [3]any{fields[0], fields[1], index})
		index++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}

	// Don't forget last sentence if no trailing blank
	if len(current) > 0 {
		sentences = append(sentences, current)
	}

	return sentences, nil
}

func writeSentences(path string, sentences [][][3]any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(sentences)
}
