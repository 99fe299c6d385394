// Package reshape re-chunks flat label sequences into fixed-size windows so
// that gold and predicted data present identical sentence boundaries.
//
// Gold and prediction files may have been sentence-split by different
// passes. Windowing both flat streams with the same size sidesteps boundary
// reconciliation, at the cost of occasionally splitting an entity that
// straddles a window edge.
package reshape

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// DefaultWindow is the default number of tokens per window.
const DefaultWindow = 20

var (
	// ErrLengthMismatch indicates gold and predicted streams have different
	// token counts and cannot be aligned positionally.
	ErrLengthMismatch = errors.New("reshape: gold and prediction token counts differ")

	// ErrInvalidWindow indicates a window size below one.
	ErrInvalidWindow = errors.New("reshape: window size must be at least 1")
)

// Windows splits labels into contiguous windows of size w. The last window
// is shorter when len(labels) is not a multiple of w.
func Windows(labels []string, w int) ([][]string, error) {
	if w < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, w)
	}
	if len(labels) == 0 {
		return [][]string{}, nil
	}
	return lo.Chunk(labels, w), nil
}

// Flatten concatenates windows back into one sequence.
func Flatten(windows [][]string) []string {
	return lo.Flatten(windows)
}

// Aligned is a pair of window sequences with identical shapes.
type Aligned struct {
	Gold [][]string
	Pred [][]string
}

// Tokens returns the total number of tokens on either side.
func (a Aligned) Tokens() int {
	n := 0
	for _, w := range a.Gold {
		n += len(w)
	}
	return n
}

// Align validates that gold and pred have the same length and windows both.
func Align(gold, pred []string, w int) (Aligned, error) {
	if len(gold) != len(pred) {
		return Aligned{}, fmt.Errorf("%w: gold has %d tokens, prediction has %d",
			ErrLengthMismatch, len(gold), len(pred))
	}
	g, err := Windows(gold, w)
	if err != nil {
		return Aligned{}, err
	}
	p, err := Windows(pred, w)
	if err != nil {
		return Aligned{}, err
	}
	return Aligned{Gold: g, Pred: p}, nil
}

// Regroup validates a caller-supplied pair of window sequences. Both sides
// must agree on the number of windows and on every window length.
func Regroup(gold, pred [][]string) (Aligned, error) {
	if len(gold) != len(pred) {
		return Aligned{}, fmt.Errorf("%w: gold has %d sequences, prediction has %d",
			ErrLengthMismatch, len(gold), len(pred))
	}
	for i := range gold {
		if len(gold[i]) != len(pred[i]) {
			return Aligned{}, fmt.Errorf("%w: sequence %d: gold has %d tokens, prediction has %d",
				ErrLengthMismatch, i, len(gold[i]), len(pred[i]))
		}
	}
	return Aligned{Gold: gold, Pred: pred}, nil
}
