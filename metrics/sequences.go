// Package metrics scores predicted IOB2 label sequences against gold ones.
//
// Two independent computations are provided. Count produces token-level
// confusion counts, overall and per entity type. Score produces a strict
// span-level classification report. Both consume the same aligned pair of
// windowed sequences.
package metrics

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-seqeval/iob"
	"github.com/jamesainslie/go-seqeval/reshape"
)

// ErrShape indicates gold and predicted windows differ in shape.
var ErrShape = errors.New("metrics: gold and prediction windows differ in shape")

// Sequences holds parsed gold and predicted windows of identical shape.
type Sequences struct {
	Gold [][]iob.Tag
	Pred [][]iob.Tag
}

// Parse parses every label of an aligned pair.
func Parse(a reshape.Aligned) (Sequences, error) {
	if len(a.Gold) != len(a.Pred) {
		return Sequences{}, fmt.Errorf("%w: %d vs %d windows", ErrShape, len(a.Gold), len(a.Pred))
	}

	s := Sequences{
		Gold: make([][]iob.Tag, len(a.Gold)),
		Pred: make([][]iob.Tag, len(a.Pred)),
	}
	for i := range a.Gold {
		if len(a.Gold[i]) != len(a.Pred[i]) {
			return Sequences{}, fmt.Errorf("%w: window %d: %d vs %d tokens",
				ErrShape, i, len(a.Gold[i]), len(a.Pred[i]))
		}
		g, err := iob.ParseSequence(a.Gold[i])
		if err != nil {
			return Sequences{}, fmt.Errorf("gold window %d: %w", i, err)
		}
		p, err := iob.ParseSequence(a.Pred[i])
		if err != nil {
			return Sequences{}, fmt.Errorf("prediction window %d: %w", i, err)
		}
		s.Gold[i], s.Pred[i] = g, p
	}
	return s, nil
}

// Tokens returns the number of token positions.
func (s Sequences) Tokens() int {
	n := 0
	for _, w := range s.Gold {
		n += len(w)
	}
	return n
}
