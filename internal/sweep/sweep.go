// Package sweep measures how the window size affects span-level scores.
//
// Re-chunking can split an entity that straddles a window edge. Running
// the same gold/prediction pair at several sizes shows how sensitive the
// scores are to that approximation.
package sweep

import (
	"sort"

	seqeval "github.com/jamesainslie/go-seqeval"
	"github.com/jamesainslie/go-seqeval/iob"
	"github.com/jamesainslie/go-seqeval/metrics"
	"github.com/jamesainslie/go-seqeval/tagtree"
)

// Result holds scores for one window size.
type Result struct {
	Window  int
	Windows int
	Micro   metrics.Row
}

// Windows generates window sizes from lo to hi inclusive with the given step.
func Windows(lo, hi, step int) []int {
	if step < 1 || lo < 1 {
		return nil
	}
	var sizes []int
	for w := lo; w <= hi; w += step {
		sizes = append(sizes, w)
	}
	return sizes
}

// Run evaluates gold against pred at every window size and returns results
// sorted by micro F1 descending. Ties keep the smaller window first.
func Run(gold, pred *tagtree.Tree, catalog iob.Catalog, sizes []int, opts ...seqeval.Option) ([]Result, error) {
	var results []Result

	for _, w := range sizes {
		ev, err := seqeval.New(catalog, append(opts, seqeval.WithWindowSize(w))...)
		if err != nil {
			return nil, err
		}
		res, err := ev.Evaluate(gold, pred)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Window:  w,
			Windows: res.Windows,
			Micro:   res.Report.Micro,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Micro.F1 > results[j].Micro.F1
	})

	return results, nil
}
