package metrics

import (
	"encoding/json"
	"slices"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-seqeval/iob"
)

// Aggregate confusion keys.
const (
	KeyTPAll = "TP_all"
	KeyFPAll = "FP_all"
	KeyFNAll = "FN_all"
	KeyTN    = "TN"
)

// KeyTP returns the per-type true positive key, e.g. "TP_Richtung".
func KeyTP(typ string) string { return "TP_" + typ }

// KeyFP returns the per-type false positive key.
func KeyFP(typ string) string { return "FP_" + typ }

// KeyFN returns the per-type false negative key.
func KeyFN(typ string) string { return "FN_" + typ }

// Confusion holds token-level counts keyed by metric name. It is
// read-only once returned by Count.
type Confusion struct {
	counts map[string]int
}

// Count computes token-level confusion counts over every position.
//
// The aggregate counts are:
//
//	TP_all: gold == pred and not both O
//	FP_all: gold != pred and pred != O
//	FN_all: gold != O and pred == O
//	TN:     gold == pred == O
//
// The per-type counts are deliberately asymmetric. TP_<T> is gated on the
// gold label being of type T, FP_<T> on the predicted label being of type T,
// and FN_<T> on the gold label being of type T with an O prediction. Keys
// are emitted for every catalog type, and types outside the catalog only
// contribute to the aggregates.
func Count(s Sequences, catalog iob.Catalog) Confusion {
	counts := map[string]int{
		KeyTPAll: 0,
		KeyFPAll: 0,
		KeyFNAll: 0,
		KeyTN:    0,
	}
	known := make(map[string]bool, catalog.Len())
	for _, typ := range catalog.Types() {
		known[typ] = true
		counts[KeyTP(typ)] = 0
		counts[KeyFP(typ)] = 0
		counts[KeyFN(typ)] = 0
	}

	for w := range s.Gold {
		for i, yt := range s.Gold[w] {
			yp := s.Pred[w][i]

			switch {
			case yt == yp && yt.IsOutside():
				counts[KeyTN]++
			case yt == yp:
				counts[KeyTPAll]++
				if known[yt.Type] {
					counts[KeyTP(yt.Type)]++
				}
			case !yp.IsOutside():
				counts[KeyFPAll]++
				if known[yp.Type] {
					counts[KeyFP(yp.Type)]++
				}
			default:
				// Mismatch with an O prediction, so the gold label is not O.
				counts[KeyFNAll]++
				if known[yt.Type] {
					counts[KeyFN(yt.Type)]++
				}
			}
		}
	}

	return Confusion{counts: counts}
}

// Get returns the count for key, or zero if the key is absent.
func (c Confusion) Get(key string) int {
	return c.counts[key]
}

// Lookup returns the count for key and whether the key exists.
func (c Confusion) Lookup(key string) (int, bool) {
	v, ok := c.counts[key]
	return v, ok
}

// Keys returns all keys in sorted order.
func (c Confusion) Keys() []string {
	keys := lo.Keys(c.counts)
	slices.Sort(keys)
	return keys
}

// Map returns a copy of the counts.
func (c Confusion) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Total returns TP_all + FP_all + FN_all + TN, which equals the number of
// token positions.
func (c Confusion) Total() int {
	return c.counts[KeyTPAll] + c.counts[KeyFPAll] + c.counts[KeyFNAll] + c.counts[KeyTN]
}

// MarshalJSON encodes the counts as an object with sorted keys.
func (c Confusion) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.counts)
}
