package metrics

import (
	"slices"

	"github.com/samber/lo"
)

// Row holds span-level scores for one entity type or one average.
type Row struct {
	Type          string  `json:"type"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1            float64 `json:"f1"`
	Support       int     `json:"support"`             // gold spans
	Predicted     int     `json:"predicted,omitempty"` // predicted spans
	TruePositives int     `json:"true_positives,omitempty"`
}

// Report is a strict span-level classification report.
type Report struct {
	Rows     []Row `json:"rows"` // sorted by type
	Micro    Row   `json:"micro_avg"`
	Macro    Row   `json:"macro_avg"`
	Weighted Row   `json:"weighted_avg"`
}

// Row returns the row for typ.
func (r Report) Row(typ string) (Row, bool) {
	return lo.Find(r.Rows, func(row Row) bool { return row.Type == typ })
}

type spanKey struct {
	window     int
	start, end int
	typ        string
}

type tally struct {
	gold, pred, tp int
}

// Score computes the strict classification report. A predicted span is a
// true positive only when a gold span in the same window has the same
// type, start and end. Spans never cross window boundaries.
func Score(s Sequences) Report {
	tallies := make(map[string]*tally)
	get := func(typ string) *tally {
		t, ok := tallies[typ]
		if !ok {
			t = &tally{}
			tallies[typ] = t
		}
		return t
	}

	for w := range s.Gold {
		gold := make(map[spanKey]struct{})
		for _, sp := range Spans(s.Gold[w]) {
			gold[spanKey{w, sp.Start, sp.End, sp.Type}] = struct{}{}
			get(sp.Type).gold++
		}
		for _, sp := range Spans(s.Pred[w]) {
			t := get(sp.Type)
			t.pred++
			if _, ok := gold[spanKey{w, sp.Start, sp.End, sp.Type}]; ok {
				t.tp++
			}
		}
	}

	types := lo.Keys(tallies)
	slices.Sort(types)

	var r Report
	var total tally
	for _, typ := range types {
		t := tallies[typ]
		r.Rows = append(r.Rows, newRow(typ, *t))
		total.gold += t.gold
		total.pred += t.pred
		total.tp += t.tp
	}

	r.Micro = newRow("micro avg", total)
	r.Macro = Row{Type: "macro avg", Support: total.gold}
	r.Weighted = Row{Type: "weighted avg", Support: total.gold}
	if n := float64(len(r.Rows)); n > 0 {
		for _, row := range r.Rows {
			r.Macro.Precision += row.Precision
			r.Macro.Recall += row.Recall
			r.Macro.F1 += row.F1
		}
		r.Macro.Precision /= n
		r.Macro.Recall /= n
		r.Macro.F1 /= n
	}
	if total.gold > 0 {
		sup := float64(total.gold)
		for _, row := range r.Rows {
			wt := float64(row.Support)
			r.Weighted.Precision += row.Precision * wt
			r.Weighted.Recall += row.Recall * wt
			r.Weighted.F1 += row.F1 * wt
		}
		r.Weighted.Precision /= sup
		r.Weighted.Recall /= sup
		r.Weighted.F1 /= sup
	}
	return r
}

func newRow(typ string, t tally) Row {
	row := Row{
		Type:          typ,
		Support:       t.gold,
		Predicted:     t.pred,
		TruePositives: t.tp,
	}
	if t.pred > 0 {
		row.Precision = float64(t.tp) / float64(t.pred)
	}
	if t.gold > 0 {
		row.Recall = float64(t.tp) / float64(t.gold)
	}
	if row.Precision+row.Recall > 0 {
		row.F1 = 2 * row.Precision * row.Recall / (row.Precision + row.Recall)
	}
	return row
}
