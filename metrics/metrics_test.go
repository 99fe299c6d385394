package metrics

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/jamesainslie/go-seqeval/iob"
	"github.com/jamesainslie/go-seqeval/reshape"
)

func mustSequences(t *testing.T, gold, pred [][]string) Sequences {
	t.Helper()
	a, err := reshape.Regroup(gold, pred)
	if err != nil {
		t.Fatalf("Regroup() error = %v", err)
	}
	s, err := Parse(a)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func mustTags(t *testing.T, labels ...string) []iob.Tag {
	t.Helper()
	tags, err := iob.ParseSequence(labels)
	if err != nil {
		t.Fatalf("ParseSequence() error = %v", err)
	}
	return tags
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSpans(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []Span
	}{
		{
			name:   "single multi-token span",
			labels: []string{"O", "B-Ort", "I-Ort", "O"},
			want:   []Span{{"Ort", 1, 3}},
		},
		{
			name:   "adjacent begins of same type",
			labels: []string{"B-Richtung", "B-Richtung"},
			want:   []Span{{"Richtung", 0, 1}, {"Richtung", 1, 2}},
		},
		{
			name:   "dangling inside starts a span",
			labels: []string{"O", "I-Ort", "I-Ort"},
			want:   []Span{{"Ort", 1, 3}},
		},
		{
			name:   "type change ends span",
			labels: []string{"B-Ort", "I-Richtung", "I-Richtung"},
			want:   []Span{{"Ort", 0, 1}, {"Richtung", 1, 3}},
		},
		{
			name:   "span runs to end",
			labels: []string{"O", "B-Ort", "I-Ort"},
			want:   []Span{{"Ort", 1, 3}},
		},
		{
			name:   "all outside",
			labels: []string{"O", "O"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spans(mustTags(t, tt.labels...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Spans() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	catalog := iob.MustCatalog("Ort", "Richtung")

	tests := []struct {
		name string
		gold []string
		pred []string
		want map[string]int
	}{
		{
			name: "perfect match",
			gold: []string{"O", "B-Ort", "I-Ort", "O"},
			pred: []string{"O", "B-Ort", "I-Ort", "O"},
			want: map[string]int{
				"TP_all": 2, "FP_all": 0, "FN_all": 0, "TN": 2,
				"TP_Ort": 2, "FP_Ort": 0, "FN_Ort": 0,
				"TP_Richtung": 0, "FP_Richtung": 0, "FN_Richtung": 0,
			},
		},
		{
			name: "missed and spurious",
			gold: []string{"B-Ort", "I-Ort", "O", "O"},
			pred: []string{"B-Ort", "O", "B-Richtung", "O"},
			want: map[string]int{
				"TP_all": 1, "FP_all": 1, "FN_all": 1, "TN": 1,
				"TP_Ort": 1, "FP_Ort": 0, "FN_Ort": 1,
				"TP_Richtung": 0, "FP_Richtung": 1, "FN_Richtung": 0,
			},
		},
		{
			name: "type confusion counts against predicted type",
			gold: []string{"B-Ort"},
			pred: []string{"B-Richtung"},
			want: map[string]int{
				"TP_all": 0, "FP_all": 1, "FN_all": 0, "TN": 0,
				"TP_Ort": 0, "FP_Ort": 0, "FN_Ort": 0,
				"TP_Richtung": 0, "FP_Richtung": 1, "FN_Richtung": 0,
			},
		},
		{
			name: "uncatalogued type only hits aggregates",
			gold: []string{"B-Zeit", "O"},
			pred: []string{"B-Zeit", "I-Zeit"},
			want: map[string]int{
				"TP_all": 1, "FP_all": 1, "FN_all": 0, "TN": 0,
				"TP_Ort": 0, "FP_Ort": 0, "FN_Ort": 0,
				"TP_Richtung": 0, "FP_Richtung": 0, "FN_Richtung": 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSequences(t, [][]string{tt.gold}, [][]string{tt.pred})
			got := Count(s, catalog)
			if !reflect.DeepEqual(got.Map(), tt.want) {
				t.Errorf("Count() = %v, want %v", got.Map(), tt.want)
			}
			if got.Total() != len(tt.gold) {
				t.Errorf("Total() = %d, want %d", got.Total(), len(tt.gold))
			}
		})
	}
}

func TestCount_TotalMatchesTokens(t *testing.T) {
	labels := []string{"O", "B-Ort", "I-Ort", "B-Richtung", "I-Richtung", "I-Ort"}
	catalog := iob.MustCatalog("Ort")

	// Every gold/pred combination over a small alphabet.
	var gold, pred []string
	for _, g := range labels {
		for _, p := range labels {
			gold = append(gold, g)
			pred = append(pred, p)
		}
	}
	a, err := reshape.Align(gold, pred, 7)
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}
	s, err := Parse(a)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	c := Count(s, catalog)
	if c.Total() != len(gold) {
		t.Errorf("Total() = %d, want %d", c.Total(), len(gold))
	}
	if c.Get(KeyTN) != 1 {
		t.Errorf("TN = %d, want 1", c.Get(KeyTN))
	}
}

func TestConfusion_MarshalJSON(t *testing.T) {
	s := mustSequences(t, [][]string{{"O"}}, [][]string{{"O"}})
	data, err := json.Marshal(Count(s, iob.MustCatalog("Richtung")))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"FN_Richtung":0,"FN_all":0,"FP_Richtung":0,"FP_all":0,"TN":1,"TP_Richtung":0,"TP_all":0}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestConfusion_Keys(t *testing.T) {
	s := mustSequences(t, [][]string{{"O"}}, [][]string{{"O"}})
	c := Count(s, iob.MustCatalog("B", "A"))
	want := []string{"FN_A", "FN_B", "FN_all", "FP_A", "FP_B", "FP_all", "TN", "TP_A", "TP_B", "TP_all"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if _, ok := c.Lookup("TP_C"); ok {
		t.Error("Lookup() found key for uncatalogued type")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		gold    [][]string
		pred    [][]string
		typ     string
		wantP   float64
		wantR   float64
		wantF1  float64
		wantSup int
	}{
		{
			name:    "boundary mismatch is not a match",
			gold:    [][]string{{"O", "B-Ort-Objekt", "I-Ort-Objekt", "O"}},
			pred:    [][]string{{"O", "B-Ort-Objekt", "O", "O"}},
			typ:     "Ort-Objekt",
			wantP:   0,
			wantR:   0,
			wantF1:  0,
			wantSup: 1,
		},
		{
			name:    "adjacent spans both matched",
			gold:    [][]string{{"B-Richtung", "O", "B-Richtung"}},
			pred:    [][]string{{"B-Richtung", "O", "B-Richtung"}},
			typ:     "Richtung",
			wantP:   1,
			wantR:   1,
			wantF1:  1,
			wantSup: 2,
		},
		{
			name:    "half the predictions correct",
			gold:    [][]string{{"B-Ort", "O", "B-Ort", "O"}},
			pred:    [][]string{{"B-Ort", "O", "O", "B-Ort"}},
			typ:     "Ort",
			wantP:   0.5,
			wantR:   0.5,
			wantF1:  0.5,
			wantSup: 2,
		},
		{
			name:    "no predictions",
			gold:    [][]string{{"B-Ort", "I-Ort"}},
			pred:    [][]string{{"O", "O"}},
			typ:     "Ort",
			wantP:   0,
			wantR:   0,
			wantF1:  0,
			wantSup: 1,
		},
		{
			name:    "predicted type absent from gold",
			gold:    [][]string{{"O", "O"}},
			pred:    [][]string{{"B-Ort", "O"}},
			typ:     "Ort",
			wantP:   0,
			wantR:   0,
			wantF1:  0,
			wantSup: 0,
		},
		{
			name:    "same positions in other window do not match",
			gold:    [][]string{{"B-Ort", "O"}, {"O", "O"}},
			pred:    [][]string{{"O", "O"}, {"B-Ort", "O"}},
			typ:     "Ort",
			wantP:   0,
			wantR:   0,
			wantF1:  0,
			wantSup: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Score(mustSequences(t, tt.gold, tt.pred))
			row, ok := r.Row(tt.typ)
			if !ok {
				t.Fatalf("Row(%q) missing, rows = %+v", tt.typ, r.Rows)
			}
			if !approx(row.Precision, tt.wantP) || !approx(row.Recall, tt.wantR) || !approx(row.F1, tt.wantF1) {
				t.Errorf("P/R/F1 = %.3f/%.3f/%.3f, want %.3f/%.3f/%.3f",
					row.Precision, row.Recall, row.F1, tt.wantP, tt.wantR, tt.wantF1)
			}
			if row.Support != tt.wantSup {
				t.Errorf("Support = %d, want %d", row.Support, tt.wantSup)
			}
		})
	}
}

func TestScore_Identical(t *testing.T) {
	seq := [][]string{
		{"B-Ort", "I-Ort", "O", "B-Richtung"},
		{"I-Richtung", "O", "B-Bewegung-Licht", "B-Bewegung-Licht"},
	}
	r := Score(mustSequences(t, seq, seq))

	if len(r.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(r.Rows))
	}
	for _, row := range append(r.Rows, r.Micro, r.Macro, r.Weighted) {
		if !approx(row.Precision, 1) || !approx(row.Recall, 1) || !approx(row.F1, 1) {
			t.Errorf("%s: P/R/F1 = %v/%v/%v, want 1/1/1", row.Type, row.Precision, row.Recall, row.F1)
		}
	}
}

func TestScore_Averages(t *testing.T) {
	// Ort: 2 gold, 1 predicted, 1 match. Richtung: 1 gold, 2 predicted, 0 match.
	gold := [][]string{{"B-Ort", "O", "B-Ort", "O", "B-Richtung", "O"}}
	pred := [][]string{{"B-Ort", "O", "O", "B-Richtung", "I-Richtung", "B-Richtung"}}
	r := Score(mustSequences(t, gold, pred))

	wantTypes := []string{"Ort", "Richtung"}
	var gotTypes []string
	for _, row := range r.Rows {
		gotTypes = append(gotTypes, row.Type)
	}
	if !reflect.DeepEqual(gotTypes, wantTypes) {
		t.Fatalf("row types = %v, want %v", gotTypes, wantTypes)
	}

	// Micro: tp=1, pred=3, gold=3.
	if !approx(r.Micro.Precision, 1.0/3) || !approx(r.Micro.Recall, 1.0/3) {
		t.Errorf("micro P/R = %v/%v, want 1/3", r.Micro.Precision, r.Micro.Recall)
	}
	if r.Micro.Support != 3 {
		t.Errorf("micro support = %d, want 3", r.Micro.Support)
	}

	// Macro: Ort P=1 R=0.5, Richtung P=0 R=0.
	if !approx(r.Macro.Precision, 0.5) || !approx(r.Macro.Recall, 0.25) {
		t.Errorf("macro P/R = %v/%v, want 0.5/0.25", r.Macro.Precision, r.Macro.Recall)
	}

	// Weighted by support 2 and 1.
	if !approx(r.Weighted.Precision, 2.0/3) || !approx(r.Weighted.Recall, 1.0/3) {
		t.Errorf("weighted P/R = %v/%v, want 2/3 and 1/3", r.Weighted.Precision, r.Weighted.Recall)
	}
}

func TestScore_Empty(t *testing.T) {
	r := Score(Sequences{})
	if len(r.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(r.Rows))
	}
	if r.Micro.F1 != 0 || r.Macro.F1 != 0 || r.Weighted.F1 != 0 {
		t.Errorf("averages = %+v %+v %+v, want zeros", r.Micro, r.Macro, r.Weighted)
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(reshape.Aligned{Gold: [][]string{{"O", "X"}}, Pred: [][]string{{"O", "O"}}})
	if !errors.Is(err, iob.ErrInvalidLabel) {
		t.Errorf("invalid label error = %v, want ErrInvalidLabel", err)
	}

	_, err = Parse(reshape.Aligned{Gold: [][]string{{"O"}}, Pred: [][]string{{"O", "O"}}})
	if !errors.Is(err, ErrShape) {
		t.Errorf("shape error = %v, want ErrShape", err)
	}
}
