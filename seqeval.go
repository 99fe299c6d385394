package seqeval

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-seqeval/iob"
	"github.com/jamesainslie/go-seqeval/metrics"
	"github.com/jamesainslie/go-seqeval/reshape"
	"github.com/jamesainslie/go-seqeval/tagtree"
)

// Evaluator scores predicted IOB2 sequences against gold sequences.
// It is safe for concurrent use.
type Evaluator struct {
	catalog iob.Catalog
	window  int
	logger  *slog.Logger
}

// Result is the outcome of one evaluation run.
type Result struct {
	Window    int               `json:"window"` // 0 when the caller supplied the windows
	Tokens    int               `json:"tokens"`
	Windows   int               `json:"windows"`
	Confusion metrics.Confusion `json:"confusion"`
	Report    metrics.Report    `json:"report"`
}

// New creates an Evaluator for the given entity catalog.
func New(catalog iob.Catalog, opts ...Option) (*Evaluator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if cfg.window < 1 {
		return nil, fmt.Errorf("%w: got %d", reshape.ErrInvalidWindow, cfg.window)
	}

	return &Evaluator{
		catalog: catalog,
		window:  cfg.window,
		logger:  cfg.logger,
	}, nil
}

// Catalog returns the evaluator's entity catalog.
func (e *Evaluator) Catalog() iob.Catalog { return e.catalog }

// WindowSize returns the configured window size.
func (e *Evaluator) WindowSize() int { return e.window }

// Evaluate normalizes both trees, flattens them, re-chunks them into
// windows and scores the result. Inputs are not modified.
func (e *Evaluator) Evaluate(gold, pred *tagtree.Tree) (*Result, error) {
	if gold == nil || pred == nil {
		return nil, ErrNilInput
	}

	g := tagtree.Labels(tagtree.Normalize(gold))
	p := tagtree.Labels(tagtree.Normalize(pred))
	e.logger.Debug("normalized inputs", "gold_tokens", len(g), "pred_tokens", len(p))

	a, err := reshape.Align(g, p, e.window)
	if err != nil {
		return nil, err
	}

	res, err := e.score(a)
	if err != nil {
		return nil, err
	}
	res.Window = e.window
	return res, nil
}

// EvaluateLabels is Evaluate for callers that already hold label
// sequences. The given sentence boundaries are discarded and the labels
// re-chunked like any other input.
func (e *Evaluator) EvaluateLabels(gold, pred [][]string) (*Result, error) {
	return e.Evaluate(tagtree.FromLabels(gold), tagtree.FromLabels(pred))
}

// EvaluateWindows scores sequences whose boundaries are already known to
// agree, skipping re-chunking. Every gold sequence must have the same
// length as its predicted counterpart. UNK is remapped to O.
func (e *Evaluator) EvaluateWindows(gold, pred [][]string) (*Result, error) {
	a, err := reshape.Regroup(normalizeWindows(gold), normalizeWindows(pred))
	if err != nil {
		return nil, err
	}
	return e.score(a)
}

func normalizeWindows(windows [][]string) [][]string {
	t := tagtree.Normalize(tagtree.FromLabels(windows))
	return lo.Map(t.Children, func(c *tagtree.Tree, _ int) []string {
		return tagtree.Labels(c)
	})
}

func (e *Evaluator) score(a reshape.Aligned) (*Result, error) {
	seqs, err := metrics.Parse(a)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Tokens:    seqs.Tokens(),
		Windows:   len(seqs.Gold),
		Confusion: metrics.Count(seqs, e.catalog),
		Report:    metrics.Score(seqs),
	}

	e.logger.Debug("evaluation complete",
		"tokens", res.Tokens,
		"windows", res.Windows,
		"gold_spans", res.Report.Micro.Support,
		"pred_spans", res.Report.Micro.Predicted,
		"micro_f1", res.Report.Micro.F1,
	)
	return res, nil
}
