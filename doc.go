// Package seqeval evaluates IOB2 sequence-labeling output against a gold
// standard.
//
// # Quick Start
//
//	catalog := iob.MustCatalog("Ort-Objekt", "Richtung")
//	ev, err := seqeval.New(catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gold, _ := tagtree.DecodeFile("true.json")
//	pred, _ := tagtree.DecodeFile("pred.json")
//
//	res, err := ev.Evaluate(gold, pred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Confusion.Get("TP_all"), res.Report.Micro.F1)
//
// # Pipeline
//
// Evaluate runs three stages. First, tagtree.Normalize reduces token
// records to labels and remaps UNK to O. Next, both inputs are flattened
// and re-chunked into windows of the configured size (default 20, see
// WithWindowSize). Finally, metrics.Count and metrics.Score compute
// token-level confusion counts and a strict span-level report.
//
// Gold and prediction must contain the same number of tokens. A mismatch
// fails with reshape.ErrLengthMismatch before any metric is computed.
//
// # Thread Safety
//
// An Evaluator holds only immutable configuration and is safe for
// concurrent use.
package seqeval
