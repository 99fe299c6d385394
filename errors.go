package seqeval

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
// Input errors raised by the pipeline stages are wrapped and can be tested
// with errors.Is against tagtree.ErrStructure, iob.ErrInvalidLabel,
// reshape.ErrLengthMismatch and reshape.ErrInvalidWindow.
var (
	// ErrEmptyCatalog indicates an evaluator was built without entity types.
	ErrEmptyCatalog = errors.New("seqeval: entity catalog is empty")

	// ErrNilInput indicates a nil gold or prediction tree.
	ErrNilInput = errors.New("seqeval: nil input")
)
