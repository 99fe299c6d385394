// Package report renders evaluation results for people and machines.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	seqeval "github.com/jamesainslie/go-seqeval"
	"github.com/jamesainslie/go-seqeval/metrics"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("report: unknown format")

	// ErrOutputExists indicates the output file already exists and was left untouched.
	ErrOutputExists = errors.New("report: output file already exists")
)

// Meta describes where a result came from.
type Meta struct {
	GoldFile string
	PredFile string
}

// Document is the JSON form of a result.
type Document struct {
	RunID    string    `json:"run_id"`
	RunAt    time.Time `json:"run_at"`
	GoldFile string    `json:"gold_file,omitempty"`
	PredFile string    `json:"pred_file,omitempty"`
	*seqeval.Result
}

// Render writes res in the given format.
func Render(w io.Writer, format string, res *seqeval.Result, meta Meta) error {
	switch format {
	case FormatText, "":
		return Text(w, res)
	case FormatJSON:
		return JSON(w, res, meta)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text writes the two-section report: the confusion counts as indented
// JSON with sorted keys, followed by the span-level score table.
func Text(w io.Writer, res *seqeval.Result) error {
	perf, err := json.MarshalIndent(res.Confusion, "", "    ")
	if err != nil {
		return fmt.Errorf("encode confusion: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("\nPERFORMANCE:\n############\n    \n")
	buf.Write(perf)
	buf.WriteString("\n\nSCORES:\n#######\n\n")
	Scores(&buf, res.Report)
	buf.WriteString("\n")

	_, err = w.Write(buf.Bytes())
	return err
}

// Scores writes the classification table: one row per type, then the
// micro, macro and weighted averages.
func Scores(w io.Writer, r metrics.Report) {
	width := len(r.Weighted.Type)
	for _, row := range r.Rows {
		width = max(width, len(row.Type))
	}

	fmt.Fprintf(w, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	for _, row := range r.Rows {
		writeRow(w, width, row)
	}
	fmt.Fprintln(w)
	for _, row := range []metrics.Row{r.Micro, r.Macro, r.Weighted} {
		writeRow(w, width, row)
	}
}

func writeRow(w io.Writer, width int, row metrics.Row) {
	fmt.Fprintf(w, "%*s  %9.2f %9.2f %9.2f %9d\n", width, row.Type, row.Precision, row.Recall, row.F1, row.Support)
}

// JSON writes res as an indented Document with a fresh run ID.
func JSON(w io.Writer, res *seqeval.Result, meta Meta) error {
	doc := Document{
		RunID:    uuid.NewString(),
		RunAt:    time.Now().UTC(),
		GoldFile: meta.GoldFile,
		PredFile: meta.PredFile,
		Result:   res,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile renders into a new file at path. An existing file is never
// overwritten; ErrOutputExists is returned instead.
func WriteFile(path string, render func(io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return fmt.Errorf("create output: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
