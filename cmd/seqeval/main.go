package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	seqeval "github.com/jamesainslie/go-seqeval"
	"github.com/jamesainslie/go-seqeval/internal/config"
	"github.com/jamesainslie/go-seqeval/internal/corpus"
	"github.com/jamesainslie/go-seqeval/internal/report"
)

// Set via -ldflags by the stave build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	truePath   string
	predPath   string
	output     string
	configPath string
	format     string
	window     int
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "seqeval",
		Short: "Entity-wise precision, recall and F1 for IOB2 predictions",
		Long: `seqeval compares a gold-standard file with a prediction file, both in
IOB2, and prints token-level confusion counts and a strict span-level
classification report.

The gold file may be JSON or TEI/XML, and the prediction file must be JSON.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, o)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.truePath, "true", "", "path of the gold standard file (JSON or XML)")
	pf.StringVar(&o.predPath, "pred", "", "path of the prediction file (JSON)")
	pf.StringVar(&o.configPath, "config", "", "path of a YAML config file (default $"+config.EnvConfig+")")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkPersistentFlagRequired("true")
	_ = cmd.MarkPersistentFlagRequired("pred")

	f := cmd.Flags()
	f.StringVar(&o.output, "output", "", "file to save the result to (never overwritten)")
	f.StringVar(&o.format, "format", report.FormatText, "output format: text or json")
	f.IntVar(&o.window, "window", 0, "tokens per window (default from config, 20)")

	cmd.AddCommand(newSweepCmd(&o))
	return cmd
}

// setup resolves configuration (defaults, file, environment, flags) and
// builds the logger.
func setup(cmd *cobra.Command, o options) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("window") {
		cfg.Window = o.window
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return cfg, logger, nil
}

func load(ctx context.Context, cfg *config.Config, logger *slog.Logger, o options) (corpus.Pair, error) {
	l := &corpus.Loader{Config: cfg, Logger: logger}
	return l.LoadPair(ctx, o.truePath, o.predPath)
}

func runEvaluate(cmd *cobra.Command, o options) error {
	cfg, logger, err := setup(cmd, o)
	if err != nil {
		return err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	ev, err := seqeval.New(catalog, seqeval.WithWindowSize(cfg.Window), seqeval.WithLogger(logger))
	if err != nil {
		return err
	}

	pair, err := load(cmd.Context(), cfg, logger, o)
	if err != nil {
		return err
	}

	res, err := ev.Evaluate(pair.Gold, pair.Pred)
	if err != nil {
		return err
	}

	// Render once so the saved file is byte-identical to what was printed.
	var buf bytes.Buffer
	meta := report.Meta{GoldFile: o.truePath, PredFile: o.predPath}
	if err := report.Render(&buf, o.format, res, meta); err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}

	if o.output == "" {
		return nil
	}
	err = report.WriteFile(o.output, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
	switch {
	case errors.Is(err, report.ErrOutputExists):
		logger.Warn("output file already exists, result only printed", "path", o.output)
		return nil
	case err != nil:
		return err
	}
	abs, _ := filepath.Abs(o.output)
	logger.Info("results saved", "path", abs)
	return nil
}
