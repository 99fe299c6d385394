package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	seqeval "github.com/jamesainslie/go-seqeval"
	"github.com/jamesainslie/go-seqeval/internal/sweep"
)

func newSweepCmd(root *options) *cobra.Command {
	var minW, maxW, step int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare micro scores across window sizes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := *root
			cfg, logger, err := setup(cmd, o)
			if err != nil {
				return err
			}
			catalog, err := cfg.Catalog()
			if err != nil {
				return err
			}

			sizes := sweep.Windows(minW, maxW, step)
			if len(sizes) == 0 {
				return fmt.Errorf("empty sweep range: min=%d max=%d step=%d", minW, maxW, step)
			}

			pair, err := load(cmd.Context(), cfg, logger, o)
			if err != nil {
				return err
			}

			results, err := sweep.Run(pair.Gold, pair.Pred, catalog, sizes, seqeval.WithLogger(logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Window Sweep Results")
			fmt.Fprintln(w, strings.Repeat("-", 50))
			fmt.Fprintf(w, "%-8s %-8s %-8s %-8s %-8s\n", "Window", "Chunks", "Prec", "Rec", "F1")

			// Print sorted by window for readability
			for _, size := range sizes {
				for _, r := range results {
					if r.Window == size {
						fmt.Fprintf(w, "%-8d %-8d %-8.2f %-8.2f %-8.2f\n",
							r.Window, r.Windows, r.Micro.Precision, r.Micro.Recall, r.Micro.F1)
						break
					}
				}
			}

			fmt.Fprintln(w, strings.Repeat("-", 50))
			best := results[0]
			fmt.Fprintf(w, "Optimal: %d (F1: %.2f)\n", best.Window, best.Micro.F1)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&minW, "min", 5, "smallest window size")
	f.IntVar(&maxW, "max", 50, "largest window size")
	f.IntVar(&step, "step", 5, "window size step")
	return cmd
}
