package seqeval

import (
	"log/slog"

	"github.com/jamesainslie/go-seqeval/reshape"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	window int
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		window: reshape.DefaultWindow,
		logger: slog.Default(),
	}
}

// WithWindowSize sets the number of tokens per window (default: 20).
// Values below one are rejected by New.
func WithWindowSize(n int) Option {
	return func(c *config) {
		c.window = n
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
