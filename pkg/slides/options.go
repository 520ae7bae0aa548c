package slides

import (
	"io"
	"log/slog"
)

type config struct {
	timing Timing
	logger *slog.Logger
}

// Option configures an interactive slide.
type Option func(*config)

// WithTiming overrides the slide timings. Zero fields keep their defaults.
func WithTiming(t Timing) Option {
	return func(c *config) {
		c.timing = t
	}
}

// WithLogger sets the logger handed to the slide and its sequencer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&c)
	}
	c.timing = c.timing.withDefaults()
	return c
}
