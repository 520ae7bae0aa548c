package sequencer

import (
	"io"
	"log/slog"
	"time"
)

// Default timings.
const (
	DefaultInterval        = 3000 * time.Millisecond
	DefaultDecisionTimeout = 3000 * time.Millisecond
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithClock sets the clock used for auto-play and gate timers.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithInterval sets the auto-play interval between steps.
func WithInterval(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithGate holds the run at step until Resolve is called.
// While auto-playing, the gate resolves itself after timeout; a zero timeout means the
// gate always waits for an explicit Resolve.
func WithGate(step int, timeout time.Duration) Option {
	return func(s *Sequencer) {
		s.gates[step] = timeout
	}
}

// WithOnChange registers a callback invoked after every state change.
// It is called without the sequencer lock held, so it may call back into the sequencer.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Sequencer) {
		s.onChange = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
