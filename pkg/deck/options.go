package deck

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
)

// DefaultSettleDelay matches the slide entry animation.
const DefaultSettleDelay = 450 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock for the settle delay and for mounted slides.
func WithClock(c sequencer.Clock) Option {
	return func(d *Controller) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithSettleDelay sets how long navigation stays locked after a slide change.
func WithSettleDelay(delay time.Duration) Option {
	return func(d *Controller) {
		if delay >= 0 {
			d.settle = delay
		}
	}
}

// WithStartIndex mounts the given slide first, without a transition.
func WithStartIndex(i int) Option {
	return func(d *Controller) {
		d.index = i
	}
}

// WithOnChange registers a listener for controller and mounted-slide changes.
// It is called without the controller lock held.
func WithOnChange(fn func(State)) Option {
	return func(d *Controller) {
		d.onChange = fn
	}
}

// WithLifecycleHooks registers slide enter/leave hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Controller) {
		d.hooks = hooks
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Controller) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
