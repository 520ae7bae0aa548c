package slides

import (
	"slices"
	"sync"
	"time"

	"github.com/aretw0/showcase/pkg/sequencer"
)

// Cycler rotates an idle highlight across a fixed list of ids.
// The first id lights up one interval after Start.
type Cycler struct {
	mu       sync.Mutex
	ids      []string
	idx      int
	running  bool
	closed   bool
	interval time.Duration
	timer    *sequencer.ScopedTimer
	notify   func()
}

// NewCycler creates a stopped cycler. notify runs after every rotation, outside the lock.
func NewCycler(clock sequencer.Clock, interval time.Duration, notify func()) *Cycler {
	if interval <= 0 {
		interval = DefaultIdleCycle
	}
	c := &Cycler{idx: -1, interval: interval, notify: notify}
	c.timer = sequencer.NewScopedTimer(clock, &c.mu)
	return c
}

// Start begins rotating over ids. It is a no-op while already running.
func (c *Cycler) Start(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.running || len(ids) == 0 {
		return
	}
	c.ids = slices.Clone(ids)
	c.idx = -1
	c.running = true
	c.timer.Arm(c.interval, c.rotate)
}

// Stop halts the rotation and clears the highlight.
func (c *Cycler) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.Cancel()
	c.running = false
	c.idx = -1
}

// Close stops the cycler for good.
func (c *Cycler) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.Cancel()
	c.running = false
	c.closed = true
}

// Current returns the highlighted id, or "" before the first rotation.
func (c *Cycler) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idx < 0 || c.idx >= len(c.ids) {
		return ""
	}
	return c.ids[c.idx]
}

// Running reports whether the cycler is rotating.
func (c *Cycler) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Cycler) rotate() func() {
	if !c.running {
		return nil
	}
	c.idx = (c.idx + 1) % len(c.ids)
	c.timer.Arm(c.interval, c.rotate)
	return c.notify
}
