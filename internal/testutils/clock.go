package testutils

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/showcase/pkg/sequencer"
)

// FakeClock is a manual clock. Callbacks run synchronously inside Advance, in due order.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	due     time.Duration
	order   int
	fn      func()
	stopped bool
	fired   bool
}

// NewFakeClock returns a clock at time zero.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc implements sequencer.Clock.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) sequencer.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, due: c.now + d, order: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop implements sequencer.Timer.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, firing every timer that becomes due.
// Timers armed by a callback fire in the same call if they fall due within d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.due
		c.mu.Unlock()
		next.fn()
	}
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due == c.timers[j].due {
			return c.timers[i].order < c.timers[j].order
		}
		return c.timers[i].due < c.timers[j].due
	})
	if len(c.timers) == 0 || c.timers[0].due > target {
		return nil
	}
	return c.timers[0]
}

// Pending returns the number of timers that are armed and not yet fired.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the elapsed fake time.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
