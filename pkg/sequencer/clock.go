package sequencer

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}

type stillClock struct{}

func (stillClock) AfterFunc(time.Duration, func()) Timer { return stillTimer{} }

type stillTimer struct{}

func (stillTimer) Stop() bool { return true }

// StillClock returns a Clock whose callbacks never run. Slides mounted on it only
// change in response to explicit calls.
func StillClock() Clock {
	return stillClock{}
}

// Fire is the body of a scoped timer callback. It runs with the owner's lock held and
// may return a function to run after the lock is released (typically a notification).
type Fire func() (after func())

// ScopedTimer owns at most one pending callback.
// Arm and Cancel must be called with the owner's lock held. Each Arm or Cancel bumps a
// generation token; a callback only runs if its token is still current when it fires.
type ScopedTimer struct {
	clock Clock
	mu    sync.Locker
	timer Timer
	gen   uint64
}

// NewScopedTimer creates a timer handle guarded by mu.
func NewScopedTimer(clock Clock, mu sync.Locker) *ScopedTimer {
	if clock == nil {
		clock = RealClock()
	}
	return &ScopedTimer{clock: clock, mu: mu}
}

// Arm replaces any pending callback with f, due after d.
func (t *ScopedTimer) Arm(d time.Duration, f Fire) {
	t.stop()
	t.gen++
	gen := t.gen
	t.timer = t.clock.AfterFunc(d, func() {
		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		after := f()
		t.mu.Unlock()
		if after != nil {
			after()
		}
	})
}

// Cancel drops the pending callback, if any. Cancelling an idle timer is a no-op.
func (t *ScopedTimer) Cancel() {
	t.gen++
	t.stop()
}

// Pending reports whether a callback is armed.
func (t *ScopedTimer) Pending() bool {
	return t.timer != nil
}

func (t *ScopedTimer) stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
