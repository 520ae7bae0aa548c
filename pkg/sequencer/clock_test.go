package sequencer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/showcase/internal/testutils"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/stretchr/testify/assert"
)

func TestScopedTimer(t *testing.T) {
	var mu sync.Mutex
	clock := testutils.NewFakeClock()
	timer := sequencer.NewScopedTimer(clock, &mu)

	fired := 0
	fire := func() func() {
		fired++
		return nil
	}

	t.Run("fires once", func(t *testing.T) {
		mu.Lock()
		timer.Arm(time.Second, fire)
		mu.Unlock()
		clock.Advance(time.Second)
		assert.Equal(t, 1, fired)
		assert.False(t, timer.Pending())
	})

	t.Run("re-arm supersedes", func(t *testing.T) {
		fired = 0
		mu.Lock()
		timer.Arm(time.Second, fire)
		timer.Arm(2*time.Second, fire)
		mu.Unlock()
		clock.Advance(3 * time.Second)
		assert.Equal(t, 1, fired)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		fired = 0
		mu.Lock()
		timer.Arm(time.Second, fire)
		timer.Cancel()
		timer.Cancel()
		mu.Unlock()
		clock.Advance(time.Minute)
		assert.Equal(t, 0, fired)
	})

	t.Run("after runs outside the lock", func(t *testing.T) {
		ran := false
		mu.Lock()
		timer.Arm(time.Second, func() func() {
			return func() {
				// Would deadlock if the lock were still held.
				mu.Lock()
				ran = true
				mu.Unlock()
			}
		})
		mu.Unlock()
		clock.Advance(time.Second)
		assert.True(t, ran)
	})
}

func TestRealClock(t *testing.T) {
	done := make(chan struct{})
	sequencer.RealClock().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real clock callback did not fire")
	}
}

func TestStillClock(t *testing.T) {
	var mu sync.Mutex
	timer := sequencer.NewScopedTimer(sequencer.StillClock(), &mu)

	fired := false
	mu.Lock()
	timer.Arm(0, func() func() {
		fired = true
		return nil
	})
	assert.True(t, timer.Pending())
	timer.Cancel()
	mu.Unlock()

	time.Sleep(5 * time.Millisecond)
	assert.False(t, fired)
}
