package slides_test

import (
	"testing"
	"time"

	"github.com/aretw0/showcase/internal/testutils"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/stretchr/testify/assert"
)

func TestCycler(t *testing.T) {
	clock := testutils.NewFakeClock()
	ticks := 0
	c := slides.NewCycler(clock, time.Second, func() { ticks++ })

	c.Start([]string{"a", "b"})
	c.Start([]string{"x"})
	assert.True(t, c.Running())
	assert.Empty(t, c.Current())

	clock.Advance(time.Second)
	assert.Equal(t, "a", c.Current())
	clock.Advance(2 * time.Second)
	assert.Equal(t, "a", c.Current(), "wraps around")
	assert.Equal(t, 3, ticks)

	c.Stop()
	assert.Empty(t, c.Current())
	assert.Zero(t, clock.Pending())

	c.Close()
	c.Start([]string{"a"})
	assert.False(t, c.Running())
}

func TestEntranceDelay(t *testing.T) {
	assert.Equal(t, 120*time.Millisecond, slides.EntranceDelay(0))
	assert.Equal(t, 440*time.Millisecond, slides.EntranceDelay(4))
}
