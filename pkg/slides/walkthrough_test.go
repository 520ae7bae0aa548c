package slides_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/showcase/internal/testutils"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMount(clock *testutils.FakeClock) (deck.Mount, *atomic.Int32) {
	var n atomic.Int32
	return deck.Mount{Generation: 1, Clock: clock, Notify: func() { n.Add(1) }}, &n
}

func flowDef(wt domain.WalkthroughDef) domain.SlideDef {
	return domain.SlideDef{ID: "flow", Title: "Flow", Kind: domain.KindWalkthrough, Walkthrough: &wt}
}

func threeStepMode(name string) domain.ModeDef {
	return domain.ModeDef{
		Name: name,
		Diagram: domain.Diagram{
			Nodes: []domain.Node{
				{ID: "in", Label: "Input", X: 10, Y: 50},
				{ID: "plan", Label: "Planner", X: 50, Y: 50},
				{ID: "out", Label: "Output", X: 90, Y: 50},
				{ID: "mem", Label: "Memory", X: 50, Y: 90},
			},
			Edges: []domain.Edge{{From: "in", To: "plan"}, {From: "plan", To: "out"}},
		},
		Chain:       []string{"in", "plan", "out"},
		Annotations: map[string]string{"plan": "Breaks the goal into steps"},
		Details: map[string]domain.NodeDetail{
			"mem": {Question: "What does it remember?", Description: "Long-term state", Points: []string{"vector store"}},
		},
		Pros: []string{"simple"},
	}
}

func TestWalkthrough_ButtonProgression(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{Modes: []domain.ModeDef{threeStepMode("a")}}), m)
	defer w.Close()

	assert.Equal(t, "Run Flow", w.View().Button)

	labels := []string{"Next (1/3)", "Next (2/3)", "Reset", "Run Flow"}
	for _, want := range labels {
		require.NoError(t, w.Do(slides.ActionAdvance, ""))
		assert.Equal(t, want, w.View().Button)
	}
}

func TestWalkthrough_ViewCarriesStepAnnotation(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{Modes: []domain.ModeDef{threeStepMode("a")}}), m)
	defer w.Close()

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	require.NoError(t, w.Do(slides.ActionAdvance, ""))

	v := w.View()
	assert.Equal(t, "plan", v.Highlight.Current)
	assert.True(t, v.Highlight.IsActive("in"))
	assert.False(t, v.Highlight.IsActive("out"))
	assert.Equal(t, "Breaks the goal into steps", v.Annotation)
	require.Len(t, v.Sections, 1)
	assert.Equal(t, "Pros", v.Sections[0].Heading)
}

func TestWalkthrough_AutoStart(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, notified := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
		Modes:     []domain.ModeDef{threeStepMode("a")},
		AutoStart: true,
	}), m)
	defer w.Close()

	clock.Advance(399 * time.Millisecond)
	assert.Equal(t, -1, w.View().Sequence.Index)

	clock.Advance(time.Millisecond)
	snap := w.View().Sequence
	assert.Equal(t, 0, snap.Index)
	assert.True(t, snap.AutoPlaying)
	assert.Positive(t, notified.Load())

	clock.Advance(sequencer.DefaultInterval)
	assert.Equal(t, 1, w.View().Sequence.Index)
}

func TestWalkthrough_UserActionCancelsAutoStart(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
		Modes:     []domain.ModeDef{threeStepMode("a"), threeStepMode("b")},
		AutoStart: true,
	}), m)
	defer w.Close()

	require.NoError(t, w.Do(slides.ActionMode, "b"))
	clock.Advance(time.Second)
	assert.Equal(t, sequencer.StatusIdle, w.View().Sequence.Status)
}

func TestWalkthrough_ClickPolicies(t *testing.T) {
	t.Run("jump", func(t *testing.T) {
		clock := testutils.NewFakeClock()
		m, _ := newMount(clock)
		w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
			Modes: []domain.ModeDef{threeStepMode("a")},
			Click: domain.ClickJump,
		}), m)
		defer w.Close()

		w.Click("out")
		snap := w.View().Sequence
		assert.Equal(t, 2, snap.Index)
		assert.Equal(t, []string{"in", "plan", "out"}, snap.Active)

		// Nodes outside the chain fall back to focus.
		w.Click("mem")
		assert.Equal(t, "mem", w.View().Sequence.Focused)
	})

	t.Run("focus", func(t *testing.T) {
		clock := testutils.NewFakeClock()
		m, _ := newMount(clock)
		w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
			Modes: []domain.ModeDef{threeStepMode("a")},
			Click: domain.ClickFocus,
		}), m)
		defer w.Close()

		w.Click("mem")
		v := w.View()
		assert.Equal(t, sequencer.StatusFocused, v.Sequence.Status)
		require.NotNil(t, v.Detail)
		assert.Equal(t, "Memory", v.Detail.Title)
		assert.Equal(t, []string{"What does it remember?", "Long-term state", "- vector store"}, v.Detail.Lines)

		w.Click("mem")
		assert.Equal(t, sequencer.StatusIdle, w.View().Sequence.Status)
	})

	t.Run("unknown node", func(t *testing.T) {
		clock := testutils.NewFakeClock()
		m, _ := newMount(clock)
		w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{Modes: []domain.ModeDef{threeStepMode("a")}}), m)
		defer w.Close()

		assert.ErrorIs(t, w.Do(slides.ActionSelect, "ghost"), domain.ErrNodeNotFound)
	})
}

func TestWalkthrough_SwitchMode(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	second := threeStepMode("distributed")
	second.Chain = []string{"out", "in"}
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
		Modes: []domain.ModeDef{threeStepMode("centralized"), second},
	}), m)
	defer w.Close()

	require.NoError(t, w.Do(slides.ActionStart, ""))
	require.True(t, w.View().Sequence.AutoPlaying)

	require.NoError(t, w.SwitchMode("distributed"))
	v := w.View()
	assert.Equal(t, "distributed", v.Mode)
	assert.Equal(t, []string{"centralized", "distributed"}, v.Modes)
	assert.Equal(t, -1, v.Sequence.Index)
	assert.Equal(t, 2, v.Sequence.Length)
	assert.Zero(t, clock.Pending())

	require.NoError(t, w.SwitchMode(""))
	assert.Equal(t, "centralized", w.View().Mode)

	assert.ErrorIs(t, w.SwitchMode("hybrid"), domain.ErrModeNotFound)
}

func TestWalkthrough_IdleCycle(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
		Modes:     []domain.ModeDef{threeStepMode("a")},
		IdleCycle: true,
	}), m)
	defer w.Close()

	assert.Empty(t, w.View().Highlight.Current)

	clock.Advance(slides.DefaultIdleCycle)
	assert.Equal(t, "in", w.View().Highlight.Current)
	clock.Advance(slides.DefaultIdleCycle)
	assert.Equal(t, "plan", w.View().Highlight.Current)

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	assert.Equal(t, "in", w.View().Highlight.Current)
	clock.Advance(slides.DefaultIdleCycle)
	assert.Equal(t, "in", w.View().Highlight.Current, "cycle pauses while a run is shown")

	require.NoError(t, w.Do(slides.ActionReset, ""))
	assert.Empty(t, w.View().Highlight.Current)
	clock.Advance(slides.DefaultIdleCycle)
	assert.Equal(t, "in", w.View().Highlight.Current)
}

func TestWalkthrough_HandleKey(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{Modes: []domain.ModeDef{threeStepMode("a")}}), m)
	defer w.Close()

	assert.True(t, w.HandleKey("enter"))
	assert.Equal(t, 0, w.View().Sequence.Index)

	assert.True(t, w.HandleKey("4"))
	assert.Equal(t, "mem", w.View().Sequence.Focused)

	assert.False(t, w.HandleKey("9"))
	assert.False(t, w.HandleKey("x"), "walkthroughs have no decision gate")
	assert.False(t, w.HandleKey("z"))
}

func TestWalkthrough_CloseCancelsTimers(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, notified := newMount(clock)
	w := slides.NewWalkthrough(flowDef(domain.WalkthroughDef{
		Modes:     []domain.ModeDef{threeStepMode("a")},
		AutoStart: true,
		IdleCycle: true,
	}), m)
	require.Equal(t, 2, clock.Pending())

	w.Close()
	assert.Zero(t, clock.Pending())

	clock.Advance(10 * time.Second)
	assert.Zero(t, notified.Load())
}
