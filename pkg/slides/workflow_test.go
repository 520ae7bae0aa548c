package slides_test

import (
	"testing"
	"time"

	"github.com/aretw0/showcase/internal/testutils"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapDef() domain.SlideDef {
	return domain.SlideDef{
		ID:    "workflow",
		Title: "Live AI Production Supervisor",
		Kind:  domain.KindWorkflow,
		Workflow: &domain.WorkflowDef{
			Scenarios: []domain.ScenarioDef{{Key: "battery", Label: "Battery Line"}, {Key: "cnc", Label: "CNC Machining"}},
			Agents: []domain.AgentDef{
				{ID: "monitor", Label: "Process Monitoring", Output: "anomaly_score: 0.91", LiveAction: "Analyzing sensor stream..."},
				{ID: "defect", Label: "Defect Intelligence"},
				{ID: "decision", Label: "Production Decision", Role: "Makes decisions", Context: []string{"Machine state", "Work order"}, Confidence: 87},
				{ID: "optimize", Label: "Line Optimization"},
				{ID: "quality", Label: "Quality Compliance"},
			},
			Without: []domain.StepDef{{Label: "Issue discovered"}, {Label: "Manual inspection"}, {Label: "Line stopped"}},
			Status:  []string{"Monitoring", "Dispatching", "Evaluating", "Executing", "Recording"},
			KPIs: []domain.KPIDef{
				{Label: "Scrap Risk", Without: 120000, Prefix: "$"},
				{Label: "Recall Exposure", Without: 1, Words: &domain.KPIWord{Pending: "Assessing...", Danger: "HIGH", Safe: "NONE"}},
				{Label: "OEE Impact", Without: -12, WithoutUnit: "%", With: 0.3, WithUnit: "%", Positive: true, Decimals: 1},
			},
			Timeline:     []domain.TimelineDef{{T: "T+0s", Label: "Anomaly detected"}, {T: "T+2s", Label: "Root cause"}},
			Approval:     []domain.ApprovalRule{{Level: "Low risk", Action: "Auto execute"}},
			Actions:      []domain.SystemAction{{Label: "MES updated", Step: 3}},
			GateStep:     2,
			RecoveryStep: 3,
			ManualNote:   "Manual process: 2+ hours total response time",
		},
	}
}

func TestWorkflow_ManualDecisionGate(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	assert.ErrorIs(t, w.Do(slides.ActionExecute, ""), domain.ErrGateClosed)

	for range 3 {
		require.NoError(t, w.Do(slides.ActionAdvance, ""))
	}
	v := w.View()
	assert.Equal(t, 2, v.Sequence.Index)
	assert.Nil(t, v.Gate)
	assert.Equal(t, "Evaluating", v.Narration)

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	v = w.View()
	assert.Equal(t, 2, v.Sequence.Index, "the gate holds the run")
	require.NotNil(t, v.Gate)
	assert.False(t, v.Gate.AutoResolve)
	assert.Equal(t, []string{"Execute", "Request approval"}, v.Gate.Options)
	assert.Equal(t, "Approval policy", v.Sections[0].Heading)

	require.NoError(t, w.Do(slides.ActionApprove, ""))
	v = w.View()
	assert.Equal(t, 3, v.Sequence.Index)
	assert.Nil(t, v.Gate)
	assert.ErrorIs(t, w.Do(slides.ActionExecute, ""), domain.ErrGateClosed)
}

func TestWorkflow_AutoPlayResolvesDecision(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	require.NoError(t, w.Do(slides.ActionStart, ""))
	clock.Advance(2 * sequencer.DefaultInterval)

	v := w.View()
	assert.Equal(t, 2, v.Sequence.Index)
	require.NotNil(t, v.Gate)
	assert.True(t, v.Gate.AutoResolve)
	assert.Equal(t, sequencer.DefaultDecisionTimeout, v.Gate.Timeout)

	clock.Advance(sequencer.DefaultDecisionTimeout)
	assert.Equal(t, 3, w.View().Sequence.Index)

	clock.Advance(sequencer.DefaultInterval)
	v = w.View()
	assert.Equal(t, sequencer.StatusComplete, v.Sequence.Status)
	assert.False(t, v.Sequence.AutoPlaying)
	assert.Equal(t, "Reset", v.Button)
	assert.Equal(t, "Outcome", v.Sections[len(v.Sections)-1].Heading)
}

func TestWorkflow_KPIs(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	values := func() []string {
		var out []string
		for _, k := range w.View().KPIs {
			out = append(out, k.Value)
		}
		return out
	}

	assert.Equal(t, []string{"--", "--", "--"}, values())

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	assert.Equal(t, []string{"$120,000", "Assessing...", "0.0%"}, values())
	assert.Equal(t, slides.ToneWarning, w.View().KPIs[1].Tone)

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	assert.Equal(t, "HIGH", values()[1])

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	require.NoError(t, w.Do(slides.ActionExecute, ""))
	kpis := w.View().KPIs
	assert.Equal(t, []string{"$0", "NONE", "0.3%"}, values())
	for _, k := range kpis {
		assert.Equal(t, slides.ToneSuccess, k.Tone)
	}

	require.NoError(t, w.SwitchMode(slides.ModeWithout))
	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	assert.Equal(t, []string{"$120,000", "HIGH", "-12.0%"}, values())
}

func TestWorkflow_ManualModeHasNoGate(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, notified := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	require.NoError(t, w.Do(slides.ActionMode, ""))
	assert.Positive(t, notified.Load())

	v := w.View()
	assert.Equal(t, slides.ModeWithout, v.Mode)
	require.Len(t, v.Cards, 3)
	assert.Equal(t, "Issue discovered", v.Cards[0].Label)

	for range 3 {
		require.NoError(t, w.Do(slides.ActionAdvance, ""))
	}
	v = w.View()
	assert.Equal(t, sequencer.StatusComplete, v.Sequence.Status)
	assert.Nil(t, v.Gate)
	assert.Equal(t, "Idle", v.Narration)

	timeline := v.Sections[0]
	assert.Equal(t, []string{"Manual process: 2+ hours total response time"}, timeline.Items)
}

func TestWorkflow_SwitchScenarioResets(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	require.NoError(t, w.Do(slides.ActionStart, ""))
	require.NoError(t, w.Do(slides.ActionScenario, "cnc"))

	v := w.View()
	assert.Equal(t, "CNC Machining", v.Scenario)
	assert.Equal(t, []string{"Battery Line", "CNC Machining"}, v.Scenarios)
	assert.Equal(t, -1, v.Sequence.Index)
	assert.False(t, v.Sequence.AutoPlaying)

	clock.Advance(sequencer.DefaultInterval)
	assert.Equal(t, -1, w.View().Sequence.Index, "the replaced run never ticks")

	require.NoError(t, w.SwitchScenario(""))
	assert.Equal(t, "Battery Line", w.View().Scenario)
	assert.ErrorIs(t, w.SwitchScenario("paint"), domain.ErrModeNotFound)
}

func TestWorkflow_CardsEnterInTurn(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	visible := func() int {
		n := 0
		for _, c := range w.View().Cards {
			if c.State != slides.CardHidden {
				n++
			}
		}
		return n
	}

	assert.Zero(t, visible())
	clock.Advance(slides.EntranceDelay(0))
	assert.Equal(t, 1, visible())
	clock.Advance(slides.EntranceDelay(2) - slides.EntranceDelay(0))
	assert.Equal(t, 3, visible())
	clock.Advance(time.Second)
	assert.Equal(t, 5, visible())
}

func TestWorkflow_IdlePulseAndSelection(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()

	clock.Advance(slides.DefaultIdleCycle)
	v := w.View()
	assert.Equal(t, slides.CardPulse, v.Cards[0].State)

	require.NoError(t, w.Do(slides.ActionSelect, "decision"))
	v = w.View()
	require.NotNil(t, v.Detail)
	assert.Equal(t, "Production Decision", v.Detail.Title)
	assert.Contains(t, v.Detail.Lines, "Context: Machine state, Work order")
	assert.Contains(t, v.Detail.Lines, "Confidence: 87%")
	assert.Equal(t, slides.CardCurrent, v.Cards[2].State)

	assert.ErrorIs(t, w.Do(slides.ActionSelect, "ghost"), domain.ErrNodeNotFound)
}

func TestWorkflow_CardOutputsFollowTheRun(t *testing.T) {
	clock := testutils.NewFakeClock()
	m, _ := newMount(clock)
	w := slides.NewWorkflow(scrapDef(), m)
	defer w.Close()
	clock.Advance(time.Second)

	require.NoError(t, w.Do(slides.ActionAdvance, ""))
	v := w.View()
	assert.Equal(t, slides.CardCurrent, v.Cards[0].State)
	assert.Equal(t, "anomaly_score: 0.91", v.Cards[0].Output)
	assert.Equal(t, "Analyzing sensor stream...", v.Annotation)
	assert.Equal(t, "Step 1/5", v.Button)
	assert.Equal(t, slides.CardIdle, v.Cards[1].State)
}
