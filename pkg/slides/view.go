package slides

import (
	"time"

	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
)

// Action is a named interaction a host can send to a slide.
type Action string

const (
	ActionStart    Action = "start"
	ActionAdvance  Action = "advance"
	ActionReset    Action = "reset"
	ActionAutoPlay Action = "autoplay"
	ActionSelect   Action = "select"
	ActionMode     Action = "mode"
	ActionScenario Action = "scenario"
	ActionExecute  Action = "execute"
	ActionApprove  Action = "approve"
)

// Interactive is implemented by slides that accept actions.
type Interactive interface {
	Do(action Action, arg string) error
}

// ModeSwitcher is implemented by slides with more than one mode.
type ModeSwitcher interface {
	SwitchMode(name string) error
}

// ScenarioSwitcher is implemented by slides that replay on several scenarios.
type ScenarioSwitcher interface {
	SwitchScenario(key string) error
}

// Sequenced is implemented by slides driven by a step sequencer.
type Sequenced interface {
	Sequencer() *sequencer.Sequencer
}

// Viewer is implemented by every slide of this package.
type Viewer interface {
	View() View
}

// View is a renderer-neutral snapshot of a slide.
type View struct {
	SlideID string           `json:"slide_id"`
	Title   string           `json:"title"`
	Kind    domain.SlideKind `json:"kind"`
	Body    string           `json:"body,omitempty"`

	Mode     string   `json:"mode,omitempty"`
	Modes    []string `json:"modes,omitempty"`
	Scenario string   `json:"scenario,omitempty"`
	// ScenarioKey is the key SwitchScenario accepts for Scenario.
	ScenarioKey string   `json:"scenario_key,omitempty"`
	Scenarios   []string `json:"scenarios,omitempty"`

	Diagram   *domain.Diagram    `json:"diagram,omitempty"`
	Highlight diagram.Highlight  `json:"-"`
	Sequence  sequencer.Snapshot `json:"sequence"`

	Button     string    `json:"button,omitempty"`
	Annotation string    `json:"annotation,omitempty"`
	Narration  string    `json:"narration,omitempty"`
	Detail     *Detail   `json:"detail,omitempty"`
	Sections   []Section `json:"sections,omitempty"`
	Gate       *Gate     `json:"gate,omitempty"`
	Cards      []Card    `json:"cards,omitempty"`
	KPIs       []KPI     `json:"kpis,omitempty"`
}

// Detail is the side panel of a focused node.
type Detail struct {
	NodeID string   `json:"node_id"`
	Title  string   `json:"title"`
	Lines  []string `json:"lines"`
}

// Section is a titled list shown next to the diagram.
type Section struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Gate describes an open decision gate.
type Gate struct {
	Step    int      `json:"step"`
	Options []string `json:"options"`
	// AutoResolve is set when the gate resolves itself after Timeout.
	AutoResolve bool          `json:"auto_resolve"`
	Timeout     time.Duration `json:"timeout"`
}

// CardState is the presentation state of an agent card.
type CardState string

const (
	CardHidden  CardState = "hidden"
	CardIdle    CardState = "idle"
	CardPulse   CardState = "pulse"
	CardActive  CardState = "active"
	CardCurrent CardState = "current"
)

// Card is an agent (or manual step) card.
type Card struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	Sub    string    `json:"sub,omitempty"`
	State  CardState `json:"state"`
	Output string    `json:"output,omitempty"`
}

// Timing carries the tunable durations of the slides.
type Timing struct {
	Interval        time.Duration
	DecisionTimeout time.Duration
	AutoStartDelay  time.Duration
	IdleCycle       time.Duration
}

// Default timings.
const (
	DefaultAutoStartDelay = 400 * time.Millisecond
	DefaultIdleCycle      = 1800 * time.Millisecond

	entranceBase = 120 * time.Millisecond
	entranceStep = 80 * time.Millisecond
)

// DefaultTiming returns the timings the deck was authored with.
func DefaultTiming() Timing {
	return Timing{
		Interval:        sequencer.DefaultInterval,
		DecisionTimeout: sequencer.DefaultDecisionTimeout,
		AutoStartDelay:  DefaultAutoStartDelay,
		IdleCycle:       DefaultIdleCycle,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.Interval <= 0 {
		t.Interval = d.Interval
	}
	if t.DecisionTimeout <= 0 {
		t.DecisionTimeout = d.DecisionTimeout
	}
	if t.AutoStartDelay <= 0 {
		t.AutoStartDelay = d.AutoStartDelay
	}
	if t.IdleCycle <= 0 {
		t.IdleCycle = d.IdleCycle
	}
	return t
}

// EntranceDelay is how long after mount the i-th card appears.
func EntranceDelay(i int) time.Duration {
	return entranceBase + time.Duration(i)*entranceStep
}
