package slides

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
)

// Workflow modes.
const (
	ModeWith    = "with"
	ModeWithout = "without"
)

const manualPrefix = "manual-"

// Gate options offered by the decision card.
var decisionOptions = []string{"Execute", "Request approval"}

// Workflow replays a production incident with or without agent supervision.
// Each mode or scenario switch replaces the sequencer, so the run restarts from idle.
type Workflow struct {
	mu       sync.Mutex
	def      domain.SlideDef
	wf       domain.WorkflowDef
	timing   Timing
	clock    sequencer.Clock
	scenario int
	manual   bool
	visible  int
	closed   bool

	seq    *sequencer.Sequencer
	cycle  *Cycler
	reveal *sequencer.ScopedTimer
	notify func()
	logger *slog.Logger
}

// NewWorkflow mounts a workflow slide. def.Workflow must be set.
func NewWorkflow(def domain.SlideDef, m deck.Mount, opts ...Option) *Workflow {
	cfg := newConfig(opts)
	w := &Workflow{
		def:    def,
		timing: cfg.timing,
		clock:  m.Clock,
		notify: m.Notify,
		logger: cfg.logger.With("slide", def.ID),
	}
	if def.Workflow != nil {
		w.wf = *def.Workflow
	}
	if w.notify == nil {
		w.notify = func() {}
	}
	w.cycle = NewCycler(m.Clock, cfg.timing.IdleCycle, w.notify)
	w.reveal = sequencer.NewScopedTimer(m.Clock, &w.mu)
	w.seq = w.newSequencerLocked()

	w.cycle.Start(w.cardIDsLocked())
	if len(w.wf.Agents) > 0 {
		w.mu.Lock()
		w.reveal.Arm(EntranceDelay(0), w.revealNext)
		w.mu.Unlock()
	}
	return w
}

func (w *Workflow) ID() string    { return w.def.ID }
func (w *Workflow) Title() string { return w.def.Title }

// Close stops the run, the card entrance and the idle cycle.
func (w *Workflow) Close() {
	w.mu.Lock()
	w.closed = true
	w.reveal.Cancel()
	seq := w.seq
	w.mu.Unlock()
	seq.Close()
	w.cycle.Close()
}

// Do implements Interactive.
func (w *Workflow) Do(action Action, arg string) error {
	seq := w.sequencer()
	switch action {
	case ActionStart:
		seq.Start(true)
	case ActionAdvance:
		seq.Advance()
	case ActionReset:
		seq.Reset()
	case ActionAutoPlay:
		snap := seq.Snapshot()
		if snap.Index < 0 {
			seq.Start(true)
			return nil
		}
		seq.SetAutoPlay(!snap.AutoPlaying)
	case ActionExecute, ActionApprove:
		if !seq.Resolve() {
			return domain.ErrGateClosed
		}
		w.logger.Info("decision resolved", "action", action)
	case ActionSelect:
		if !slices.Contains(w.cardIDs(), arg) {
			return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, arg)
		}
		seq.SelectNode(arg)
	case ActionMode:
		return w.SwitchMode(arg)
	case ActionScenario:
		return w.SwitchScenario(arg)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, action)
	}
	return nil
}

// SwitchMode selects ModeWith or ModeWithout; an empty name toggles.
func (w *Workflow) SwitchMode(name string) error {
	var manual bool
	switch name {
	case "":
		w.mu.Lock()
		manual = !w.manual
		w.mu.Unlock()
	case ModeWith:
	case ModeWithout:
		manual = true
	default:
		return fmt.Errorf("%w: %s", domain.ErrModeNotFound, name)
	}
	w.replace(func() { w.manual = manual })
	return nil
}

// SwitchScenario selects the scenario with key name; an empty name moves to the next one.
func (w *Workflow) SwitchScenario(name string) error {
	w.mu.Lock()
	next := 0
	if n := len(w.wf.Scenarios); n > 0 {
		next = (w.scenario + 1) % n
	}
	w.mu.Unlock()
	if name != "" {
		next = slices.IndexFunc(w.wf.Scenarios, func(s domain.ScenarioDef) bool { return s.Key == name })
		if next < 0 {
			return fmt.Errorf("%w: %s", domain.ErrModeNotFound, name)
		}
	}
	w.replace(func() { w.scenario = next })
	return nil
}

// Click selects an agent card. It satisfies diagram.ClickHandler.
func (w *Workflow) Click(id string) {
	if err := w.Do(ActionSelect, id); err != nil {
		w.logger.Debug("click ignored", "node", id, "err", err)
	}
}

// HandleKey implements deck.KeyHandler.
func (w *Workflow) HandleKey(key string) bool {
	return handleKey(w, w.cardIDs(), key)
}

// Sequencer returns the sequencer of the current mode.
func (w *Workflow) Sequencer() *sequencer.Sequencer {
	return w.sequencer()
}

// View implements Viewer.
func (w *Workflow) View() View {
	w.mu.Lock()
	manual := w.manual
	visible := w.visible
	var scenario domain.ScenarioDef
	if w.scenario < len(w.wf.Scenarios) {
		scenario = w.wf.Scenarios[w.scenario]
	}
	seq := w.seq
	d := w.diagramLocked()
	w.mu.Unlock()

	snap := seq.Snapshot()
	mode := ModeWith
	if manual {
		mode = ModeWithout
	}
	v := View{
		SlideID:     w.def.ID,
		Title:       w.def.Title,
		Kind:        domain.KindWorkflow,
		Body:        w.def.Body,
		Mode:        mode,
		Modes:       []string{ModeWith, ModeWithout},
		Scenario:    scenario.Label,
		ScenarioKey: scenario.Key,
		Diagram:     &d,
		Sequence:    snap,
		Highlight:   diagram.NewHighlight(snap.Active, snap.Current),
		Button:      workflowButton(snap),
		Narration:   "Idle",
	}
	for _, s := range w.wf.Scenarios {
		v.Scenarios = append(v.Scenarios, s.Label)
	}

	pulse := ""
	if snap.Status == sequencer.StatusIdle {
		pulse = w.cycle.Current()
	}
	v.Cards = w.cards(d, snap, pulse, manual, visible)

	if snap.Index >= 0 && !manual && snap.Index < len(w.wf.Status) {
		v.Narration = w.wf.Status[snap.Index]
	}
	if !manual && snap.Index >= 0 && snap.Index < len(w.wf.Agents) {
		v.Annotation = w.wf.Agents[snap.Index].LiveAction
	}
	if agent, ok := w.agent(snap.Focused); ok {
		v.Detail = agentDetail(agent)
	}
	for _, k := range w.wf.KPIs {
		v.KPIs = append(v.KPIs, kpiAt(k, snap.Index, manual, w.wf.RecoveryStep))
	}
	if snap.GateOpen {
		v.Gate = &Gate{
			Step:        snap.Index,
			Options:     decisionOptions,
			AutoResolve: snap.AutoPlaying,
			Timeout:     w.timing.DecisionTimeout,
		}
		v.Sections = append(v.Sections, w.approvalSection())
	}
	v.Sections = append(v.Sections, w.timelineSection(snap.Index, manual))
	if !manual && len(w.wf.Actions) > 0 {
		v.Sections = append(v.Sections, w.actionsSection(snap.Index))
	}
	if snap.Status == sequencer.StatusComplete {
		v.Sections = append(v.Sections, outcomeSection(v.KPIs))
	}
	return v
}

func workflowButton(snap sequencer.Snapshot) string {
	switch snap.Status {
	case sequencer.StatusComplete:
		return "Reset"
	case sequencer.StatusRunning, sequencer.StatusGated:
		return fmt.Sprintf("Step %d/%d", snap.Index+1, snap.Length)
	}
	return "Run"
}

// replace applies change and swaps in a fresh sequencer for the new mode or scenario.
func (w *Workflow) replace(change func()) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	old := w.seq
	change()
	w.seq = w.newSequencerLocked()
	ids := w.cardIDsLocked()
	w.mu.Unlock()

	old.Close()
	w.cycle.Stop()
	w.cycle.Start(ids)
	w.notify()
}

func (w *Workflow) newSequencerLocked() *sequencer.Sequencer {
	var seq *sequencer.Sequencer
	opts := []sequencer.Option{
		sequencer.WithClock(w.clock),
		sequencer.WithInterval(w.timing.Interval),
		sequencer.WithLogger(w.logger),
		sequencer.WithOnChange(func(snap sequencer.Snapshot) { w.sequenceChanged(seq, snap) }),
	}
	if !w.manual {
		opts = append(opts, sequencer.WithGate(w.wf.GateStep, w.timing.DecisionTimeout))
	}
	seq = sequencer.New(w.cardIDsLocked(), opts...)
	return seq
}

func (w *Workflow) sequenceChanged(from *sequencer.Sequencer, snap sequencer.Snapshot) {
	if w.sequencer() != from {
		return
	}
	if snap.Status == sequencer.StatusIdle {
		w.cycle.Start(w.cardIDs())
	} else {
		w.cycle.Stop()
	}
	w.notify()
}

// revealNext shows one more agent card and schedules the next.
func (w *Workflow) revealNext() func() {
	if w.closed {
		return nil
	}
	w.visible++
	if w.visible < len(w.wf.Agents) {
		w.reveal.Arm(entranceStep, w.revealNext)
	}
	return w.notify
}

func (w *Workflow) sequencer() *sequencer.Sequencer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq
}

func (w *Workflow) cardIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cardIDsLocked()
}

func (w *Workflow) cardIDsLocked() []string {
	if w.manual {
		ids := make([]string, len(w.wf.Without))
		for i := range w.wf.Without {
			ids[i] = manualPrefix + strconv.Itoa(i)
		}
		return ids
	}
	ids := make([]string, len(w.wf.Agents))
	for i, a := range w.wf.Agents {
		ids[i] = a.ID
	}
	return ids
}

// diagramLocked lays the cards of the current mode out as a left-to-right chain.
func (w *Workflow) diagramLocked() domain.Diagram {
	var d domain.Diagram
	ids := w.cardIDsLocked()
	for i, id := range ids {
		n := domain.Node{ID: id, X: spread(i, len(ids)), Y: 50, Category: domain.CategoryIO}
		if w.manual {
			n.Label, n.Sub = w.wf.Without[i].Label, w.wf.Without[i].Sub
		} else {
			a := w.wf.Agents[i]
			n.Label, n.Sub, n.Category, n.SampleOutput = a.Label, a.Sub, a.Category, a.Output
		}
		d.Nodes = append(d.Nodes, n)
		if i > 0 {
			d.Edges = append(d.Edges, domain.Edge{From: ids[i-1], To: id, Dashed: w.manual})
		}
	}
	return d
}

func spread(i, n int) float64 {
	if n <= 1 {
		return 50
	}
	return 10 + float64(i)*80/float64(n-1)
}

func (w *Workflow) cards(d domain.Diagram, snap sequencer.Snapshot, pulse string, manual bool, visible int) []Card {
	cards := make([]Card, len(d.Nodes))
	for i, n := range d.Nodes {
		c := Card{ID: n.ID, Label: n.Label, Sub: n.Sub, State: CardIdle}
		switch {
		case !manual && i >= visible:
			c.State = CardHidden
		case n.ID == snap.Current:
			c.State = CardCurrent
		case snap.IsActive(n.ID):
			c.State = CardActive
		case n.ID == pulse:
			c.State = CardPulse
		}
		if c.State == CardCurrent || c.State == CardActive {
			c.Output = n.SampleOutput
		}
		cards[i] = c
	}
	return cards
}

func (w *Workflow) agent(id string) (domain.AgentDef, bool) {
	if id == "" {
		return domain.AgentDef{}, false
	}
	i := slices.IndexFunc(w.wf.Agents, func(a domain.AgentDef) bool { return a.ID == id })
	if i < 0 {
		return domain.AgentDef{}, false
	}
	return w.wf.Agents[i], true
}

func agentDetail(a domain.AgentDef) *Detail {
	lines := []string{a.Role}
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Business value", a.Value)
	add("Input", a.Input)
	add("Output", a.Output)
	add("Context", strings.Join(a.Context, ", "))
	add("Analysis", a.Analysis)
	add("Contribution", a.Contribution)
	if a.Confidence > 0 {
		add("Confidence", strconv.Itoa(a.Confidence)+"%")
	}
	return &Detail{NodeID: a.ID, Title: a.Label, Lines: lines}
}

func (w *Workflow) approvalSection() Section {
	s := Section{Heading: "Approval policy"}
	for _, r := range w.wf.Approval {
		s.Items = append(s.Items, r.Level+": "+r.Action)
	}
	return s
}

func (w *Workflow) timelineSection(step int, manual bool) Section {
	s := Section{Heading: "Timeline"}
	if manual {
		if w.wf.ManualNote != "" {
			s.Items = []string{w.wf.ManualNote}
		}
		return s
	}
	for i, t := range w.wf.Timeline {
		s.Items = append(s.Items, checkbox(step >= i)+" "+t.T+" "+t.Label)
	}
	return s
}

func (w *Workflow) actionsSection(step int) Section {
	s := Section{Heading: "System actions"}
	for _, a := range w.wf.Actions {
		s.Items = append(s.Items, checkbox(step >= 0 && step >= a.Step)+" "+a.Label)
	}
	return s
}

func outcomeSection(kpis []KPI) Section {
	s := Section{Heading: "Outcome"}
	for _, k := range kpis {
		s.Items = append(s.Items, k.Label+": "+k.Value)
	}
	return s
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
