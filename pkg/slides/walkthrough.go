package slides

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
)

const defaultStartLabel = "Run Flow"

// Walkthrough is a diagram slide whose chain is stepped by a sequencer.
type Walkthrough struct {
	mu     sync.Mutex
	def    domain.SlideDef
	wt     domain.WalkthroughDef
	mode   int
	closed bool

	seq    *sequencer.Sequencer
	cycle  *Cycler
	kick   *sequencer.ScopedTimer
	notify func()
	logger *slog.Logger
}

// NewWalkthrough mounts a walkthrough slide. def.Walkthrough must be set.
func NewWalkthrough(def domain.SlideDef, m deck.Mount, opts ...Option) *Walkthrough {
	cfg := newConfig(opts)
	w := &Walkthrough{
		def:    def,
		notify: m.Notify,
		logger: cfg.logger.With("slide", def.ID),
	}
	if def.Walkthrough != nil {
		w.wt = *def.Walkthrough
	}
	if w.notify == nil {
		w.notify = func() {}
	}

	w.seq = sequencer.New(w.modeLocked().Chain,
		sequencer.WithClock(m.Clock),
		sequencer.WithInterval(cfg.timing.Interval),
		sequencer.WithLogger(w.logger),
		sequencer.WithOnChange(w.sequenceChanged),
	)
	w.cycle = NewCycler(m.Clock, cfg.timing.IdleCycle, w.notify)
	w.kick = sequencer.NewScopedTimer(m.Clock, &w.mu)

	if w.wt.IdleCycle {
		w.cycle.Start(nodeIDs(w.modeLocked().Diagram))
	}
	if w.wt.AutoStart {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.kick.Arm(cfg.timing.AutoStartDelay, func() func() {
			if w.closed {
				return nil
			}
			return func() { w.seq.Start(true) }
		})
	}
	return w
}

func (w *Walkthrough) ID() string    { return w.def.ID }
func (w *Walkthrough) Title() string { return w.def.Title }

// Close cancels the run, the idle cycle and any pending auto-start.
func (w *Walkthrough) Close() {
	w.mu.Lock()
	w.closed = true
	w.kick.Cancel()
	w.mu.Unlock()
	w.seq.Close()
	w.cycle.Close()
}

// Sequencer exposes the underlying step machine.
func (w *Walkthrough) Sequencer() *sequencer.Sequencer {
	return w.seq
}

// Click applies the slide's click policy to id. It satisfies diagram.ClickHandler.
func (w *Walkthrough) Click(id string) {
	if err := w.Do(ActionSelect, id); err != nil {
		w.logger.Debug("click ignored", "node", id, "err", err)
	}
}

// Do implements Interactive.
func (w *Walkthrough) Do(action Action, arg string) error {
	w.cancelKick()
	switch action {
	case ActionStart:
		w.seq.Start(true)
	case ActionAdvance:
		w.seq.Advance()
	case ActionReset:
		w.seq.Reset()
	case ActionAutoPlay:
		snap := w.seq.Snapshot()
		if snap.Index < 0 {
			w.seq.Start(true)
			return nil
		}
		w.seq.SetAutoPlay(!snap.AutoPlaying)
	case ActionSelect:
		return w.selectNode(arg)
	case ActionMode:
		return w.SwitchMode(arg)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, action)
	}
	return nil
}

// SwitchMode shows the named mode, or the next one when name is empty.
// The run restarts from idle.
func (w *Walkthrough) SwitchMode(name string) error {
	w.mu.Lock()
	next := (w.mode + 1) % len(w.modesLocked())
	if name != "" {
		next = slices.IndexFunc(w.modesLocked(), func(m domain.ModeDef) bool { return m.Name == name })
		if next < 0 {
			w.mu.Unlock()
			return fmt.Errorf("%w: %s", domain.ErrModeNotFound, name)
		}
	}
	w.mode = next
	mode := w.modeLocked()
	w.mu.Unlock()

	w.logger.Debug("mode switched", "mode", mode.Name)
	w.cycle.Stop()
	w.seq.SwitchChain(mode.Chain)
	return nil
}

func (w *Walkthrough) selectNode(id string) error {
	w.mu.Lock()
	mode := w.modeLocked()
	w.mu.Unlock()
	if _, ok := mode.Diagram.NodeByID(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	if w.wt.Click == domain.ClickJump && w.seq.JumpTo(id) {
		return nil
	}
	w.seq.SelectNode(id)
	return nil
}

// HandleKey implements deck.KeyHandler.
func (w *Walkthrough) HandleKey(key string) bool {
	w.mu.Lock()
	ids := nodeIDs(w.modeLocked().Diagram)
	w.mu.Unlock()
	return handleKey(w, ids, key)
}

// View implements Viewer.
func (w *Walkthrough) View() View {
	w.mu.Lock()
	mode := w.modeLocked()
	modes := make([]string, 0, len(w.modesLocked()))
	for _, m := range w.modesLocked() {
		modes = append(modes, m.Name)
	}
	w.mu.Unlock()

	snap := w.seq.Snapshot()
	d := mode.Diagram
	v := View{
		SlideID:   w.def.ID,
		Title:     w.def.Title,
		Kind:      domain.KindWalkthrough,
		Body:      w.def.Body,
		Mode:      mode.Name,
		Modes:     modes,
		Diagram:   &d,
		Sequence:  snap,
		Highlight: diagram.NewHighlight(snap.Active, snap.Current),
		Narration: mode.Description,
		Button:    w.buttonLabel(snap),
	}

	if pulse := w.cycle.Current(); pulse != "" && snap.Status == sequencer.StatusIdle {
		v.Highlight = diagram.NewHighlight([]string{pulse}, pulse)
	}
	if snap.Current != "" {
		v.Annotation = mode.Annotations[snap.Current]
		v.Detail = nodeDetail(d, mode.Details, snap.Current)
	}
	if len(mode.Pros) > 0 {
		v.Sections = append(v.Sections, Section{Heading: "Pros", Items: mode.Pros})
	}
	if len(mode.Cons) > 0 {
		v.Sections = append(v.Sections, Section{Heading: "Cons", Items: mode.Cons})
	}
	if mode.Complexity != "" || mode.Risk != "" {
		v.Sections = append(v.Sections, Section{Heading: "Profile", Items: []string{
			"Complexity: " + or(mode.Complexity, "-"),
			"Risk: " + or(mode.Risk, "-"),
		}})
	}
	if mode.WhenToUse != "" {
		v.Sections = append(v.Sections, Section{Heading: "When to use", Items: []string{mode.WhenToUse}})
	}
	return v
}

func (w *Walkthrough) buttonLabel(snap sequencer.Snapshot) string {
	switch snap.Status {
	case sequencer.StatusComplete:
		return "Reset"
	case sequencer.StatusRunning, sequencer.StatusGated:
		return fmt.Sprintf("Next (%d/%d)", snap.Index+1, snap.Length)
	}
	if w.wt.StartLabel != "" {
		return w.wt.StartLabel
	}
	return defaultStartLabel
}

// sequenceChanged keeps the idle cycle in step with the run and forwards the change.
func (w *Walkthrough) sequenceChanged(snap sequencer.Snapshot) {
	if w.wt.IdleCycle {
		if snap.Status == sequencer.StatusIdle {
			w.mu.Lock()
			ids := nodeIDs(w.modeLocked().Diagram)
			w.mu.Unlock()
			w.cycle.Start(ids)
		} else {
			w.cycle.Stop()
		}
	}
	w.notify()
}

func (w *Walkthrough) cancelKick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.kick.Cancel()
}

func (w *Walkthrough) modesLocked() []domain.ModeDef {
	if len(w.wt.Modes) == 0 {
		return []domain.ModeDef{{Name: "default"}}
	}
	return w.wt.Modes
}

func (w *Walkthrough) modeLocked() domain.ModeDef {
	return w.modesLocked()[w.mode]
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func nodeIDs(d domain.Diagram) []string {
	ids := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func nodeDetail(d domain.Diagram, details map[string]domain.NodeDetail, id string) *Detail {
	info, ok := details[id]
	if !ok {
		return nil
	}
	title := id
	if n, ok := d.NodeByID(id); ok {
		title = n.Label
	}
	var lines []string
	if info.Question != "" {
		lines = append(lines, info.Question)
	}
	lines = append(lines, info.Description)
	for _, p := range info.Points {
		lines = append(lines, "- "+p)
	}
	return &Detail{NodeID: id, Title: title, Lines: lines}
}
