package sequencer

import (
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Status is the coarse state of a walkthrough.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFocused  Status = "focused"
	StatusGated    Status = "gated"
)

// Snapshot is an immutable view of a sequencer.
type Snapshot struct {
	Index       int      `json:"index"`
	Length      int      `json:"length"`
	AutoPlaying bool     `json:"auto_playing"`
	Focused     string   `json:"focused,omitempty"`
	Current     string   `json:"current,omitempty"`
	Active      []string `json:"active,omitempty"`
	Status      Status   `json:"status"`
	// GateOpen is set while the run is held at a gated step awaiting Resolve.
	GateOpen bool `json:"gate_open,omitempty"`
}

// IsActive reports whether id is in the active set of the snapshot.
func (s Snapshot) IsActive(id string) bool {
	return slices.Contains(s.Active, id)
}

// Sequencer walks a step chain. It is safe for concurrent use.
type Sequencer struct {
	mu sync.Mutex

	chain     []string
	index     int
	autoPlay  bool
	focused   string
	gateOpen  bool
	resolved  map[int]bool
	closed    bool
	interval  time.Duration
	gates     map[int]time.Duration
	clock     Clock
	stepTimer *ScopedTimer
	gateTimer *ScopedTimer
	onChange  func(Snapshot)
	logger    *slog.Logger
}

// New creates an idle sequencer over chain.
func New(chain []string, opts ...Option) *Sequencer {
	s := &Sequencer{
		chain:    slices.Clone(chain),
		index:    -1,
		resolved: make(map[int]bool),
		interval: DefaultInterval,
		gates:    make(map[int]time.Duration),
		clock:    RealClock(),
		logger:   defaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stepTimer = NewScopedTimer(s.clock, &s.mu)
	s.gateTimer = NewScopedTimer(s.clock, &s.mu)
	return s
}

// Start begins the walk at the first step, optionally auto-playing.
func (s *Sequencer) Start(autoPlay bool) {
	s.mutate(func() {
		s.cancelLocked()
		s.focused = ""
		s.clearGatesLocked()
		s.autoPlay = autoPlay
		if len(s.chain) == 0 {
			s.index = -1
			s.autoPlay = false
			return
		}
		s.index = 0
		s.rearmLocked()
	})
}

// Advance moves one step forward. Past the last step it wraps to idle; from idle it
// behaves like Start, keeping the current auto-play setting. At an unresolved gate it
// opens the gate instead of moving.
func (s *Sequencer) Advance() {
	s.mutate(s.advanceLocked)
}

// SelectNode focuses id alone, cancelling any run. Selecting the focused id again
// clears the focus.
func (s *Sequencer) SelectNode(id string) {
	s.mutate(func() {
		s.cancelLocked()
		s.autoPlay = false
		s.index = -1
		s.clearGatesLocked()
		if s.focused == id {
			s.focused = ""
			return
		}
		s.focused = id
	})
}

// JumpTo moves the run to the chain position of id.
// It reports false, and changes nothing, when id is not part of the chain.
func (s *Sequencer) JumpTo(id string) bool {
	ok := false
	s.mutate(func() {
		idx := slices.Index(s.chain, id)
		if idx < 0 {
			return
		}
		ok = true
		s.seekLocked(idx)
	})
	return ok
}

// Seek moves the run to step i. It reports false when i is outside the chain.
func (s *Sequencer) Seek(i int) bool {
	ok := false
	s.mutate(func() {
		if i < 0 || i >= len(s.chain) {
			return
		}
		ok = true
		s.seekLocked(i)
	})
	return ok
}

func (s *Sequencer) seekLocked(i int) {
	s.focused = ""
	s.gateOpen = false
	s.gateTimer.Cancel()
	s.index = i
	s.rearmLocked()
}

// SetAutoPlay turns auto-play on or off without moving.
// Turning it on while idle does nothing until the run starts.
func (s *Sequencer) SetAutoPlay(on bool) {
	s.mutate(func() {
		s.autoPlay = on
		if !on {
			s.cancelLocked()
			return
		}
		s.rearmLocked()
	})
}

// Resolve settles an open gate and continues from the step after it.
// It reports false when no gate is open.
func (s *Sequencer) Resolve() bool {
	ok := false
	s.mutate(func() {
		ok = s.resolveLocked()
	})
	return ok
}

// Reset returns to idle and cancels every pending timer.
func (s *Sequencer) Reset() {
	s.mutate(s.resetLocked)
}

// SwitchChain replaces the chain (a mode or scenario switch) and resets to idle.
func (s *Sequencer) SwitchChain(chain []string) {
	s.mutate(func() {
		s.resetLocked()
		s.chain = slices.Clone(chain)
	})
}

// Close cancels every pending timer. The sequencer ignores all later calls.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
}

// Snapshot returns the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ActiveSet returns the visited chain members, or the focused node alone.
func (s *Sequencer) ActiveSet() []string {
	return s.Snapshot().Active
}

// CurrentStep returns the chain member at the current index, else the focused node,
// else the empty string.
func (s *Sequencer) CurrentStep() string {
	return s.Snapshot().Current
}

// Pending reports whether an auto-play or gate timer is armed.
func (s *Sequencer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepTimer.Pending() || s.gateTimer.Pending()
}

// mutate runs fn under the lock and notifies the change listener afterwards.
func (s *Sequencer) mutate(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Sequencer) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}

func (s *Sequencer) advanceLocked() {
	if s.focused != "" {
		s.focused = ""
		s.index = -1
	}
	if len(s.chain) == 0 {
		return
	}
	if s.index >= 0 && s.gatedLocked(s.index) {
		s.openGateLocked()
		return
	}
	if s.index >= len(s.chain)-1 {
		s.resetLocked()
		return
	}
	s.index++
	s.rearmLocked()
}

// rearmLocked schedules the next automatic move for the current position.
func (s *Sequencer) rearmLocked() {
	s.stepTimer.Cancel()
	if !s.autoPlay || s.index < 0 {
		return
	}
	if s.index >= len(s.chain)-1 {
		s.autoPlay = false
		return
	}
	if s.gatedLocked(s.index) {
		s.openGateLocked()
		return
	}
	s.stepTimer.Arm(s.interval, s.tick)
}

func (s *Sequencer) tick() func() {
	if s.closed {
		return nil
	}
	s.logger.Debug("auto-play tick", "index", s.index)
	s.advanceLocked()
	snap := s.snapshotLocked()
	return func() { s.notify(snap) }
}

func (s *Sequencer) gatedLocked(step int) bool {
	_, ok := s.gates[step]
	return ok && !s.resolved[step]
}

func (s *Sequencer) openGateLocked() {
	s.stepTimer.Cancel()
	s.gateOpen = true
	timeout := s.gates[s.index]
	if s.autoPlay && timeout > 0 {
		s.gateTimer.Arm(timeout, func() func() {
			if s.closed || !s.resolveLocked() {
				return nil
			}
			snap := s.snapshotLocked()
			return func() { s.notify(snap) }
		})
	}
}

func (s *Sequencer) resolveLocked() bool {
	if !s.gateOpen {
		return false
	}
	s.gateTimer.Cancel()
	s.gateOpen = false
	s.resolved[s.index] = true
	s.index = min(s.index+1, len(s.chain)-1)
	s.rearmLocked()
	return true
}

func (s *Sequencer) resetLocked() {
	s.cancelLocked()
	s.index = -1
	s.autoPlay = false
	s.focused = ""
	s.clearGatesLocked()
}

func (s *Sequencer) clearGatesLocked() {
	s.gateOpen = false
	clear(s.resolved)
}

func (s *Sequencer) cancelLocked() {
	s.stepTimer.Cancel()
	s.gateTimer.Cancel()
}

func (s *Sequencer) snapshotLocked() Snapshot {
	snap := Snapshot{
		Index:       s.index,
		Length:      len(s.chain),
		AutoPlaying: s.autoPlay,
		Focused:     s.focused,
		GateOpen:    s.gateOpen,
	}

	idx := s.index
	if idx >= len(s.chain) {
		idx = len(s.chain) - 1
	}

	switch {
	case s.focused != "":
		snap.Status = StatusFocused
		snap.Current = s.focused
		snap.Active = []string{s.focused}
	case idx < 0:
		snap.Status = StatusIdle
	default:
		snap.Current = s.chain[idx]
		snap.Active = slices.Clone(s.chain[:idx+1])
		switch {
		case s.gateOpen:
			snap.Status = StatusGated
		case idx == len(s.chain)-1:
			snap.Status = StatusComplete
		default:
			snap.Status = StatusRunning
		}
	}
	return snap
}
