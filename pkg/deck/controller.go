package deck

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
)

// State is a snapshot of the deck.
type State struct {
	Index            int    `json:"index"`
	Total            int    `json:"total"`
	Generation       uint64 `json:"generation"`
	Transitioning    bool   `json:"transitioning"`
	NavOpen          bool   `json:"nav_open"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	SlideID          string `json:"slide_id"`
	Title            string `json:"title"`
}

// Counter formats the position as "01/09".
func (s State) Counter() string {
	return fmt.Sprintf("%02d/%02d", s.Index+1, s.Total)
}

// Controller is the single source of truth for the visible slide.
type Controller struct {
	mu sync.Mutex

	entries          []Entry
	index            int
	generation       uint64
	transitioning    bool
	navOpen          bool
	sidebarCollapsed bool
	closed           bool

	mounted Slide
	settle  time.Duration
	clock   sequencer.Clock
	timer   *sequencer.ScopedTimer

	onChange func(State)
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// New creates a controller and mounts the first slide.
func New(entries []Entry, opts ...Option) *Controller {
	d := &Controller{
		entries: entries,
		settle:  DefaultSettleDelay,
		clock:   sequencer.RealClock(),
		logger:  defaultLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.index < 0 || d.index >= len(entries) {
		d.index = 0
	}
	d.timer = sequencer.NewScopedTimer(d.clock, &d.mu)
	if len(entries) > 0 {
		d.mountLocked()
	}
	return d
}

// GoTo shows slide i. It is a no-op while a transition settles, when i is the current
// slide, or when i is out of range. It reports whether the slide changed.
func (d *Controller) GoTo(i int) bool {
	d.mu.Lock()
	if d.closed || d.transitioning || i == d.index || i < 0 || i >= len(d.entries) {
		d.mu.Unlock()
		return false
	}

	leave := d.eventLocked(domain.EventSlideLeave)
	if d.mounted != nil {
		d.mounted.Close()
	}

	d.transitioning = true
	d.index = i
	d.generation++
	d.navOpen = false
	d.mountLocked()
	enter := d.eventLocked(domain.EventSlideEnter)

	d.timer.Arm(d.settle, func() func() {
		d.transitioning = false
		state := d.stateLocked()
		return func() { d.notify(state) }
	})

	state := d.stateLocked()
	d.mu.Unlock()

	d.logger.Debug("slide changed", "slide", state.SlideID, "index", i, "generation", state.Generation)
	ctx := context.Background()
	if d.hooks.OnSlideLeave != nil {
		d.hooks.OnSlideLeave(ctx, leave)
	}
	if d.hooks.OnSlideEnter != nil {
		d.hooks.OnSlideEnter(ctx, enter)
	}
	d.notify(state)
	return true
}

// Next shows the following slide; a no-op on the last one.
func (d *Controller) Next() bool {
	return d.GoTo(d.State().Index + 1)
}

// Previous shows the preceding slide; a no-op on the first one.
func (d *Controller) Previous() bool {
	return d.GoTo(d.State().Index - 1)
}

// First shows the first slide.
func (d *Controller) First() bool {
	return d.GoTo(0)
}

// Last shows the last slide.
func (d *Controller) Last() bool {
	return d.GoTo(len(d.entries) - 1)
}

// ToggleNav opens or closes the slide list overlay.
func (d *Controller) ToggleNav() {
	d.update(func() { d.navOpen = !d.navOpen })
}

// ToggleSidebar collapses or expands the slide sidebar.
func (d *Controller) ToggleSidebar() {
	d.update(func() { d.sidebarCollapsed = !d.sidebarCollapsed })
}

// State returns a snapshot of the deck.
func (d *Controller) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

// Current returns the mounted slide.
func (d *Controller) Current() Slide {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mounted
}

// Entries returns the registered slides.
func (d *Controller) Entries() []Entry {
	return d.entries
}

// Close unmounts the current slide and cancels the settle timer.
func (d *Controller) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.timer.Cancel()
	if d.mounted != nil {
		d.mounted.Close()
	}
}

func (d *Controller) mountLocked() {
	entry := d.entries[d.index]
	gen := d.generation
	d.mounted = entry.Factory(Mount{
		Generation: gen,
		Clock:      d.clock,
		Notify:     func() { d.slideChanged(gen) },
	})
}

// slideChanged forwards asynchronous slide updates, dropping those of unmounted slides.
func (d *Controller) slideChanged(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.generation {
		d.mu.Unlock()
		return
	}
	state := d.stateLocked()
	d.mu.Unlock()
	d.notify(state)
}

func (d *Controller) update(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	fn()
	state := d.stateLocked()
	d.mu.Unlock()
	d.notify(state)
}

func (d *Controller) notify(state State) {
	if d.onChange != nil {
		d.onChange(state)
	}
}

func (d *Controller) eventLocked(kind domain.EventType) *domain.SlideEvent {
	ev := &domain.SlideEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: kind},
		Index:      d.index,
		Generation: d.generation,
	}
	if d.mounted != nil {
		ev.SlideID = d.mounted.ID()
	}
	return ev
}

func (d *Controller) stateLocked() State {
	s := State{
		Index:            d.index,
		Total:            len(d.entries),
		Generation:       d.generation,
		Transitioning:    d.transitioning,
		NavOpen:          d.navOpen,
		SidebarCollapsed: d.sidebarCollapsed,
	}
	if d.index >= 0 && d.index < len(d.entries) {
		s.SlideID = d.entries[d.index].ID
		s.Title = d.entries[d.index].Title
	}
	return s
}
