package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/showcase/internal/logging"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/ports"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes commands per session and keeps snapshots in a store.
// Unused locks are dropped by reference counting.
type Manager struct {
	store   ports.SnapshotStore
	entries []deck.Entry

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	hooks   domain.LifecycleHooks
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks reports slide changes and step changes caused by commands.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithNow replaces the clock used for UpdatedAt.
func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager presenting entries.
func NewManager(store ports.SnapshotStore, entries []deck.Entry, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		entries: entries,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		now:     time.Now,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking it.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Entries returns the slides the sessions present.
func (m *Manager) Entries() []deck.Entry {
	return m.entries
}

// Create starts a session on the first slide.
func (m *Manager) Create(ctx context.Context) (*domain.Snapshot, error) {
	if len(m.entries) == 0 {
		return nil, fmt.Errorf("%w: empty deck", domain.ErrSlideNotFound)
	}
	id := uuid.NewString()
	snap := domain.NewSnapshot(id)
	snap.SlideID = m.entries[0].ID
	snap.UpdatedAt = m.now()

	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		ctrl, err := m.restore(snap)
		if err != nil {
			return err
		}
		defer ctrl.Close()
		snap = m.capture(ctrl, snap)
		return m.store.Save(ctx, id, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	m.logger.Info("session created", "session_id", id)
	return snap, nil
}

// Load retrieves a session snapshot.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// View renders the visible slide of a session.
func (m *Manager) View(ctx context.Context, sessionID string) (slides.View, *domain.Snapshot, error) {
	var (
		view slides.View
		snap *domain.Snapshot
	)
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		if snap, err = m.store.Load(ctx, sessionID); err != nil {
			return err
		}
		ctrl, err := m.restore(snap)
		if err != nil {
			return err
		}
		defer ctrl.Close()
		view = viewOf(ctrl)
		return nil
	})
	return view, snap, err
}

// Apply runs cmd on the session and persists the result. A failed command leaves
// the stored snapshot untouched.
func (m *Manager) Apply(ctx context.Context, sessionID string, cmd Command) (*domain.Snapshot, error) {
	_, out, err := m.Transition(ctx, sessionID, cmd)
	return out, err
}

// Transition is Apply returning the snapshot the command started from as well.
func (m *Manager) Transition(ctx context.Context, sessionID string, cmd Command) (before, after *domain.Snapshot, err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		snap, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		ctrl, err := m.restore(snap)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		if err := apply(ctrl, cmd); err != nil {
			return err
		}
		out := m.capture(ctrl, snap)
		if err := m.store.Save(ctx, sessionID, out); err != nil {
			return err
		}
		if !cmd.IsNavigation() && (out.Step != snap.Step || out.Current != snap.Current) {
			m.stepped(ctx, out)
		}
		before, after = snap, out
		return nil
	})
	if err != nil {
		m.logger.Debug("command rejected", "session_id", sessionID, "command", cmd.Name, "err", err)
		return nil, nil, err
	}
	return before, after, nil
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}
	return fn(ctx)
}

// restore rebuilds a controller showing snap. It replays the mode, scenario and
// step position onto the freshly mounted slide.
func (m *Manager) restore(snap *domain.Snapshot) (*deck.Controller, error) {
	if snap.SlideIndex < 0 || snap.SlideIndex >= len(m.entries) {
		return nil, fmt.Errorf("%w: index %d", domain.ErrSlideNotFound, snap.SlideIndex)
	}
	ctrl := deck.New(m.entries,
		deck.WithStartIndex(snap.SlideIndex),
		deck.WithClock(sequencer.StillClock()),
		deck.WithSettleDelay(0),
		deck.WithLifecycleHooks(m.hooks),
		deck.WithLogger(m.logger),
	)
	if err := replay(ctrl.Current(), snap); err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("failed to restore session %s: %w", snap.SessionID, err)
	}
	return ctrl, nil
}

func replay(slide deck.Slide, snap *domain.Snapshot) error {
	v, ok := slide.(slides.Viewer)
	if !ok {
		return nil
	}
	view := v.View()
	if snap.Mode != "" && snap.Mode != view.Mode {
		if s, ok := slide.(slides.ModeSwitcher); ok {
			if err := s.SwitchMode(snap.Mode); err != nil {
				return err
			}
		}
	}
	if snap.Scenario != "" && snap.Scenario != view.ScenarioKey {
		if s, ok := slide.(slides.ScenarioSwitcher); ok {
			if err := s.SwitchScenario(snap.Scenario); err != nil {
				return err
			}
		}
	}

	s, ok := slide.(slides.Sequenced)
	if !ok {
		return nil
	}
	seq := s.Sequencer()
	switch {
	case snap.Focused != "":
		seq.SelectNode(snap.Focused)
	case snap.Step >= 0:
		if !seq.Seek(snap.Step) {
			return fmt.Errorf("%w: step %d", domain.ErrNodeNotFound, snap.Step)
		}
		if snap.GateOpen {
			seq.Advance()
		}
	}
	return nil
}

// capture derives the next snapshot from ctrl. The deck generation restarts at zero
// for every restored controller, so it is added to the previous one.
func (m *Manager) capture(ctrl *deck.Controller, prev *domain.Snapshot) *domain.Snapshot {
	st := ctrl.State()
	out := &domain.Snapshot{
		SessionID:  prev.SessionID,
		SlideIndex: st.Index,
		SlideID:    st.SlideID,
		Generation: prev.Generation + st.Generation,
		Step:       -1,
		UpdatedAt:  m.now(),
	}
	slide := ctrl.Current()
	if v, ok := slide.(slides.Viewer); ok {
		view := v.View()
		out.Mode = view.Mode
		out.Scenario = view.ScenarioKey
	}
	if s, ok := slide.(slides.Sequenced); ok {
		seq := s.Sequencer().Snapshot()
		out.Step = seq.Index
		out.Focused = seq.Focused
		out.Current = seq.Current
		out.Active = seq.Active
		out.GateOpen = seq.GateOpen
	}
	return out
}

func (m *Manager) stepped(ctx context.Context, snap *domain.Snapshot) {
	if m.hooks.OnStep == nil {
		return
	}
	m.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: snap.UpdatedAt, Type: domain.EventStep},
		SlideID:   snap.SlideID,
		Step:      snap.Step,
		Current:   snap.Current,
	})
}

func viewOf(ctrl *deck.Controller) slides.View {
	if v, ok := ctrl.Current().(slides.Viewer); ok {
		return v.View()
	}
	st := ctrl.State()
	return slides.View{SlideID: st.SlideID, Title: st.Title}
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound)
}
