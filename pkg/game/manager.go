// Package game hosts player sessions and runs the level simulations.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/gameconfig"
	"github.com/AccelByte/extend-balloon-factory/pkg/level1"
	"github.com/AccelByte/extend-balloon-factory/pkg/level2"
	"github.com/AccelByte/extend-balloon-factory/pkg/level3"
	"github.com/AccelByte/extend-balloon-factory/pkg/metrics"
	"github.com/AccelByte/extend-balloon-factory/pkg/scheduler"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
	"github.com/sirupsen/logrus"
)

// Options configures a Manager.
type Options struct {
	Config *gameconfig.Config
	Store  state.Store
	// Seed for the shared random source; zero seeds from the clock.
	Seed int64
	// Notifier receives milestones; nil disables rewards.
	Notifier Notifier
	// IdleTTL evicts sessions that were not looked up for this long and have
	// no simulation running. Zero keeps sessions until Close.
	IdleTTL time.Duration
}

// engine is shared by every session of a manager.
type engine struct {
	config   *gameconfig.Config
	store    state.Store
	notifier Notifier
	l1       *level1.Sequencer
	l2       *level2.Simulator
	l3       *level3.Simulator
}

// Manager maps player IDs to sessions, loading state on first use.
type Manager struct {
	deps   *engine
	ctx    context.Context
	cancel context.CancelFunc

	idleTTL time.Duration
	now     func() time.Time
	janitor *scheduler.Task

	mu       sync.Mutex
	sessions map[string]*Session
	// lastUsed is the time of the latest lookup per player.
	lastUsed map[string]time.Time
	closed   bool
}

// NewManager creates a manager. Simulations run under ctx until Close.
func NewManager(ctx context.Context, opts Options) *Manager {
	cfg := opts.Config
	if cfg == nil {
		cfg = gameconfig.Default()
	}
	store := opts.Store
	if store == nil {
		store = state.NewMemoryStore()
	}

	resolver := balloon.NewResolver(cfg.Balloons, opts.Seed)
	ctx, cancel := context.WithCancel(ctx)

	m := &Manager{
		deps: &engine{
			config:   cfg,
			store:    store,
			notifier: opts.Notifier,
			l1:       level1.NewSequencer(cfg.Level1.Sequence, resolver),
			l2:       level2.NewSimulator(resolver, cfg.Level2.Weights, cfg.Level2.Target),
			l3:       level3.NewSimulator(resolver, cfg.Level3.Weights, cfg.Level3.DriftMin, cfg.Level3.DriftMax),
		},
		ctx:      ctx,
		cancel:   cancel,
		idleTTL:  opts.IdleTTL,
		now:      time.Now,
		sessions: make(map[string]*Session),
		lastUsed: make(map[string]time.Time),
	}

	if m.idleTTL > 0 {
		m.janitor = scheduler.NewTask("session-eviction", scheduler.Every(max(m.idleTTL/2, time.Millisecond)), func(ctx context.Context) bool {
			m.evictIdle(ctx)
			return true
		})
		m.janitor.Start(ctx)
	}
	return m
}

// Session returns the player's session, loading the stored state if needed.
// A corrupt document is logged and replaced by a fresh game.
func (m *Manager) Session(ctx context.Context, playerID string) (*Session, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: empty player ID", ErrInvalidInput)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if s, ok := m.sessions[playerID]; ok {
		m.lastUsed[playerID] = m.now()
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	st, err := m.deps.store.Load(ctx, playerID)
	if err != nil {
		if !errors.Is(err, state.ErrCorruptState) {
			metrics.StoreErrorsTotal.WithLabelValues("load").Inc()
			return nil, fmt.Errorf("load state: %w", err)
		}
		logrus.WithField("playerID", playerID).Warnf("discarding stored state: %v", err)
		st = state.New()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	// Another request may have loaded the same player meanwhile.
	if s, ok := m.sessions[playerID]; ok {
		m.lastUsed[playerID] = m.now()
		return s, nil
	}

	s := newSession(m.ctx, playerID, st, m.deps)
	m.sessions[playerID] = s
	m.lastUsed[playerID] = m.now()
	metrics.ActiveSessions.Inc()
	logrus.WithField("playerID", playerID).Debug("session loaded")
	return s, nil
}

// Close stops every simulation, waits for the tasks to exit and flushes state.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	m.cancel()
	if m.janitor != nil {
		m.janitor.Wait()
	}

	var errs []error
	for _, s := range sessions {
		s.Close()
		if err := s.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
		metrics.ActiveSessions.Dec()
	}
	logrus.Infof("game manager closed %d session(s)", len(sessions))
	return errors.Join(errs...)
}

// evictIdle flushes and drops every session idle for longer than the TTL.
// The state stays in the store and is reloaded on the next lookup.
func (m *Manager) evictIdle(ctx context.Context) int {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0
	}
	var idle []*Session
	for id, s := range m.sessions {
		if m.lastUsed[id].After(cutoff) || s.busy() {
			continue
		}
		idle = append(idle, s)
		delete(m.sessions, id)
		delete(m.lastUsed, id)
	}
	m.mu.Unlock()

	// The flush must finish even when Close cancels the sweep.
	ctx = context.WithoutCancel(ctx)
	for _, s := range idle {
		s.Close()
		if err := s.Flush(ctx); err != nil {
			s.log.Warnf("flush on eviction: %v", err)
		}
		metrics.ActiveSessions.Dec()
	}
	if len(idle) > 0 {
		logrus.Debugf("evicted %d idle session(s)", len(idle))
	}
	return len(idle)
}
