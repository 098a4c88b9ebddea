package game

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/level1"
	"github.com/AccelByte/extend-balloon-factory/pkg/level3"
	"github.com/AccelByte/extend-balloon-factory/pkg/metrics"
	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/scheduler"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
	"github.com/sirupsen/logrus"
)

// Notifier receives milestones reached by players.
type Notifier interface {
	Notify(ctx context.Context, ev reward.Event)
}

// Session owns one player's game state. Every mutation, including
// simulation ticks, happens under the session mutex.
type Session struct {
	id   string
	deps *engine
	ctx  context.Context
	log  *logrus.Entry

	mu      sync.Mutex
	state   *state.GameState
	round   *level1.Round
	insight level3.Insight
	// Level 3 tutorial progress is not persisted.
	l3Tutorial int

	l2Task  *scheduler.Task
	l3Prod  *scheduler.Task
	l3Drift *scheduler.Task
}

func newSession(ctx context.Context, id string, st *state.GameState, deps *engine) *Session {
	s := &Session{
		id:      id,
		deps:    deps,
		ctx:     ctx,
		log:     logrus.WithField("playerID", id),
		state:   st,
		insight: level3.InsightFor(st.L3.Temperature),
	}

	s.l2Task = scheduler.NewTask("level2:"+id, scheduler.Every(deps.config.Level2.TickInterval), s.level2Tick)
	s.l3Prod = scheduler.NewTask("level3-production:"+id, scheduler.Every(deps.config.Level3.TickInterval), s.productionTick)
	s.l3Drift = scheduler.NewTask("level3-drift:"+id, deps.l3.DriftInterval, s.driftTick)
	return s
}

// ID returns the player ID.
func (s *Session) ID() string {
	return s.id
}

// View returns a snapshot of the whole game.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	return View{
		PlayerID: s.id,
		State:    s.state.Clone(),
		Level1: Level1View{
			Round:    copyRound(s.round),
			Length:   s.deps.l1.Len(),
			Finished: s.deps.l1.Finished(&s.state.L1),
		},
		Level2: Level2View{
			Running:  s.l2Task.Running(),
			Target:   s.deps.l2.Target(),
			Finished: s.deps.l2.Finished(&s.state.L2),
		},
		Level3: s.level3ViewLocked(),
	}
}

// SetTutorialStep records tutorial progress. Levels 1 and 2 are persisted,
// level 3 lives for the session only.
func (s *Session) SetTutorialStep(ctx context.Context, level, step int) error {
	if step < 0 {
		return fmt.Errorf("%w: tutorial step %d", ErrInvalidInput, step)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch level {
	case 1:
		s.state.Tutorial.L1 = step
	case 2:
		s.state.Tutorial.L2 = step
	case 3:
		s.l3Tutorial = step
		return nil
	default:
		return fmt.Errorf("%w: tutorial level %d", ErrInvalidInput, level)
	}
	return s.saveLocked(ctx)
}

// Leave stops the simulations of a level the player navigated away from.
func (s *Session) Leave(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch level {
	case 1:
	case 2:
		s.l2Task.Stop()
	case 3:
		s.l3Prod.Stop()
		s.l3Drift.Stop()
	default:
		return fmt.Errorf("%w: level %d", ErrInvalidInput, level)
	}
	s.log.Debugf("left level %d", level)
	return nil
}

// Reset stops every simulation, deletes the stored document and starts over.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTasksLocked()
	if err := s.deps.store.Delete(ctx, s.id); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("delete").Inc()
		return fmt.Errorf("delete state: %w", err)
	}

	s.state = state.New()
	s.round = nil
	s.l3Tutorial = 0
	s.insight = level3.InsightFor(s.state.L3.Temperature)
	s.log.Info("game reset")
	return nil
}

// Close stops every simulation and waits for the task goroutines to exit.
// It must not be called while holding the session lock.
func (s *Session) Close() {
	s.l2Task.Wait()
	s.l3Prod.Wait()
	s.l3Drift.Wait()
}

// Flush persists the current state.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

// busy reports whether any simulation is scheduled.
func (s *Session) busy() bool {
	return s.l2Task.Running() || s.l3Prod.Running() || s.l3Drift.Running()
}

func (s *Session) stopTasksLocked() {
	s.l2Task.Stop()
	s.l3Prod.Stop()
	s.l3Drift.Stop()
}

func (s *Session) startTask(t *scheduler.Task, label string) bool {
	if !t.Start(s.ctx) {
		return false
	}
	metrics.TaskStartsTotal.WithLabelValues(label).Inc()
	return true
}

func (s *Session) requireLevelLocked(level int) error {
	if s.state.UnlockedLevels < level {
		return fmt.Errorf("%w: level %d", ErrLevelLocked, level)
	}
	return nil
}

func (s *Session) saveLocked(ctx context.Context) error {
	if err := s.deps.store.Save(ctx, s.id, s.state); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("save").Inc()
		s.log.Errorf("failed to save state: %v", err)
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// notify hands milestones to the notifier. It is called without the session lock.
func (s *Session) notify(events []reward.Event) {
	if s.deps.notifier == nil {
		return
	}
	for _, ev := range events {
		s.deps.notifier.Notify(s.ctx, ev)
	}
}

func observe(level int, out balloon.Outcome) {
	metrics.BalloonsResolvedTotal.
		WithLabelValues(strconv.Itoa(level), string(out.Color), metrics.OutcomeLabel(out.Popped)).
		Inc()
}
