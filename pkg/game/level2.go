package game

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AccelByte/extend-balloon-factory/pkg/level2"
	"github.com/AccelByte/extend-balloon-factory/pkg/metrics"
	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

// Level2SetStrategy merges a strategy update. Not allowed while the batch runs.
func (s *Session) Level2SetStrategy(ctx context.Context, update state.Strategy) (state.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(2); err != nil {
		return nil, err
	}
	if s.l2Task.Running() {
		return nil, fmt.Errorf("%w: pause level 2 before changing the strategy", ErrRunning)
	}
	if err := s.deps.l2.SetStrategy(&s.state.L2, update); err != nil {
		return nil, err
	}
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return s.state.L2.Strategy.Clone(), nil
}

// Level2Start starts or resumes the batch. Starting a running batch is a no-op.
func (s *Session) Level2Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(2); err != nil {
		return err
	}
	if s.deps.l2.Finished(&s.state.L2) {
		return level2.ErrLevelFinished
	}
	if s.startTask(s.l2Task, "level2") {
		s.log.Infof("level 2 started at %d/%d", s.state.L2.ProcessedCount, s.deps.l2.Target())
	}
	return nil
}

// Level2Pause stops the batch and records the strategy used so far.
func (s *Session) Level2Pause(ctx context.Context) (*state.StrategyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(2); err != nil {
		return nil, err
	}
	if s.deps.l2.Finished(&s.state.L2) {
		return nil, level2.ErrLevelFinished
	}
	if !s.l2Task.Running() {
		return nil, ErrNotRunning
	}
	s.l2Task.Stop()

	rec := s.deps.l2.Snapshot(&s.state.L2)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	s.log.Infof("level 2 paused at %d/%d", s.state.L2.ProcessedCount, s.deps.l2.Target())
	return &rec, nil
}

// Level2SkipToEnd stops the batch and resolves the remaining balloons at once.
func (s *Session) Level2SkipToEnd(ctx context.Context) (*level2.Completion, error) {
	s.mu.Lock()

	if err := s.requireLevelLocked(2); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.l2Task.Stop()

	before := s.state.L2.ProcessedCount
	c, err := s.deps.l2.SkipToEnd(s.state)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.observeSkippedLocked(before)

	events := s.level2Events(c)
	if err := s.saveLocked(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.notify(events)
	return c, nil
}

// Level2Replay clears the batch results and keeps strategy and history.
func (s *Session) Level2Replay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(2); err != nil {
		return err
	}
	s.l2Task.Stop()
	s.deps.l2.Replay(&s.state.L2)
	return s.saveLocked(ctx)
}

func (s *Session) level2Tick(ctx context.Context) bool {
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return false
	}

	res, err := s.deps.l2.Step(s.state)
	if err != nil {
		s.mu.Unlock()
		s.log.Warnf("level 2 tick: %v", err)
		return false
	}
	observe(2, res.Outcome)

	var events []reward.Event
	if res.Completion != nil {
		// Stop while locked so no caller sees a finished batch as running.
		s.l2Task.Stop()
		events = s.level2Events(res.Completion)
	}
	_ = s.saveLocked(s.ctx)
	s.mu.Unlock()

	s.notify(events)
	return res.Completion == nil
}

// observeSkippedLocked counts the balloons resolved by a skip under a single label set.
func (s *Session) observeSkippedLocked(before int) {
	metrics.BalloonsResolvedTotal.WithLabelValues("2", "all", "skipped").Add(float64(s.state.L2.ProcessedCount - before))
}

func (s *Session) level2Events(c *level2.Completion) []reward.Event {
	metrics.LevelCompletionsTotal.WithLabelValues(strconv.Itoa(2)).Inc()
	s.log.WithField("score", c.TotalScore).Info("level 2 completed")

	events := []reward.Event{reward.NewEvent(reward.Level2Completed, s.id, 2, c.TotalScore)}
	if c.Unlocked {
		events = append(events, reward.NewEvent(reward.Level3Unlocked, s.id, 3, c.TotalScore))
	}
	return events
}
