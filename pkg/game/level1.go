package game

import (
	"context"
	"strconv"

	"github.com/AccelByte/extend-balloon-factory/pkg/level1"
	"github.com/AccelByte/extend-balloon-factory/pkg/metrics"
	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

// Level1Start begins a new run, or a review run when level 1 was already completed.
func (s *Session) Level1Start(ctx context.Context) (*level1.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round = s.deps.l1.Start(&s.state.L1)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return copyRound(s.round), nil
}

// Level1Current returns the armed balloon, arming one if needed.
func (s *Session) Level1Current() (*level1.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.currentRoundLocked()
	if err != nil {
		return nil, err
	}
	return copyRound(r), nil
}

// Level1Pump pumps the armed balloon once.
func (s *Session) Level1Pump(ctx context.Context) (*level1.Result, error) {
	return s.level1Act(ctx, s.deps.l1.Pump)
}

// Level1CashOut banks the armed balloon.
func (s *Session) Level1CashOut(ctx context.Context) (*level1.Result, error) {
	return s.level1Act(ctx, s.deps.l1.CashOut)
}

func (s *Session) level1Act(ctx context.Context, act func(*state.GameState, *level1.Round) (*level1.Result, error)) (*level1.Result, error) {
	s.mu.Lock()

	r, err := s.currentRoundLocked()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	res, err := act(s.state, r)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	var events []reward.Event
	if res.Outcome != nil {
		observe(1, *res.Outcome)
		s.round = res.Next
		if res.Completion != nil {
			events = s.level1Events(res.Completion)
		}
		if err := s.saveLocked(ctx); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	out := copyResult(res)
	s.mu.Unlock()

	s.notify(events)
	return out, nil
}

// currentRoundLocked returns the armed balloon. A run resumed from storage
// gets a freshly drawn threshold at its saved position.
func (s *Session) currentRoundLocked() (*level1.Round, error) {
	if s.round != nil && s.round.Index == s.state.L1.BalloonIndex {
		return s.round, nil
	}
	r, err := s.deps.l1.Arm(&s.state.L1, s.state.L1.Completed)
	if err != nil {
		return nil, err
	}
	s.round = r
	return r, nil
}

func (s *Session) level1Events(c *level1.Completion) []reward.Event {
	metrics.LevelCompletionsTotal.WithLabelValues(strconv.Itoa(1)).Inc()
	s.log.WithField("score", c.TotalScore).Infof("level 1 completed (best %d, review %v)", c.BestScore, c.Review)

	events := []reward.Event{reward.NewEvent(reward.Level1Completed, s.id, 1, c.TotalScore)}
	if c.NewBest {
		events = append(events, reward.NewEvent(reward.Level1NewBest, s.id, 1, c.BestScore))
	}
	return events
}
