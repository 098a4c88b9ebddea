package game

import (
	"context"

	"github.com/AccelByte/extend-balloon-factory/pkg/level3"
	"github.com/AccelByte/extend-balloon-factory/pkg/metrics"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

// Level3Start starts production and weather drift. Starting twice is a no-op.
func (s *Session) Level3Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(3); err != nil {
		return err
	}
	started := s.startTask(s.l3Prod, "level3_production")
	s.startTask(s.l3Drift, "level3_drift")
	if started {
		s.log.Infof("level 3 started at %d degrees", s.state.L3.Temperature)
	}
	return nil
}

// Level3Stop halts production and drift.
func (s *Session) Level3Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(3); err != nil {
		return err
	}
	s.l3Prod.Stop()
	s.l3Drift.Stop()
	return s.saveLocked(ctx)
}

// Level3SetStrategy merges a strategy update; production may keep running.
func (s *Session) Level3SetStrategy(ctx context.Context, update state.Strategy) (state.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(3); err != nil {
		return nil, err
	}
	if err := s.deps.l3.SetStrategy(&s.state.L3, update); err != nil {
		return nil, err
	}
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return s.state.L3.Strategy.Clone(), nil
}

// Level3SetTemperature overrides the temperature, clamped to the allowed range.
func (s *Session) Level3SetTemperature(ctx context.Context, t int) (level3.Insight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(3); err != nil {
		return level3.Insight{}, err
	}
	s.insight = s.deps.l3.SetTemperature(&s.state.L3, t)
	metrics.Temperature.Observe(float64(s.state.L3.Temperature))
	if err := s.saveLocked(ctx); err != nil {
		return level3.Insight{}, err
	}
	return s.insight, nil
}

// Level3Reset stops production and restores the initial conditions.
func (s *Session) Level3Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(3); err != nil {
		return err
	}
	s.l3Prod.Stop()
	s.l3Drift.Stop()
	s.deps.l3.Reset(&s.state.L3)
	s.insight = level3.InsightFor(s.state.L3.Temperature)
	return s.saveLocked(ctx)
}

// Level3Status returns the live production state.
func (s *Session) Level3Status() (*Level3Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLevelLocked(3); err != nil {
		return nil, err
	}
	l3 := s.state.L3
	l3.Stats = l3.Stats.Clone()
	l3.Strategy = l3.Strategy.Clone()
	return &Level3Status{Level3View: s.level3ViewLocked(), State: l3}, nil
}

func (s *Session) level3ViewLocked() Level3View {
	return Level3View{
		Running:      s.l3Prod.Running(),
		Insight:      s.insight,
		TutorialStep: s.l3Tutorial,
	}
}

func (s *Session) productionTick(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}

	out := s.deps.l3.Produce(&s.state.L3)
	observe(3, out)
	_ = s.saveLocked(s.ctx)
	return true
}

func (s *Session) driftTick(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}

	d := s.deps.l3.Drift(&s.state.L3)
	s.insight = d.Insight
	metrics.Temperature.Observe(float64(d.To))
	if d.From != d.To {
		s.log.Debugf("temperature drifted %d -> %d (%s)", d.From, d.To, d.Insight.Band)
	}
	_ = s.saveLocked(s.ctx)
	return true
}
