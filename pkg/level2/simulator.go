package level2

import (
	"errors"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

const (
	DefaultTarget       = 100
	DefaultTickInterval = 250 * time.Millisecond
)

// ErrLevelFinished indicates the batch already reached its target.
var ErrLevelFinished = errors.New("level 2 already finished")

// Completion is produced once the batch reaches its target.
type Completion struct {
	TotalScore int                  `json:"totalScore"`
	Record     state.StrategyRecord `json:"record"`
	Unlocked   bool                 `json:"unlocked"`
}

// StepResult describes one processed balloon.
type StepResult struct {
	Outcome        balloon.Outcome `json:"outcome"`
	ProcessedCount int             `json:"processedCount"`
	Completion     *Completion     `json:"completion,omitempty"`
}

// Simulator runs a fixed-size batch of balloons against the player's strategy.
type Simulator struct {
	resolver *balloon.Resolver
	weights  balloon.Weights
	target   int
	now      func() time.Time
}

// NewSimulator creates a batch simulator. Empty weights and a non-positive
// target fall back to the defaults.
func NewSimulator(resolver *balloon.Resolver, weights balloon.Weights, target int) *Simulator {
	if len(weights) == 0 {
		weights = balloon.DefaultWeights()
	}
	if target <= 0 {
		target = DefaultTarget
	}
	return &Simulator{
		resolver: resolver,
		weights:  weights,
		target:   target,
		now:      time.Now,
	}
}

func (s *Simulator) Target() int {
	return s.target
}

func (s *Simulator) Finished(l2 *state.Level2State) bool {
	return l2.ProcessedCount >= s.target
}

// SetStrategy merges a partial strategy update into the level 2 strategy.
func (s *Simulator) SetStrategy(l2 *state.Level2State, update state.Strategy) error {
	if l2.Strategy == nil {
		l2.Strategy = state.DefaultStrategy()
	}
	return l2.Strategy.Merge(update)
}

// Step picks and resolves one balloon. The step that reaches the target
// records a strategy snapshot and unlocks level 3.
func (s *Simulator) Step(g *state.GameState) (*StepResult, error) {
	l2 := &g.L2
	if s.Finished(l2) {
		return nil, ErrLevelFinished
	}

	c := s.resolver.Pick(s.weights)
	out := s.resolver.Resolve(c, l2.Strategy[c])
	l2.Stats.Apply(out)
	l2.ProcessedCount++

	res := &StepResult{Outcome: out, ProcessedCount: l2.ProcessedCount}
	if s.Finished(l2) {
		res.Completion = &Completion{
			TotalScore: l2.Stats.TotalScore(),
			Record:     s.Snapshot(l2),
			Unlocked:   g.Unlock(3),
		}
	}
	return res, nil
}

// SkipToEnd resolves every remaining balloon synchronously.
func (s *Simulator) SkipToEnd(g *state.GameState) (*Completion, error) {
	if s.Finished(&g.L2) {
		return nil, ErrLevelFinished
	}
	for {
		res, err := s.Step(g)
		if err != nil {
			return nil, err
		}
		if res.Completion != nil {
			return res.Completion, nil
		}
	}
}

// Snapshot records the current strategy and its results, newest first.
func (s *Simulator) Snapshot(l2 *state.Level2State) state.StrategyRecord {
	rec := state.NewStrategyRecord(s.now(), l2.Strategy, l2.Stats, l2.ProcessedCount)
	l2.PushStrategyRecord(rec)
	return rec
}

// Replay clears the batch results. Strategy and past strategies are kept.
func (s *Simulator) Replay(l2 *state.Level2State) {
	l2.Stats = state.NewStats()
	l2.ProcessedCount = 0
}
