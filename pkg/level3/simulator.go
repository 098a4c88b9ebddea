package level3

import (
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

const (
	DefaultTickInterval = time.Second
	DefaultDriftMin     = 15 * time.Second
	DefaultDriftMax     = 60 * time.Second

	// MaxDriftStep bounds a single temperature change in either direction.
	MaxDriftStep = 5
)

// Drift is the outcome of one weather change.
type Drift struct {
	From    int     `json:"from"`
	To      int     `json:"to"`
	Insight Insight `json:"insight"`
}

// Simulator runs the endless production line whose pop ranges follow the temperature.
type Simulator struct {
	resolver *balloon.Resolver
	weights  balloon.Weights
	driftMin time.Duration
	driftMax time.Duration
}

// NewSimulator creates a production simulator. Empty weights fall back to the
// defaults, as does an invalid drift window.
func NewSimulator(resolver *balloon.Resolver, weights balloon.Weights, driftMin, driftMax time.Duration) *Simulator {
	if len(weights) == 0 {
		weights = balloon.DefaultWeights()
	}
	if driftMin <= 0 || driftMax < driftMin {
		driftMin, driftMax = DefaultDriftMin, DefaultDriftMax
	}
	return &Simulator{
		resolver: resolver,
		weights:  weights,
		driftMin: driftMin,
		driftMax: driftMax,
	}
}

// Produce resolves one balloon at the current temperature.
func (s *Simulator) Produce(l3 *state.Level3State) balloon.Outcome {
	c := s.resolver.Pick(s.weights)
	out := s.resolver.ResolveAt(c, l3.Strategy[c], l3.Temperature)
	l3.Stats.Apply(out)
	l3.TotalScore += out.Score
	l3.ProcessedCount++
	return out
}

// Drift moves the temperature by a random step and reports the new conditions.
func (s *Simulator) Drift(l3 *state.Level3State) Drift {
	from := l3.Temperature
	l3.Temperature = state.ClampTemperature(from + s.resolver.RandomInt(-MaxDriftStep, MaxDriftStep))
	return Drift{From: from, To: l3.Temperature, Insight: InsightFor(l3.Temperature)}
}

// DriftInterval draws the wait before the next weather change, at whole-second granularity.
func (s *Simulator) DriftInterval() time.Duration {
	lo, hi := int(s.driftMin/time.Second), int(s.driftMax/time.Second)
	if lo == hi {
		return s.driftMin
	}
	return time.Duration(s.resolver.RandomInt(lo, hi)) * time.Second
}

// SetStrategy merges a partial strategy update. Allowed while production runs.
func (s *Simulator) SetStrategy(l3 *state.Level3State, update state.Strategy) error {
	if l3.Strategy == nil {
		l3.Strategy = state.DefaultStrategy()
	}
	return l3.Strategy.Merge(update)
}

// SetTemperature overrides the temperature, clamped to the allowed range.
func (s *Simulator) SetTemperature(l3 *state.Level3State, t int) Insight {
	l3.Temperature = state.ClampTemperature(t)
	return InsightFor(l3.Temperature)
}

// Reset restores the production line to its initial conditions.
func (s *Simulator) Reset(l3 *state.Level3State) {
	*l3 = state.Level3State{
		Stats:       state.NewStats(),
		Strategy:    state.DefaultStrategy(),
		Temperature: state.DefaultTemperature,
	}
}
