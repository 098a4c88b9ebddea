package balloon

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// NeutralTemperature is the level 3 temperature at which the pop range is not skewed.
const NeutralTemperature = 20

// Outcome is the result of resolving a single balloon.
type Outcome struct {
	Color    Color `json:"color"`
	Pumps    int   `json:"pumps"`
	MaxPumps int   `json:"maxPumps"`
	Popped   bool  `json:"popped"`
	Score    int   `json:"score"`
}

// Resolver draws hidden pop thresholds and resolves balloons against a pump count.
// It is safe for concurrent use.
type Resolver struct {
	mu     sync.Mutex
	rng    *rand.Rand
	ranges Ranges
}

// NewResolver creates a resolver over the given ranges.
// A zero seed seeds the generator from the current time.
func NewResolver(ranges Ranges, seed int64) *Resolver {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Resolver{
		rng:    rand.New(rand.NewSource(seed)),
		ranges: ranges,
	}
}

// Range returns the configured range for a color.
func (r *Resolver) Range(c Color) Range {
	return r.ranges[c]
}

// RandomInt returns a uniformly distributed integer in [min, max].
// When min >= max it returns min.
func (r *Resolver) RandomInt(min, max int) int {
	if min >= max {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Intn(max-min+1)
}

// Draw returns a hidden pop threshold for a color using the unskewed range.
func (r *Resolver) Draw(c Color) int {
	rg := r.ranges[c]
	return r.RandomInt(rg.Min, rg.Max)
}

// Resolve draws a threshold for the color and applies the strategy pump count.
// The balloon pops when strategyPumps exceeds the threshold.
func (r *Resolver) Resolve(c Color, strategyPumps int) Outcome {
	return settle(c, strategyPumps, r.Draw(c))
}

// ResolveAt is Resolve with the range skewed by the given temperature.
func (r *Resolver) ResolveAt(c Color, strategyPumps, temperature int) Outcome {
	rg := SkewRange(r.ranges[c], temperature)
	return settle(c, strategyPumps, r.RandomInt(rg.Min, rg.Max))
}

// Pick returns a color chosen according to the weights.
func (r *Resolver) Pick(ws Weights) Color {
	total := ws.Total()
	if total <= 0 {
		return Red
	}
	r.mu.Lock()
	n := r.rng.Intn(total)
	r.mu.Unlock()

	for _, w := range ws {
		if n < w.Weight {
			return w.Color
		}
		n -= w.Weight
	}
	return ws[len(ws)-1].Color
}

func settle(c Color, pumps, maxPumps int) Outcome {
	out := Outcome{Color: c, Pumps: pumps, MaxPumps: maxPumps}
	if pumps > maxPumps {
		out.Popped = true
		return out
	}
	out.Score = pumps
	return out
}

// SkewRange shifts a range by temperature. Hotter than neutral shrinks the
// range so balloons pop earlier, colder widens it. The result always keeps
// Min >= 1 and Max >= Min+1.
func SkewRange(rg Range, temperature int) Range {
	percentChange := roundHalfUp(float64(temperature-NeutralTemperature) / 2)
	factor := 1 - percentChange/100

	lo := maxInt(1, int(roundHalfUp(float64(rg.Min)*factor)))
	hi := maxInt(lo+1, int(roundHalfUp(float64(rg.Max)*factor)))
	return Range{Min: lo, Max: hi}
}

// roundHalfUp rounds .5 towards positive infinity, so -0.5 becomes 0.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
