// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New returns the state of a player who has never played.
func New() *GameState {
	return &GameState{
		SchemaVersion:  CurrentSchemaVersion,
		UnlockedLevels: 1,
		Tutorial:       Tutorial{},
		L1: Level1State{
			Stats:   NewStats(),
			History: []HistoryEntry{},
		},
		L2: Level2State{
			Stats:          NewStats(),
			Strategy:       DefaultStrategy(),
			PastStrategies: []StrategyRecord{},
		},
		L3: Level3State{
			Stats:       NewStats(),
			Strategy:    DefaultStrategy(),
			Temperature: DefaultTemperature,
		},
	}
}

// NewStats returns zeroed stats for every color.
func NewStats() Stats {
	s := make(Stats, len(balloon.Colors))
	for _, c := range balloon.Colors {
		s[c] = ColorStat{}
	}
	return s
}

// DefaultStrategy returns the pump counts levels 2 and 3 start with.
func DefaultStrategy() Strategy {
	return Strategy{
		balloon.Red:    8,
		balloon.Blue:   4,
		balloon.Green:  12,
		balloon.Yellow: 6,
	}
}

// Apply records a resolved balloon.
func (s Stats) Apply(out balloon.Outcome) {
	cs := s[out.Color]
	cs.Count++
	if out.Popped {
		cs.Pops++
	} else {
		cs.Score += out.Score
		cs.Pumps += out.Score
	}
	s[out.Color] = cs
}

// TotalScore sums the score of every color.
func (s Stats) TotalScore() int {
	total := 0
	for _, cs := range s {
		total += cs.Score
	}
	return total
}

// Totals sums all colors into a single ColorStat.
func (s Stats) Totals() ColorStat {
	var t ColorStat
	for _, cs := range s {
		t.Score += cs.Score
		t.Pops += cs.Pops
		t.Count += cs.Count
		t.Pumps += cs.Pumps
	}
	return t
}

// Clone returns a deep copy.
func (s Stats) Clone() Stats {
	c := make(Stats, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Clone returns a deep copy.
func (s Strategy) Clone() Strategy {
	c := make(Strategy, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Merge validates update and copies its entries over s.
// Colors missing from update keep their current value.
func (s Strategy) Merge(update Strategy) error {
	for c, pumps := range update {
		if !c.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidStrategy, balloon.ErrUnknownColor, string(c))
		}
		if pumps < 0 {
			return fmt.Errorf("%w: %s pumps must be >= 0, got %d", ErrInvalidStrategy, c, pumps)
		}
	}
	for c, pumps := range update {
		s[c] = pumps
	}
	return nil
}

// PushHistory adds entry at the front of the level 1 window and evicts the oldest beyond capacity.
func (l *Level1State) PushHistory(entry HistoryEntry) {
	l.History = append([]HistoryEntry{entry}, l.History...)
	if len(l.History) > HistoryCapacity {
		l.History = l.History[:HistoryCapacity]
	}
}

// PushStrategyRecord adds rec at the front and evicts the oldest beyond capacity.
func (l *Level2State) PushStrategyRecord(rec StrategyRecord) {
	l.PastStrategies = append([]StrategyRecord{rec}, l.PastStrategies...)
	if len(l.PastStrategies) > PastStrategiesCapacity {
		l.PastStrategies = l.PastStrategies[:PastStrategiesCapacity]
	}
}

// Unlock raises UnlockedLevels to level. It never lowers it.
// Returns true when a new level became available.
func (g *GameState) Unlock(level int) bool {
	if level > MaxLevel {
		level = MaxLevel
	}
	if level <= g.UnlockedLevels {
		return false
	}
	logrus.Debugf("unlocking level %d (was %d)", level, g.UnlockedLevels)
	g.UnlockedLevels = level
	return true
}

// Clone returns a deep copy that shares nothing with g.
func (g *GameState) Clone() *GameState {
	c := *g
	c.L1.Stats = g.L1.Stats.Clone()
	c.L1.History = append([]HistoryEntry{}, g.L1.History...)
	c.L2.Stats = g.L2.Stats.Clone()
	c.L2.Strategy = g.L2.Strategy.Clone()
	c.L2.PastStrategies = make([]StrategyRecord, len(g.L2.PastStrategies))
	for i, rec := range g.L2.PastStrategies {
		c.L2.PastStrategies[i] = rec.clone()
	}
	c.L3.Stats = g.L3.Stats.Clone()
	c.L3.Strategy = g.L3.Strategy.Clone()
	return &c
}

// ClampTemperature bounds t to [MinTemperature, MaxTemperature].
func ClampTemperature(t int) int {
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}

// NewStrategyRecord snapshots a strategy together with the stats it produced.
func NewStrategyRecord(now time.Time, strategy Strategy, stats Stats, processed int) StrategyRecord {
	rec := StrategyRecord{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Strategy:       strategy.Clone(),
		PerColor:       make(map[balloon.Color]ColorSummary, len(stats)),
		TotalProcessed: processed,
	}

	for c, cs := range stats {
		rec.PerColor[c] = ColorSummary{
			Count:    cs.Count,
			Pops:     cs.Pops,
			Score:    cs.Score,
			PopRate:  rate(cs.Pops, cs.Count),
			AvgScore: ratio(cs.Score, cs.Count),
		}
	}

	totals := stats.Totals()
	rec.OverallPopRate = rate(totals.Pops, totals.Count)
	rec.OverallAvgScore = ratio(totals.Score, totals.Count)
	return rec
}

func (r StrategyRecord) clone() StrategyRecord {
	c := r
	c.Strategy = r.Strategy.Clone()
	c.PerColor = make(map[balloon.Color]ColorSummary, len(r.PerColor))
	for k, v := range r.PerColor {
		c.PerColor[k] = v
	}
	return c
}

func rate(part, whole int) float64 {
	return ratio(part*100, whole)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
