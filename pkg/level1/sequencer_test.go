package level1

import (
	"errors"
	"testing"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

// fixedRanges makes every threshold deterministic.
func fixedRanges(n int) balloon.Ranges {
	rs := balloon.Ranges{}
	for _, c := range balloon.Colors {
		rs[c] = balloon.Range{Min: n, Max: n}
	}
	return rs
}

func newSequencer(threshold int) *Sequencer {
	return NewSequencer(nil, balloon.NewResolver(fixedRanges(threshold), 1))
}

// playRun cashes out every balloon after the given number of pumps.
func playRun(t *testing.T, s *Sequencer, g *state.GameState, pumps int) *Completion {
	t.Helper()
	r := s.Start(&g.L1)
	for {
		var res *Result
		var err error
		for i := 0; i < pumps && (res == nil || res.Outcome == nil); i++ {
			res, err = s.Pump(g, r)
			if err != nil {
				t.Fatalf("pump: %v", err)
			}
		}
		if res == nil || res.Outcome == nil {
			res, err = s.CashOut(g, r)
			if err != nil {
				t.Fatalf("cash out: %v", err)
			}
		}
		if res.Completion != nil {
			return res.Completion
		}
		r = res.Next
	}
}

func TestPumpPopsAboveThreshold(t *testing.T) {
	s := newSequencer(3)
	g := state.New()
	r := s.Start(&g.L1)

	for i := 1; i <= 3; i++ {
		res, err := s.Pump(g, r)
		if err != nil {
			t.Fatalf("pump %d: %v", i, err)
		}
		if res.Outcome != nil {
			t.Fatalf("pump %d resolved the balloon early", i)
		}
	}

	res, err := s.Pump(g, r)
	if err != nil {
		t.Fatalf("pump 4: %v", err)
	}
	if res.Outcome == nil || !res.Outcome.Popped {
		t.Fatalf("expected pop on pump 4, got %+v", res.Outcome)
	}
	if res.Outcome.Score != 0 {
		t.Errorf("popped score = %d, want 0", res.Outcome.Score)
	}

	cs := g.L1.Stats[balloon.Red]
	if cs.Pops != 1 || cs.Count != 1 || cs.Score != 0 {
		t.Errorf("red stats = %+v", cs)
	}
	if g.L1.BalloonIndex != 1 {
		t.Errorf("balloonIndex = %d, want 1", g.L1.BalloonIndex)
	}
	if res.Next == nil || res.Next.Color != balloon.Blue {
		t.Errorf("next balloon = %+v, want blue", res.Next)
	}
}

func TestCashOutScoresPumps(t *testing.T) {
	s := newSequencer(10)
	g := state.New()
	r := s.Start(&g.L1)

	for i := 0; i < 4; i++ {
		if _, err := s.Pump(g, r); err != nil {
			t.Fatal(err)
		}
	}
	res, err := s.CashOut(g, r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.Popped || res.Outcome.Score != 4 {
		t.Errorf("outcome = %+v", res.Outcome)
	}
	if g.L1.History[0] != (state.HistoryEntry{Color: balloon.Red, Pumps: 4}) {
		t.Errorf("history[0] = %+v", g.L1.History[0])
	}
}

func TestCashOutZeroPumps(t *testing.T) {
	s := newSequencer(10)
	g := state.New()
	r := s.Start(&g.L1)

	res, err := s.CashOut(g, r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.Popped || res.Outcome.Score != 0 {
		t.Errorf("outcome = %+v", res.Outcome)
	}
	if cs := g.L1.Stats[balloon.Red]; cs.Count != 1 || cs.Pops != 0 {
		t.Errorf("red stats = %+v", cs)
	}
}

func TestCompletionUnlocksLevel2(t *testing.T) {
	s := newSequencer(10)
	g := state.New()

	c := playRun(t, s, g, 5)

	if c.TotalScore != 5*len(DefaultSequence) {
		t.Errorf("total = %d", c.TotalScore)
	}
	if !c.NewBest || c.Review || !c.Unlocked {
		t.Errorf("completion = %+v", c)
	}
	if !g.L1.Completed || g.UnlockedLevels != 2 {
		t.Errorf("completed=%v unlocked=%d", g.L1.Completed, g.UnlockedLevels)
	}
	if len(g.L1.History) != state.HistoryCapacity {
		t.Errorf("history len = %d, want %d", len(g.L1.History), state.HistoryCapacity)
	}

	for _, c := range balloon.Colors {
		cs := g.L1.Stats[c]
		if cs.Count != cs.Pops+cs.Score/5 {
			t.Errorf("%s: count %d != pops %d + cash-outs", c, cs.Count, cs.Pops)
		}
	}

	if _, err := s.Pump(g, &Round{Index: g.L1.BalloonIndex}); !errors.Is(err, ErrLevelFinished) {
		t.Errorf("pump after finish: %v", err)
	}
}

func TestReplayKeepsBestScore(t *testing.T) {
	s := newSequencer(10)
	g := state.New()

	first := playRun(t, s, g, 6)

	second := playRun(t, s, g, 2)
	if !second.Review {
		t.Error("second run should be a review run")
	}
	if second.NewBest {
		t.Error("lower score must not be a new best")
	}
	if g.L1.BestScore != first.TotalScore {
		t.Errorf("bestScore = %d, want %d", g.L1.BestScore, first.TotalScore)
	}
	if second.Unlocked {
		t.Error("level 2 unlocked twice")
	}
}

func TestNewBestFlag(t *testing.T) {
	tests := []struct {
		name      string
		best      int
		completed bool
		pumps     int
		wantBest  int
		wantFlag  bool
	}{
		{"first run", 0, false, 1, 15, true},
		{"tie outside review", 15, false, 1, 15, true},
		{"higher in review", 15, true, 2, 30, false},
		{"lower outside review", 30, false, 1, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSequencer(10)
			g := state.New()
			g.L1.BestScore = tt.best
			g.L1.Completed = tt.completed

			c := playRun(t, s, g, tt.pumps)
			if c.BestScore != tt.wantBest {
				t.Errorf("bestScore = %d, want %d", c.BestScore, tt.wantBest)
			}
			if c.NewBest != tt.wantFlag {
				t.Errorf("newBest = %v, want %v", c.NewBest, tt.wantFlag)
			}
		})
	}
}

func TestStaleRound(t *testing.T) {
	s := newSequencer(10)
	g := state.New()
	r := s.Start(&g.L1)

	if _, err := s.CashOut(g, r); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Pump(g, r); !errors.Is(err, ErrNoBalloon) {
		t.Errorf("pump on resolved balloon: %v", err)
	}
	if _, err := s.CashOut(g, nil); !errors.Is(err, ErrNoBalloon) {
		t.Errorf("cash out without balloon: %v", err)
	}
}

func TestCustomSequence(t *testing.T) {
	s := NewSequencer([]balloon.Color{balloon.Green, balloon.Yellow}, balloon.NewResolver(fixedRanges(4), 1))
	g := state.New()

	c := playRun(t, s, g, 4)
	if c.TotalScore != 8 {
		t.Errorf("total = %d, want 8", c.TotalScore)
	}
	if s.Len() != 2 {
		t.Errorf("len = %d", s.Len())
	}
}
