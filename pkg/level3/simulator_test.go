package level3

import (
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

func newSimulator(seed int64) *Simulator {
	return NewSimulator(balloon.NewResolver(balloon.DefaultRanges(), seed), nil, 0, 0)
}

func TestProduceAccumulates(t *testing.T) {
	s := newSimulator(5)
	l3 := state.New().L3

	sum := 0
	for i := 0; i < 200; i++ {
		sum += s.Produce(&l3).Score
	}

	if l3.ProcessedCount != 200 {
		t.Errorf("processed = %d", l3.ProcessedCount)
	}
	if l3.TotalScore != sum || l3.Stats.TotalScore() != sum {
		t.Errorf("totalScore=%d stats=%d sum=%d", l3.TotalScore, l3.Stats.TotalScore(), sum)
	}
	totals := l3.Stats.Totals()
	if totals.Count != 200 {
		t.Errorf("count = %d", totals.Count)
	}
}

func TestProduceUsesSkewedRange(t *testing.T) {
	// At 40 degrees red [6,12] becomes [5,11]; 12 pumps always pop.
	s := NewSimulator(balloon.NewResolver(balloon.DefaultRanges(), 11), balloon.Weights{{Color: balloon.Red, Weight: 1}}, 0, 0)
	l3 := state.New().L3
	l3.Temperature = 40
	l3.Strategy[balloon.Red] = 12

	for i := 0; i < 50; i++ {
		out := s.Produce(&l3)
		if !out.Popped {
			t.Fatalf("12 pumps survived at 40 degrees: %+v", out)
		}
		if out.MaxPumps < 5 || out.MaxPumps > 11 {
			t.Fatalf("maxPumps %d outside [5,11]", out.MaxPumps)
		}
	}
}

func TestDriftStaysInRange(t *testing.T) {
	s := newSimulator(99)
	l3 := state.New().L3

	for _, start := range []int{0, 2, 20, 38, 40} {
		l3.Temperature = start
		for i := 0; i < 500; i++ {
			d := s.Drift(&l3)
			if d.To < state.MinTemperature || d.To > state.MaxTemperature {
				t.Fatalf("temperature %d out of range", d.To)
			}
			if diff := d.To - d.From; diff < -MaxDriftStep || diff > MaxDriftStep {
				t.Fatalf("drift step %d too large", diff)
			}
			if d.Insight.Temperature != d.To {
				t.Fatalf("insight for %d, temperature %d", d.Insight.Temperature, d.To)
			}
		}
	}
}

func TestDriftInterval(t *testing.T) {
	s := newSimulator(4)
	for i := 0; i < 200; i++ {
		d := s.DriftInterval()
		if d < DefaultDriftMin || d > DefaultDriftMax {
			t.Fatalf("interval %v outside [%v,%v]", d, DefaultDriftMin, DefaultDriftMax)
		}
		if d%time.Second != 0 {
			t.Fatalf("interval %v not whole seconds", d)
		}
	}

	fixed := NewSimulator(balloon.NewResolver(balloon.DefaultRanges(), 4), nil, 2*time.Second, 2*time.Second)
	if d := fixed.DriftInterval(); d != 2*time.Second {
		t.Errorf("fixed interval = %v", d)
	}
}

func TestSetTemperatureClamps(t *testing.T) {
	s := newSimulator(1)
	l3 := state.New().L3

	tests := []struct {
		in, want int
		band     Band
	}{
		{-10, 0, Frozen},
		{55, 40, Overheating},
		{22, 22, Neutral},
	}
	for _, tt := range tests {
		in := s.SetTemperature(&l3, tt.in)
		if l3.Temperature != tt.want || in.Band != tt.band {
			t.Errorf("SetTemperature(%d) = %d %s, want %d %s", tt.in, l3.Temperature, in.Band, tt.want, tt.band)
		}
	}
}

func TestReset(t *testing.T) {
	s := newSimulator(1)
	l3 := state.New().L3
	l3.Temperature = 33
	l3.Strategy[balloon.Green] = 1
	for i := 0; i < 10; i++ {
		s.Produce(&l3)
	}

	s.Reset(&l3)

	if l3.Temperature != state.DefaultTemperature || l3.TotalScore != 0 || l3.ProcessedCount != 0 {
		t.Errorf("reset state = %+v", l3)
	}
	if l3.Stats.Totals().Count != 0 {
		t.Error("stats not cleared")
	}
	if l3.Strategy[balloon.Green] != 12 {
		t.Error("strategy not restored")
	}
}

func TestSetStrategy(t *testing.T) {
	s := newSimulator(1)
	l3 := state.New().L3

	if err := s.SetStrategy(&l3, state.Strategy{balloon.Yellow: 9}); err != nil {
		t.Fatal(err)
	}
	if l3.Strategy[balloon.Yellow] != 9 || l3.Strategy[balloon.Red] != 8 {
		t.Errorf("strategy = %v", l3.Strategy)
	}
	if err := s.SetStrategy(&l3, state.Strategy{balloon.Yellow: -2}); !errors.Is(err, state.ErrInvalidStrategy) {
		t.Errorf("err = %v", err)
	}
}

func TestInsightBands(t *testing.T) {
	tests := []struct {
		t    int
		band Band
	}{
		{0, Frozen},
		{4, Frozen},
		{5, VeryCold},
		{9, VeryCold},
		{10, Cold},
		{15, Cool},
		{19, Cool},
		{20, Neutral},
		{24, Neutral},
		{25, Warm},
		{30, Hot},
		{34, Hot},
		{35, Overheating},
		{40, Overheating},
	}
	for _, tt := range tests {
		got := InsightFor(tt.t)
		if got.Band != tt.band {
			t.Errorf("InsightFor(%d) = %s, want %s", tt.t, got.Band, tt.band)
		}
		if got.Message == "" {
			t.Errorf("InsightFor(%d) has no message", tt.t)
		}
	}
}
