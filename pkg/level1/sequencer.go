package level1

import (
	"errors"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

var (
	// ErrLevelFinished indicates every balloon in the sequence has been resolved.
	ErrLevelFinished = errors.New("level 1 already finished")

	// ErrNoBalloon indicates an action on a balloon that was never armed.
	ErrNoBalloon = errors.New("no balloon armed")
)

// DefaultSequence is the fixed order in which level 1 balloons arrive.
var DefaultSequence = []balloon.Color{
	balloon.Red, balloon.Blue, balloon.Green, balloon.Yellow, balloon.Red,
	balloon.Green, balloon.Blue, balloon.Yellow, balloon.Red, balloon.Blue,
	balloon.Green, balloon.Red, balloon.Yellow, balloon.Blue, balloon.Green,
}

// Round is the balloon currently in front of the player.
// Its threshold is hidden until the balloon is resolved.
type Round struct {
	Index        int           `json:"index"`
	Color        balloon.Color `json:"color"`
	CurrentPumps int           `json:"currentPumps"`
	Review       bool          `json:"review"`

	maxPumps int
}

// Completion summarizes a finished run.
type Completion struct {
	TotalScore int  `json:"totalScore"`
	BestScore  int  `json:"bestScore"`
	NewBest    bool `json:"newBest"`
	Review     bool `json:"review"`
	Unlocked   bool `json:"unlocked"`
}

// Result is returned by Pump and CashOut.
// Outcome is set once the balloon is resolved; Next is the newly armed
// balloon, nil when the run is over, in which case Completion is set.
type Result struct {
	Round      *Round           `json:"round,omitempty"`
	Outcome    *balloon.Outcome `json:"outcome,omitempty"`
	Next       *Round           `json:"next,omitempty"`
	Completion *Completion      `json:"completion,omitempty"`
}

// Sequencer drives the manual level: the player pumps each balloon and
// decides when to cash out.
type Sequencer struct {
	sequence []balloon.Color
	resolver *balloon.Resolver
}

// NewSequencer creates a sequencer. An empty sequence falls back to DefaultSequence.
func NewSequencer(sequence []balloon.Color, resolver *balloon.Resolver) *Sequencer {
	if len(sequence) == 0 {
		sequence = DefaultSequence
	}
	return &Sequencer{
		sequence: append([]balloon.Color(nil), sequence...),
		resolver: resolver,
	}
}

// Len returns the number of balloons in a run.
func (s *Sequencer) Len() int {
	return len(s.sequence)
}

// Start begins a fresh run: stats, position and history are cleared,
// the best score is kept. A run started after a completed one is a review run.
func (s *Sequencer) Start(l1 *state.Level1State) *Round {
	review := l1.Completed
	l1.Stats = state.NewStats()
	l1.BalloonIndex = 0
	l1.History = []state.HistoryEntry{}

	r, _ := s.Arm(l1, review)
	return r
}

// Arm draws a hidden threshold for the balloon at the current position.
func (s *Sequencer) Arm(l1 *state.Level1State, review bool) (*Round, error) {
	if s.Finished(l1) {
		return nil, ErrLevelFinished
	}
	c := s.sequence[l1.BalloonIndex]
	return &Round{
		Index:    l1.BalloonIndex,
		Color:    c,
		Review:   review,
		maxPumps: s.resolver.Draw(c),
	}, nil
}

// Finished reports whether the run reached the end of the sequence.
func (s *Sequencer) Finished(l1 *state.Level1State) bool {
	return l1.BalloonIndex >= len(s.sequence)
}

// Pump adds one pump to the armed balloon. The balloon pops as soon as
// the pump count exceeds its hidden threshold.
func (s *Sequencer) Pump(g *state.GameState, r *Round) (*Result, error) {
	if err := s.check(g, r); err != nil {
		return nil, err
	}

	r.CurrentPumps++
	if r.CurrentPumps > r.maxPumps {
		return s.resolve(g, r, true), nil
	}
	return &Result{Round: r}, nil
}

// CashOut banks the pumps on the armed balloon. Zero pumps is a valid cash-out worth nothing.
func (s *Sequencer) CashOut(g *state.GameState, r *Round) (*Result, error) {
	if err := s.check(g, r); err != nil {
		return nil, err
	}
	return s.resolve(g, r, false), nil
}

func (s *Sequencer) check(g *state.GameState, r *Round) error {
	if s.Finished(&g.L1) {
		return ErrLevelFinished
	}
	if r == nil || r.Index != g.L1.BalloonIndex {
		return ErrNoBalloon
	}
	return nil
}

func (s *Sequencer) resolve(g *state.GameState, r *Round, popped bool) *Result {
	out := balloon.Outcome{
		Color:    r.Color,
		Pumps:    r.CurrentPumps,
		MaxPumps: r.maxPumps,
		Popped:   popped,
	}
	if !popped {
		out.Score = r.CurrentPumps
	}

	l1 := &g.L1
	l1.Stats.Apply(out)
	l1.PushHistory(state.HistoryEntry{Color: out.Color, Pumps: out.Pumps, Popped: popped})
	l1.BalloonIndex++

	res := &Result{Round: r, Outcome: &out}
	if s.Finished(l1) {
		res.Completion = complete(g, r.Review)
		return res
	}

	res.Next, _ = s.Arm(l1, r.Review)
	return res
}

// complete records the end of a run. The best score only moves up; the
// new-best flag is also raised on an exact tie, except in review runs.
func complete(g *state.GameState, review bool) *Completion {
	l1 := &g.L1
	total := l1.Stats.TotalScore()
	if total > l1.BestScore {
		l1.BestScore = total
	}
	l1.Completed = true

	return &Completion{
		TotalScore: total,
		BestScore:  l1.BestScore,
		NewBest:    !review && total == l1.BestScore,
		Review:     review,
		Unlocked:   g.Unlock(2),
	}
}
