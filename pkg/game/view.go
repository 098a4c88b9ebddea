package game

import (
	"github.com/AccelByte/extend-balloon-factory/pkg/level1"
	"github.com/AccelByte/extend-balloon-factory/pkg/level3"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

// View is a consistent snapshot of a player's game.
type View struct {
	PlayerID string           `json:"playerId"`
	State    *state.GameState `json:"state"`
	Level1   Level1View       `json:"level1"`
	Level2   Level2View       `json:"level2"`
	Level3   Level3View       `json:"level3"`
}

type Level1View struct {
	Round    *level1.Round `json:"round,omitempty"`
	Length   int           `json:"length"`
	Finished bool          `json:"finished"`
}

type Level2View struct {
	Running  bool `json:"running"`
	Target   int  `json:"target"`
	Finished bool `json:"finished"`
}

type Level3View struct {
	Running      bool           `json:"running"`
	Insight      level3.Insight `json:"insight"`
	TutorialStep int            `json:"tutorialStep"`
}

// Level3Status is the live view of the production line.
type Level3Status struct {
	Level3View
	State state.Level3State `json:"state"`
}

func copyRound(r *level1.Round) *level1.Round {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func copyResult(res *level1.Result) *level1.Result {
	c := *res
	c.Round = copyRound(res.Round)
	c.Next = copyRound(res.Next)
	return &c
}
