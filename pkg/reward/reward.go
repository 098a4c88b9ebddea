package reward

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Milestone identifies a progression event that can trigger rewards.
type Milestone string

const (
	Level1Completed Milestone = "level1_completed"
	Level1NewBest   Milestone = "level1_new_best"
	Level2Completed Milestone = "level2_completed"
	Level3Unlocked  Milestone = "level3_unlocked"
)

// Milestones lists every known milestone.
var Milestones = []Milestone{Level1Completed, Level1NewBest, Level2Completed, Level3Unlocked}

// Valid reports whether m is a known milestone.
func (m Milestone) Valid() bool {
	for _, known := range Milestones {
		if m == known {
			return true
		}
	}
	return false
}

// Event is a milestone reached by a player.
type Event struct {
	Milestone  Milestone
	PlayerID   string
	Level      int
	Score      int
	OccurredAt time.Time
}

// NewEvent creates an event stamped with the current time.
func NewEvent(m Milestone, playerID string, level, score int) Event {
	return Event{
		Milestone:  m,
		PlayerID:   playerID,
		Level:      level,
		Score:      score,
		OccurredAt: time.Now(),
	}
}

// Fields returns the event as log fields.
func (e Event) Fields() logrus.Fields {
	return logrus.Fields{
		"milestone": e.Milestone,
		"playerID":  e.PlayerID,
		"level":     e.Level,
		"score":     e.Score,
	}
}

// Action performs a reward operation in response to a milestone.
// Actions are registered in a Registry and executed by the Executor.
type Action interface {
	// ID returns unique action identifier.
	ID() string

	// Name returns human-readable action name.
	Name() string

	// Execute performs the action for the event.
	Execute(ctx context.Context, ev *Event) error

	// Rollback undoes the action, or returns ErrRollbackNotSupported.
	// It is called when a later action for the same milestone fails.
	Rollback(ctx context.Context, ev *Event) error

	// Config returns the action's configuration.
	Config() ActionConfig
}

// ActionResult represents the outcome of an action execution.
type ActionResult struct {
	ActionID string
	Success  bool
	Attempts int
	Error    error
}

// NewActionResult creates a successful action result.
func NewActionResult(actionID string, attempts int) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Success:  true,
		Attempts: attempts,
	}
}

// NewActionError creates a failed action result with an error.
func NewActionError(actionID string, attempts int, err error) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Success:  false,
		Attempts: attempts,
		Error:    err,
	}
}
