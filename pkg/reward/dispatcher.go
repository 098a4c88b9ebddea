package reward

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Dispatcher runs the actions bound to each milestone.
// Reward failures are logged and never reported back to the game.
type Dispatcher struct {
	executor *Executor
	bindings map[Milestone][]string
}

// NewDispatcher creates a dispatcher over the milestone bindings.
func NewDispatcher(executor *Executor, bindings map[Milestone][]string) *Dispatcher {
	b := make(map[Milestone][]string, len(bindings))
	for m, ids := range bindings {
		b[m] = append([]string(nil), ids...)
	}
	return &Dispatcher{executor: executor, bindings: b}
}

// Notify executes the actions bound to the event's milestone, rolling back
// earlier ones if a later one fails.
func (d *Dispatcher) Notify(ctx context.Context, ev Event) {
	log := logrus.WithFields(ev.Fields())

	actionIDs := d.bindings[ev.Milestone]
	if len(actionIDs) == 0 {
		log.Debug("no reward actions bound to milestone")
		return
	}

	results, err := d.executor.ExecuteMultiple(ctx, actionIDs, &ev, true)
	if err != nil {
		log.Warnf("milestone rewards failed after %d action(s): %v", len(results), err)
		return
	}
	log.Infof("milestone rewards granted: %d action(s)", len(results))
}
