package reward

import (
	"context"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-balloon-factory/pkg/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Executor executes actions in response to milestones.
type Executor struct {
	registry *Registry
}

// NewExecutor creates a new action executor.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{
		registry: registry,
	}
}

// Execute runs a single action for an event.
func (e *Executor) Execute(ctx context.Context, actionID string, ev *Event) (*ActionResult, error) {
	action := e.registry.Get(actionID)
	if action == nil {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
	}

	attempts, err := e.run(ctx, action, ev)
	if err != nil {
		return NewActionError(actionID, attempts, err), err
	}
	return NewActionResult(actionID, attempts), nil
}

// ExecuteMultiple executes actions in sequence. If rollbackOnError is true,
// previously executed actions are rolled back when a later one fails.
func (e *Executor) ExecuteMultiple(ctx context.Context, actionIDs []string, ev *Event, rollbackOnError bool) ([]*ActionResult, error) {
	var results []*ActionResult
	var executed []Action

	for _, actionID := range actionIDs {
		action := e.registry.Get(actionID)
		if action == nil {
			err := fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
			logrus.Errorf("%v", err)

			if rollbackOnError && len(executed) > 0 {
				e.rollbackActions(ctx, executed, ev)
			}
			return results, err
		}

		attempts, err := e.run(ctx, action, ev)
		if err != nil {
			results = append(results, NewActionError(actionID, attempts, err))

			if rollbackOnError && len(executed) > 0 {
				e.rollbackActions(ctx, executed, ev)
			}
			return results, err
		}

		executed = append(executed, action)
		results = append(results, NewActionResult(actionID, attempts))
	}

	return results, nil
}

// run executes an action, retrying according to its retry configuration.
func (e *Executor) run(ctx context.Context, action Action, ev *Event) (int, error) {
	log := logrus.WithFields(ev.Fields()).WithField("action", action.ID())
	log.Infof("executing action %s", action.ID())

	attempts := 0
	op := func() error {
		attempts++
		return action.Execute(ctx, ev)
	}

	var err error
	if retry := action.Config().Retry; retry != nil && retry.MaxAttempts > 1 {
		err = backoff.Retry(op, retryPolicy(ctx, retry))
	} else {
		err = op()
	}

	result := "success"
	if err != nil {
		result = "failure"
		log.Errorf("action %s failed after %d attempt(s): %v", action.ID(), attempts, err)
	} else {
		log.Infof("action %s completed successfully", action.ID())
	}
	metrics.RewardActionsTotal.WithLabelValues(string(ev.Milestone), action.Config().Type, result).Inc()

	return attempts, err
}

func retryPolicy(ctx context.Context, retry *RetryConfig) backoff.BackOff {
	var b backoff.BackOff
	switch retry.Backoff {
	case "exponential":
		eb := backoff.NewExponentialBackOff()
		if retry.Delay > 0 {
			eb.InitialInterval = retry.Delay
		}
		b = eb
	default:
		b = backoff.NewConstantBackOff(retry.Delay)
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retry.MaxAttempts-1)), ctx)
}

// rollbackActions rolls back actions in reverse order.
func (e *Executor) rollbackActions(ctx context.Context, actions []Action, ev *Event) {
	logrus.Warnf("rolling back %d actions", len(actions))

	for i := len(actions) - 1; i >= 0; i-- {
		action := actions[i]

		err := action.Rollback(ctx, ev)
		switch {
		case err == nil:
			logrus.Infof("action %s rolled back successfully", action.ID())
		case errors.Is(err, ErrRollbackNotSupported):
			logrus.Warnf("action %s does not support rollback", action.ID())
		default:
			logrus.Errorf("failed to rollback action %s: %v", action.ID(), err)
		}
	}
}

// Registry returns the action registry used by this executor.
func (e *Executor) Registry() *Registry {
	return e.registry
}
