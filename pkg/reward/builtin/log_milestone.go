package builtin

import (
	"context"

	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/sirupsen/logrus"
)

const (
	// LogMilestoneActionType is the type identifier for the audit log action.
	LogMilestoneActionType = "log_milestone"
)

// LogMilestoneAction writes a structured audit line for a milestone.
type LogMilestoneAction struct {
	config  reward.ActionConfig
	message string
}

// NewLogMilestoneAction creates a new audit log action.
func NewLogMilestoneAction(config reward.ActionConfig) *LogMilestoneAction {
	return &LogMilestoneAction{
		config:  config,
		message: config.GetParameterString("message", "milestone reached"),
	}
}

func (a *LogMilestoneAction) ID() string                  { return a.config.ID }
func (a *LogMilestoneAction) Name() string                { return "Log Milestone" }
func (a *LogMilestoneAction) Config() reward.ActionConfig { return a.config }

func (a *LogMilestoneAction) Execute(ctx context.Context, ev *reward.Event) error {
	logrus.WithFields(ev.Fields()).
		WithField("occurredAt", ev.OccurredAt).
		Info(a.message)
	return nil
}

// Rollback is a no-op: a log line cannot be retracted.
func (a *LogMilestoneAction) Rollback(ctx context.Context, ev *reward.Event) error {
	return nil
}
