package builtin

import (
	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/service"
)

// Dependencies holds the platform clients used by built-in actions.
// Nil clients put the corresponding actions in dry-run mode.
type Dependencies struct {
	StatUpdater        service.StatisticUpdater
	EntitlementGranter service.EntitlementGranter
}

// RegisterActions registers built-in action factories with dependencies.
func RegisterActions(deps *Dependencies) {
	if deps == nil {
		deps = &Dependencies{}
	}

	reward.RegisterActionType(ReportStatActionType, func(config reward.ActionConfig) (reward.Action, error) {
		a, err := NewReportStatAction(config, deps.StatUpdater)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	reward.RegisterActionType(GrantItemActionType, func(config reward.ActionConfig) (reward.Action, error) {
		a, err := NewGrantItemAction(config, deps.EntitlementGranter)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	reward.RegisterActionType(LogMilestoneActionType, func(config reward.ActionConfig) (reward.Action, error) {
		return NewLogMilestoneAction(config), nil
	})
}
