// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	rewardBuiltin "github.com/AccelByte/extend-balloon-factory/pkg/reward/builtin"
	"github.com/sirupsen/logrus"
)

// InitRewards registers the configured reward actions and returns a
// dispatcher bound to the milestones in the rewards config.
//
// Milestone bindings that name a disabled action are dropped with a
// warning, so an action can be switched off from config without
// editing every binding that uses it.
func InitRewards(cfg reward.Config, deps *rewardBuiltin.Dependencies) (*reward.Dispatcher, *reward.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	rewardBuiltin.RegisterActions(deps)

	registry := reward.NewRegistry()
	if err := reward.RegisterActions(registry, cfg.Actions); err != nil {
		return nil, nil, fmt.Errorf("failed to register reward actions: %w", err)
	}
	logrus.Infof("registered %d of %d reward actions", registry.Count(), len(cfg.Actions))

	bindings := activeBindings(registry, cfg.Milestones)
	logrus.Infof("configured %d milestone-to-action mappings", len(bindings))

	executor := reward.NewExecutor(registry)
	return reward.NewDispatcher(executor, bindings), registry, nil
}

func activeBindings(registry *reward.Registry, milestones map[reward.Milestone][]string) map[reward.Milestone][]string {
	bindings := make(map[reward.Milestone][]string, len(milestones))
	for m, ids := range milestones {
		var active []string
		for _, id := range ids {
			if registry.Get(id) == nil {
				logrus.Warnf("milestone %s: action %s is disabled, skipping", m, id)
				continue
			}
			active = append(active, id)
		}
		if len(active) > 0 {
			bindings[m] = active
		}
	}
	return bindings
}
