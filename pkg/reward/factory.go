package reward

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ActionFactory is a function that creates an action from a configuration.
type ActionFactory func(config ActionConfig) (Action, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]ActionFactory)
)

// RegisterActionType registers a factory function for an action type.
// A later registration for the same type replaces the earlier one.
func RegisterActionType(actionType string, factory ActionFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[actionType] = factory
	logrus.Debugf("registered action type: %s", actionType)
}

// CreateAction creates an action instance based on the configuration.
// Disabled actions yield a nil action and no error.
func CreateAction(config ActionConfig) (Action, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled action: %s", config.ID)
		return nil, nil
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, config.Type)
	}

	logrus.Infof("creating action: id=%s, type=%s", config.ID, config.Type)
	return factory(config)
}

// RegisterActions creates every enabled action and adds it to the registry.
// Unlike a best-effort load, any creation error aborts registration.
func RegisterActions(registry *Registry, configs []ActionConfig) error {
	for _, config := range configs {
		action, err := CreateAction(config)
		if err != nil {
			return fmt.Errorf("failed to create action %s: %w", config.ID, err)
		}
		if action == nil {
			continue
		}
		if err := registry.Register(action); err != nil {
			return fmt.Errorf("failed to register action %s: %w", action.ID(), err)
		}
	}

	logrus.Infof("registered %d reward actions", registry.Count())
	return nil
}
