package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/service"
	"github.com/sirupsen/logrus"
)

const (
	// GrantItemActionType is the type identifier for item grant actions.
	GrantItemActionType = "grant_item"
)

// GrantItemAction grants an item or entitlement to a player.
type GrantItemAction struct {
	config   reward.ActionConfig
	granter  service.EntitlementGranter
	itemID   string
	quantity int
}

// NewGrantItemAction creates a new grant item action.
func NewGrantItemAction(config reward.ActionConfig, granter service.EntitlementGranter) (*GrantItemAction, error) {
	itemID := config.GetParameterString("item_id", "")
	if itemID == "" {
		return nil, fmt.Errorf("%w: %s needs item_id", reward.ErrMissingParameter, config.ID)
	}
	quantity := config.GetParameterInt("quantity", 1)
	if quantity < 1 {
		return nil, fmt.Errorf("%w: %s quantity must be >= 1", reward.ErrInvalidConfig, config.ID)
	}

	return &GrantItemAction{
		config:   config,
		granter:  granter,
		itemID:   itemID,
		quantity: quantity,
	}, nil
}

// ID returns the action identifier.
func (a *GrantItemAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *GrantItemAction) Name() string {
	return "Grant Item"
}

// Config returns the action configuration.
func (a *GrantItemAction) Config() reward.ActionConfig {
	return a.config
}

// Execute grants the configured item to the player.
func (a *GrantItemAction) Execute(ctx context.Context, ev *reward.Event) error {
	if a.granter == nil {
		logrus.Warnf("[DRY RUN] would grant item %s (quantity: %d) to user %s",
			a.itemID, a.quantity, ev.PlayerID)
		return nil
	}

	if err := a.granter.GrantEntitlement(ctx, ev.PlayerID, a.itemID, a.quantity); err != nil {
		return fmt.Errorf("failed to grant item: %w", err)
	}

	logrus.Infof("granted item %s to user %s", a.itemID, ev.PlayerID)
	return nil
}

// Rollback is not supported for item grants.
func (a *GrantItemAction) Rollback(ctx context.Context, ev *reward.Event) error {
	return reward.ErrRollbackNotSupported
}
