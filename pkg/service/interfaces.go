package service

import (
	"context"
)

// Service interfaces for the platform calls reward actions make.
// Interfaces keep the actions testable without an AccelByte environment.

type EntitlementGranter interface {
	// GrantEntitlement grants an entitlement/item to a player
	GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error
}

type StatisticUpdater interface {
	// IncrementStat adds one to a player's statistic
	IncrementStat(ctx context.Context, userID, statCode string) error
}
