package mock

import (
	"context"
	"sync"
)

// StatisticUpdater is a mock implementation of service.StatisticUpdater for testing
type StatisticUpdater struct {
	// IncrementStatFunc is called when IncrementStat is invoked
	IncrementStatFunc func(ctx context.Context, userID, statCode string) error

	mu    sync.Mutex
	Calls []IncrementStatCall
}

// IncrementStatCall tracks parameters for IncrementStat calls
type IncrementStatCall struct {
	UserID   string
	StatCode string
}

// IncrementStat records the call and delegates to IncrementStatFunc if set
func (m *StatisticUpdater) IncrementStat(ctx context.Context, userID, statCode string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, IncrementStatCall{UserID: userID, StatCode: statCode})
	m.mu.Unlock()

	if m.IncrementStatFunc != nil {
		return m.IncrementStatFunc(ctx, userID, statCode)
	}
	return nil
}

// CallCount returns the number of IncrementStat calls
func (m *StatisticUpdater) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// EntitlementGranter is a mock implementation of service.EntitlementGranter for testing
type EntitlementGranter struct {
	// GrantEntitlementFunc is called when GrantEntitlement is invoked
	GrantEntitlementFunc func(ctx context.Context, userID, itemID string, quantity int) error

	mu    sync.Mutex
	Calls []GrantEntitlementCall
}

// GrantEntitlementCall tracks parameters for GrantEntitlement calls
type GrantEntitlementCall struct {
	UserID   string
	ItemID   string
	Quantity int
}

// GrantEntitlement records the call and delegates to GrantEntitlementFunc if set
func (m *EntitlementGranter) GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, GrantEntitlementCall{UserID: userID, ItemID: itemID, Quantity: quantity})
	m.mu.Unlock()

	if m.GrantEntitlementFunc != nil {
		return m.GrantEntitlementFunc(ctx, userID, itemID, quantity)
	}
	return nil
}

// CallCount returns the number of GrantEntitlement calls
func (m *EntitlementGranter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
