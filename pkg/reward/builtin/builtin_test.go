package builtin

import (
	"context"
	"errors"
	"testing"

	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/service/mock"
)

func testEvent() *reward.Event {
	ev := reward.NewEvent(reward.Level1Completed, "player-1", 1, 90)
	return &ev
}

func TestReportStatAction_Execute(t *testing.T) {
	updater := &mock.StatisticUpdater{}
	config := reward.ActionConfig{
		ID:         "l1_stat",
		Type:       ReportStatActionType,
		Enabled:    true,
		Parameters: map[string]interface{}{"stat_code": "balloon-l1-completions"},
	}

	act, err := NewReportStatAction(config, updater)
	if err != nil {
		t.Fatal(err)
	}
	if err := act.Execute(context.Background(), testEvent()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if updater.CallCount() != 1 {
		t.Fatalf("calls = %d", updater.CallCount())
	}
	want := mock.IncrementStatCall{UserID: "player-1", StatCode: "balloon-l1-completions"}
	if updater.Calls[0] != want {
		t.Errorf("call = %+v, want %+v", updater.Calls[0], want)
	}
	if err := act.Rollback(context.Background(), testEvent()); !errors.Is(err, reward.ErrRollbackNotSupported) {
		t.Errorf("rollback err = %v", err)
	}
}

func TestReportStatAction_Errors(t *testing.T) {
	_, err := NewReportStatAction(reward.ActionConfig{ID: "x"}, nil)
	if !errors.Is(err, reward.ErrMissingParameter) {
		t.Errorf("err = %v, want ErrMissingParameter", err)
	}

	updater := &mock.StatisticUpdater{
		IncrementStatFunc: func(ctx context.Context, userID, statCode string) error {
			return errors.New("service unavailable")
		},
	}
	act, err := NewReportStatAction(reward.ActionConfig{
		ID:         "x",
		Parameters: map[string]interface{}{"stat_code": "s"},
	}, updater)
	if err != nil {
		t.Fatal(err)
	}
	if err := act.Execute(context.Background(), testEvent()); err == nil {
		t.Error("expected error from updater")
	}
}

func TestGrantItemAction_Execute(t *testing.T) {
	granter := &mock.EntitlementGranter{}
	config := reward.ActionConfig{
		ID:      "l2_item",
		Type:    GrantItemActionType,
		Enabled: true,
		Parameters: map[string]interface{}{
			"item_id":  "golden-pump",
			"quantity": 2,
		},
	}

	act, err := NewGrantItemAction(config, granter)
	if err != nil {
		t.Fatal(err)
	}
	if err := act.Execute(context.Background(), testEvent()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := mock.GrantEntitlementCall{UserID: "player-1", ItemID: "golden-pump", Quantity: 2}
	if granter.CallCount() != 1 || granter.Calls[0] != want {
		t.Errorf("calls = %+v", granter.Calls)
	}
}

func TestGrantItemAction_Config(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr error
	}{
		{"missing item", map[string]interface{}{}, reward.ErrMissingParameter},
		{"zero quantity", map[string]interface{}{"item_id": "x", "quantity": 0}, reward.ErrInvalidConfig},
		{"default quantity", map[string]interface{}{"item_id": "x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrantItemAction(reward.ActionConfig{ID: "g", Parameters: tt.params}, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDryRun(t *testing.T) {
	stat, err := NewReportStatAction(reward.ActionConfig{ID: "s", Parameters: map[string]interface{}{"stat_code": "c"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	item, err := NewGrantItemAction(reward.ActionConfig{ID: "i", Parameters: map[string]interface{}{"item_id": "x"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range []reward.Action{stat, item, NewLogMilestoneAction(reward.ActionConfig{ID: "l"})} {
		if err := a.Execute(context.Background(), testEvent()); err != nil {
			t.Errorf("%s: %v", a.ID(), err)
		}
	}
}

func TestRegisterActions(t *testing.T) {
	updater := &mock.StatisticUpdater{}
	RegisterActions(&Dependencies{StatUpdater: updater})

	registry := reward.NewRegistry()
	err := reward.RegisterActions(registry, []reward.ActionConfig{
		{ID: "stat", Type: ReportStatActionType, Enabled: true, Parameters: map[string]interface{}{"stat_code": "c"}},
		{ID: "item", Type: GrantItemActionType, Enabled: true, Parameters: map[string]interface{}{"item_id": "x"}},
		{ID: "log", Type: LogMilestoneActionType, Enabled: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if registry.Count() != 3 {
		t.Fatalf("registered = %v", registry.IDs())
	}

	executor := reward.NewExecutor(registry)
	if _, err := executor.ExecuteMultiple(context.Background(), []string{"stat", "item", "log"}, testEvent(), true); err != nil {
		t.Fatal(err)
	}
	if updater.CallCount() != 1 {
		t.Errorf("stat calls = %d", updater.CallCount())
	}
}
