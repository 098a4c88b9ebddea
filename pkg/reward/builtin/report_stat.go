package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"github.com/AccelByte/extend-balloon-factory/pkg/service"
	"github.com/sirupsen/logrus"
)

const (
	// ReportStatActionType is the type identifier for statistic increment actions.
	ReportStatActionType = "report_stat"
)

// ReportStatAction increments a player statistic when a milestone is reached.
type ReportStatAction struct {
	config   reward.ActionConfig
	updater  service.StatisticUpdater
	statCode string
}

// NewReportStatAction creates a new statistic increment action.
func NewReportStatAction(config reward.ActionConfig, updater service.StatisticUpdater) (*ReportStatAction, error) {
	statCode := config.GetParameterString("stat_code", "")
	if statCode == "" {
		return nil, fmt.Errorf("%w: %s needs stat_code", reward.ErrMissingParameter, config.ID)
	}

	return &ReportStatAction{
		config:   config,
		updater:  updater,
		statCode: statCode,
	}, nil
}

func (a *ReportStatAction) ID() string                  { return a.config.ID }
func (a *ReportStatAction) Name() string                { return "Report Statistic" }
func (a *ReportStatAction) Config() reward.ActionConfig { return a.config }

// Execute increments the configured statistic.
func (a *ReportStatAction) Execute(ctx context.Context, ev *reward.Event) error {
	if a.updater == nil {
		logrus.Warnf("[DRY RUN] would increment stat %s for user %s", a.statCode, ev.PlayerID)
		return nil
	}

	if err := a.updater.IncrementStat(ctx, ev.PlayerID, a.statCode); err != nil {
		return fmt.Errorf("failed to report stat %s: %w", a.statCode, err)
	}
	return nil
}

// Rollback is not supported: statistics are only ever incremented.
func (a *ReportStatAction) Rollback(ctx context.Context, ev *reward.Event) error {
	return reward.ErrRollbackNotSupported
}
