// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors for the balloon factory.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "balloon_factory"

var (
	BalloonsResolvedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balloons_resolved_total",
			Help:      "Total number of resolved balloons",
		},
		[]string{"level", "color", "outcome"},
	)

	LevelCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_completions_total",
			Help:      "Total number of completed level 1 runs and level 2 batches",
		},
		[]string{"level"},
	)

	TaskStartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_starts_total",
			Help:      "Total number of simulation task starts",
		},
		[]string{"task"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of loaded player sessions",
		},
	)

	Temperature = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level3_temperature",
			Help:      "Level 3 temperature observed after each drift",
			Buckets:   prometheus.LinearBuckets(0, 5, 9),
		},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Total number of failed state store operations",
		},
		[]string{"op"},
	)

	RewardActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reward_actions_total",
			Help:      "Total number of milestone reward action executions",
		},
		[]string{"milestone", "action_type", "result"},
	)
)

// Register adds every balloon factory collector to the registry.
func Register(registry prometheus.Registerer) {
	registry.MustRegister(
		BalloonsResolvedTotal,
		LevelCompletionsTotal,
		TaskStartsTotal,
		ActiveSessions,
		Temperature,
		StoreErrorsTotal,
		RewardActionsTotal,
	)
}

// OutcomeLabel returns the outcome label value for a resolved balloon.
func OutcomeLabel(popped bool) string {
	if popped {
		return "popped"
	}
	return "cashed_out"
}
