// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
)

const (
	// MaxLevel is the highest level a player can unlock.
	MaxLevel = 3

	// HistoryCapacity bounds the level 1 outcome window.
	HistoryCapacity = 8

	// PastStrategiesCapacity bounds the level 2 strategy snapshots.
	PastStrategiesCapacity = 3

	MinTemperature     = 0
	MaxTemperature     = 40
	DefaultTemperature = balloon.NeutralTemperature
)

// GameState is the complete persisted progress of one player.
type GameState struct {
	SchemaVersion  int         `json:"schemaVersion"`
	UnlockedLevels int         `json:"unlockedLevels"`
	Tutorial       Tutorial    `json:"tutorial"`
	L1             Level1State `json:"l1"`
	L2             Level2State `json:"l2"`
	L3             Level3State `json:"l3"`
}

// Tutorial holds the persisted tutorial step per level.
// Level 3 tutorial progress is deliberately not part of the document.
type Tutorial struct {
	L1 int `json:"l1"`
	L2 int `json:"l2"`
}

// ColorStat accumulates outcomes for one balloon color.
// Count equals cash-outs plus Pops; Score and Pumps only grow on cash-outs.
type ColorStat struct {
	Score int `json:"score"`
	Pops  int `json:"pops"`
	Count int `json:"count"`
	Pumps int `json:"pumps"`
}

// Stats maps colors to their cumulative outcome totals.
type Stats map[balloon.Color]ColorStat

// Strategy maps colors to the configured pump count.
type Strategy map[balloon.Color]int

// HistoryEntry is one resolved level 1 balloon.
type HistoryEntry struct {
	Color  balloon.Color `json:"color"`
	Pumps  int           `json:"pumps"`
	Popped bool          `json:"popped"`
}

// Level1State is the manual pattern-recognition level.
type Level1State struct {
	Stats        Stats          `json:"stats"`
	BalloonIndex int            `json:"balloonIndex"`
	History      []HistoryEntry `json:"history"`
	BestScore    int            `json:"bestScore"`
	Completed    bool           `json:"completed"`
}

// Level2State is the human-in-the-loop batch level.
type Level2State struct {
	Stats          Stats            `json:"stats"`
	Strategy       Strategy         `json:"strategy"`
	ProcessedCount int              `json:"processedCount"`
	PastStrategies []StrategyRecord `json:"pastStrategies"`
}

// Level3State is the continuous temperature-driven level.
type Level3State struct {
	Stats          Stats    `json:"stats"`
	Strategy       Strategy `json:"strategy"`
	Temperature    int      `json:"temperature"`
	TotalScore     int      `json:"totalScore"`
	ProcessedCount int      `json:"processedCount"`
}

// ColorSummary is the per-color performance captured in a StrategyRecord.
type ColorSummary struct {
	Count    int     `json:"count"`
	Pops     int     `json:"pops"`
	Score    int     `json:"score"`
	PopRate  float64 `json:"popRate"`
	AvgScore float64 `json:"avgScore"`
}

// StrategyRecord is an immutable snapshot of a level 2 strategy and its results.
type StrategyRecord struct {
	ID              string                         `json:"id"`
	Timestamp       time.Time                      `json:"timestamp"`
	Strategy        Strategy                       `json:"strategy"`
	PerColor        map[balloon.Color]ColorSummary `json:"perColor"`
	OverallPopRate  float64                        `json:"overallPopRate"`
	OverallAvgScore float64                        `json:"overallAvgScore"`
	TotalProcessed  int                            `json:"totalProcessed"`
}
