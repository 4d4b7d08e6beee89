// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package analytics derives pace metrics and finish-date projections from a
book's reading log.

The projector is read-only: it never mutates the book, the plan, or the log.
All of its scores are advisory heuristics for display, not load-bearing
business logic, and every tuning baseline is a named constant.
*/
package analytics

import "time"

// # Tuning Baselines

const (
	// BaselinePagesPerMinute anchors the efficiency score: reading at
	// 1 page/minute scores 100%.
	BaselinePagesPerMinute = 1.0

	// MaxEfficiencyScore caps the efficiency percentage so a single fast
	// session cannot distort the scale.
	MaxEfficiencyScore = 150.0

	// MaxConsistencyScore caps the consistency percentage.
	MaxConsistencyScore = 100.0

	// FallbackPagesPerDay is the naive pace assumed for a finish-date
	// projection when the book has no logged sessions yet.
	FallbackPagesPerDay = 20.0
)

// # Projection Result

// Analysis is the full set of derived metrics for one book.
//
// Pointer fields are nil when the underlying projection is not computable:
// a predicted finish needs pages remaining, and a schedule delta needs a
// plan to compare against. A nil field means "no prediction available", not
// an error.
type Analysis struct {
	SessionCount   int     `json:"session_count"`
	TotalPagesRead int     `json:"total_pages_read"`
	TotalMinutes   float64 `json:"total_minutes"`

	// PagesPerMinute is the book's own measured speed; when the log is
	// empty it falls back to the reader's historical cross-book average.
	PagesPerMinute       float64 `json:"pages_per_minute"`
	AvgPagesPerDay       float64 `json:"avg_pages_per_day"`
	AvgMinutesPerSession float64 `json:"avg_minutes_per_session"`

	PredictedFinishDate *time.Time `json:"predicted_finish_date,omitempty"`

	// DaysAheadOrBehind compares the prediction against the plan's end
	// date: positive means ahead of schedule, negative behind.
	DaysAheadOrBehind *int `json:"days_ahead_or_behind,omitempty"`

	ConsistencyScore float64 `json:"consistency_score"`
	EfficiencyScore  float64 `json:"efficiency_score"`
}
