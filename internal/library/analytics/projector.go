// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package analytics

import (
	"math"
	"time"

	"github.com/leafmark/leafmark/internal/library/plan"
	"github.com/leafmark/leafmark/internal/library/session"
	"github.com/leafmark/leafmark/pkg/pointer"
)

/*
Analyze computes the full metric set for a book from its reading log.

Description: A pure projection over the chronological log. Day spans are
inclusive of both endpoints, so a single-day log spans one day. An empty log
yields the fallback projection: the reader's historical speed stands in for
the book's own, the finish date is projected at the naive
[FallbackPagesPerDay] pace, and both scores are zero.

Parameters:
  - log: []*session.Entry (The book's log, any order)
  - totalPages: int
  - currentPage: int (The book's confirmed position)
  - planEndDate: *time.Time (The plan's projected end, nil without a plan)
  - fallbackPPM: float64 (The reader's cross-book speed, 0 when unknown)
  - now: time.Time (Reference clock for projections)

Returns:
  - Analysis: The derived metrics
*/
func Analyze(log []*session.Entry, totalPages, currentPage int, planEndDate *time.Time, fallbackPPM float64, now time.Time) Analysis {
	today := plan.Midnight(now)
	remaining := totalPages - currentPage

	// Empty log: nothing measured, everything advisory.
	if len(log) == 0 {
		analysis := Analysis{
			PagesPerMinute:  fallbackPPM,
			EfficiencyScore: efficiency(fallbackPPM),
		}
		projectFinish(&analysis, remaining, FallbackPagesPerDay, planEndDate, today)
		return analysis
	}

	// 1. Log totals and date extent
	var totalPagesRead, totalSeconds int
	first, last := log[0].ReadOn, log[0].ReadOn
	for _, entry := range log {
		totalPagesRead += entry.PagesRead
		totalSeconds += entry.DurationSeconds
		if entry.ReadOn.Before(first) {
			first = entry.ReadOn
		}
		if entry.ReadOn.After(last) {
			last = entry.ReadOn
		}
	}

	totalMinutes := float64(totalSeconds) / 60.0
	daySpan := plan.DaysBetweenInclusive(first, last)
	if daySpan < 1 {
		daySpan = 1
	}

	// 2. Pace metrics
	pagesPerMinute := 0.0
	if totalMinutes > 0 {
		pagesPerMinute = float64(totalPagesRead) / totalMinutes
	}

	analysis := Analysis{
		SessionCount:         len(log),
		TotalPagesRead:       totalPagesRead,
		TotalMinutes:         totalMinutes,
		PagesPerMinute:       pagesPerMinute,
		AvgPagesPerDay:       float64(totalPagesRead) / float64(daySpan),
		AvgMinutesPerSession: totalMinutes / float64(len(log)),
		EfficiencyScore:      efficiency(pagesPerMinute),
	}

	// 3. Consistency: share of days in range with at least one session
	analysis.ConsistencyScore = math.Min(MaxConsistencyScore, 100.0*float64(len(log))/float64(daySpan))

	// 4. Finish projection at the measured daily pace
	projectFinish(&analysis, remaining, analysis.AvgPagesPerDay, planEndDate, today)

	return analysis
}

// # Internal Helpers

// efficiency scores a reading speed against the 1 page/minute baseline,
// capped to avoid outlier distortion.
func efficiency(pagesPerMinute float64) float64 {
	if pagesPerMinute <= 0 {
		return 0
	}
	return math.Min(MaxEfficiencyScore, 100.0*pagesPerMinute/BaselinePagesPerMinute)
}

// projectFinish fills the predicted finish date and the schedule delta when
// pages remain and a positive pace is available.
func projectFinish(analysis *Analysis, remaining int, pagesPerDay float64, planEndDate *time.Time, today time.Time) {
	if remaining <= 0 || pagesPerDay <= 0 {
		return
	}

	daysNeeded := int(math.Ceil(float64(remaining) / pagesPerDay))
	predicted := today.AddDate(0, 0, daysNeeded)
	analysis.PredictedFinishDate = pointer.To(predicted)

	// Schedule delta needs a plan to compare against
	if planEndDate != nil {
		delta := int(plan.Midnight(*planEndDate).Sub(predicted).Hours() / 24)
		analysis.DaysAheadOrBehind = pointer.To(delta)
	}
}
