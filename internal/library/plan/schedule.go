// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan

import (
	"fmt"
	"time"

	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// # Date Helpers

// DateLayout is the canonical wire format for plan and session dates.
const DateLayout = "2006-01-02"

// Midnight truncates t to 00:00:00 UTC of its calendar day.
//
// All plan arithmetic operates on UTC midnights so that day counting is
// immune to wall-clock components and DST shifts.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetweenInclusive counts calendar days from 'from' through 'to',
// counting both endpoints. Returns 0 or a negative value when 'to' precedes
// 'from'.
func DaysBetweenInclusive(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours()/24) + 1
}

// ceilDiv returns the ceiling of a/b for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// # Schedule Generation

/*
EffectiveDailyPages resolves the daily page rate implied by a pacing spec.

For fixed-daily mode it is the user-chosen rate verbatim. For deadline mode
it is the smallest uniform rate that finishes the remaining pages by the
deadline, i.e. ceil(remaining / daysAvailable).

Parameters:
  - spec: The pacing configuration. TotalPages and StartingPage must already
    be validated against the book.

Returns:
  - int: The effective pages-per-day rate (always >= 1 on success).
  - error: INVALID_RANGE when the rate is non-positive or the deadline does
    not leave at least one day.
*/
func EffectiveDailyPages(spec PacingSpec) (int, error) {
	remaining := spec.TotalPages - spec.StartingPage

	switch spec.Mode {
	case PacingFixedDaily:
		if spec.DailyPages <= 0 {
			return 0, apperr.InvalidRange("Daily pages must be a positive number")
		}
		return spec.DailyPages, nil

	case PacingDeadline:
		days := DaysBetweenInclusive(spec.StartDate, spec.DeadlineDate)
		if days <= 0 {
			return 0, apperr.InvalidRange("Deadline must be on or after the start date")
		}
		if remaining <= 0 {
			return 0, apperr.InvalidRange("Nothing left to schedule")
		}
		return ceilDiv(remaining, days), nil

	default:
		return 0, apperr.InvalidRange(fmt.Sprintf("Unknown pacing mode %q", spec.Mode))
	}
}

/*
BuildSchedule expands a pacing spec into the ordered day-by-day schedule.

The schedule covers every page from StartingPage+1 through TotalPages with
no gaps and no overlap. Every day carries the full daily rate except the
last, which absorbs the remainder. Generation is deterministic: the same
spec always yields the same schedule.

Parameters:
  - spec: The pacing configuration.

Returns:
  - []ReadingDay: The generated schedule, empty (non-nil) when no pages
    remain.
  - error: INVALID_RANGE when the spec cannot produce a positive daily rate.
*/
func BuildSchedule(spec PacingSpec) ([]ReadingDay, error) {
	remaining := spec.TotalPages - spec.StartingPage

	// A finished or over-tracked book yields an empty plan, not an error.
	if remaining <= 0 {
		return []ReadingDay{}, nil
	}

	daily, err := EffectiveDailyPages(spec)
	if err != nil {
		return nil, err
	}

	start := Midnight(spec.StartDate)
	days := make([]ReadingDay, 0, ceilDiv(remaining, daily))

	page := spec.StartingPage + 1
	for i := 0; page <= spec.TotalPages; i++ {
		chunk := daily
		if last := spec.TotalPages - page + 1; chunk > last {
			chunk = last
		}

		days = append(days, ReadingDay{
			DayNumber:  i + 1,
			Date:       start.AddDate(0, 0, i),
			StartPage:  page,
			EndPage:    page + chunk - 1,
			DailyPages: chunk,
		})

		page += chunk
	}

	return days, nil
}

/*
RecalculateEndDate projects the plan's completion date from the book's
actual position, holding the daily rate fixed.

The projection always anchors on today: reading ahead pulls the end date in,
falling behind pushes it out, and a finished book resolves to today itself.

Parameters:
  - currentPage: The book's confirmed reading position.
  - totalPages: The book's total page count.
  - dailyPages: The plan's effective daily rate (must be positive).
  - now: The reference clock, truncated internally to its UTC day.

Returns:
  - time.Time: The projected completion date at UTC midnight.
*/
func RecalculateEndDate(currentPage, totalPages, dailyPages int, now time.Time) time.Time {
	today := Midnight(now)

	remaining := totalPages - currentPage
	if remaining <= 0 {
		return today
	}

	// Callers validate the rate; clamping avoids a division panic on bad rows.
	if dailyPages < 1 {
		dailyPages = 1
	}

	return today.AddDate(0, 0, ceilDiv(remaining, dailyPages))
}
