// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/library/plan"
	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// date is a test helper building a UTC midnight from a calendar triple.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

/*
TestBuildSchedule_FixedDaily verifies the uniform distribution of a
fixed-rate plan: 300 pages at 20 per day fills exactly 15 days.
*/
func TestBuildSchedule_FixedDaily(t *testing.T) {
	days, err := plan.BuildSchedule(plan.PacingSpec{
		StartDate:    date(2024, time.January, 1),
		TotalPages:   300,
		StartingPage: 0,
		Mode:         plan.PacingFixedDaily,
		DailyPages:   20,
	})
	require.NoError(t, err)
	require.Len(t, days, 15)

	first := days[0]
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, date(2024, time.January, 1), first.Date)
	assert.Equal(t, 1, first.StartPage)
	assert.Equal(t, 20, first.EndPage)

	last := days[14]
	assert.Equal(t, 15, last.DayNumber)
	assert.Equal(t, date(2024, time.January, 15), last.Date)
	assert.Equal(t, 281, last.StartPage)
	assert.Equal(t, 300, last.EndPage)
}

/*
TestBuildSchedule_FixedDailyRemainder verifies that the final day absorbs
the short remainder instead of overshooting the book's last page.
*/
func TestBuildSchedule_FixedDailyRemainder(t *testing.T) {
	days, err := plan.BuildSchedule(plan.PacingSpec{
		StartDate:    date(2024, time.March, 1),
		TotalPages:   250,
		StartingPage: 0,
		Mode:         plan.PacingFixedDaily,
		DailyPages:   40,
	})
	require.NoError(t, err)
	require.Len(t, days, 7)

	last := days[6]
	assert.Equal(t, 241, last.StartPage)
	assert.Equal(t, 250, last.EndPage)
	assert.Equal(t, 10, last.DailyPages)
}

/*
TestBuildSchedule_Deadline verifies rate derivation from a target date:
300 pages between Jan 1 and Jan 10 inclusive resolve to 30 pages per day.
*/
func TestBuildSchedule_Deadline(t *testing.T) {
	days, err := plan.BuildSchedule(plan.PacingSpec{
		StartDate:    date(2024, time.January, 1),
		TotalPages:   300,
		StartingPage: 0,
		Mode:         plan.PacingDeadline,
		DeadlineDate: date(2024, time.January, 10),
	})
	require.NoError(t, err)
	require.Len(t, days, 10)

	assert.Equal(t, 30, days[0].DailyPages)

	last := days[9]
	assert.Equal(t, date(2024, time.January, 10), last.Date)
	assert.Equal(t, 271, last.StartPage)
	assert.Equal(t, 300, last.EndPage)
}

/*
TestBuildSchedule_DeadlineCeiling verifies that an uneven division rounds
the rate up so the deadline is never overshot.
*/
func TestBuildSchedule_DeadlineCeiling(t *testing.T) {
	// 100 pages over 3 days: ceil(100/3) = 34 per day.
	days, err := plan.BuildSchedule(plan.PacingSpec{
		StartDate:    date(2024, time.June, 1),
		TotalPages:   100,
		StartingPage: 0,
		Mode:         plan.PacingDeadline,
		DeadlineDate: date(2024, time.June, 3),
	})
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, 34, days[0].DailyPages)
	assert.Equal(t, 34, days[1].DailyPages)
	assert.Equal(t, 32, days[2].DailyPages)
	assert.Equal(t, 100, days[2].EndPage)
}

/*
TestBuildSchedule_StartingPage verifies that a partially read book schedules
only the unread tail, starting the day after the bookmark.
*/
func TestBuildSchedule_StartingPage(t *testing.T) {
	days, err := plan.BuildSchedule(plan.PacingSpec{
		StartDate:    date(2024, time.February, 1),
		TotalPages:   120,
		StartingPage: 50,
		Mode:         plan.PacingFixedDaily,
		DailyPages:   25,
	})
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, 51, days[0].StartPage)
	assert.Equal(t, 120, days[2].EndPage)
	assert.Equal(t, 20, days[2].DailyPages)
}

/*
TestBuildSchedule_Coverage asserts the structural invariants over a grid of
specs: schedules are contiguous, gap-free, date-monotonic, and cover every
remaining page exactly once.
*/
func TestBuildSchedule_Coverage(t *testing.T) {
	specs := []plan.PacingSpec{
		{StartDate: date(2024, time.January, 1), TotalPages: 300, StartingPage: 0, Mode: plan.PacingFixedDaily, DailyPages: 20},
		{StartDate: date(2024, time.January, 1), TotalPages: 301, StartingPage: 17, Mode: plan.PacingFixedDaily, DailyPages: 7},
		{StartDate: date(2024, time.January, 1), TotalPages: 999, StartingPage: 998, Mode: plan.PacingFixedDaily, DailyPages: 50},
		{StartDate: date(2024, time.January, 1), TotalPages: 450, StartingPage: 30, Mode: plan.PacingDeadline, DeadlineDate: date(2024, time.January, 14)},
	}

	for _, spec := range specs {
		days, err := plan.BuildSchedule(spec)
		require.NoError(t, err)
		require.NotEmpty(t, days)

		assert.Equal(t, spec.StartingPage+1, days[0].StartPage)
		assert.Equal(t, spec.TotalPages, days[len(days)-1].EndPage)

		for i, d := range days {
			assert.Equal(t, i+1, d.DayNumber)
			assert.Equal(t, d.EndPage-d.StartPage+1, d.DailyPages)
			assert.Equal(t, plan.Midnight(spec.StartDate).AddDate(0, 0, i), d.Date)

			if i > 0 {
				assert.Equal(t, days[i-1].EndPage+1, d.StartPage)
			}
		}
	}
}

/*
TestBuildSchedule_Deterministic verifies that regenerating from the same
spec is a pure operation.
*/
func TestBuildSchedule_Deterministic(t *testing.T) {
	spec := plan.PacingSpec{
		StartDate:    date(2024, time.May, 5),
		TotalPages:   413,
		StartingPage: 88,
		Mode:         plan.PacingFixedDaily,
		DailyPages:   23,
	}

	a, err := plan.BuildSchedule(spec)
	require.NoError(t, err)
	b, err := plan.BuildSchedule(spec)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

/*
TestBuildSchedule_Empty verifies that a finished (or over-tracked) book
produces an empty schedule rather than an error.
*/
func TestBuildSchedule_Empty(t *testing.T) {
	for _, startingPage := range []int{300, 305} {
		days, err := plan.BuildSchedule(plan.PacingSpec{
			StartDate:    date(2024, time.January, 1),
			TotalPages:   300,
			StartingPage: startingPage,
			Mode:         plan.PacingFixedDaily,
			DailyPages:   20,
		})
		require.NoError(t, err)
		assert.Empty(t, days)
	}
}

/*
TestBuildSchedule_InvalidRange verifies the rejection of specs that cannot
produce a positive daily rate.
*/
func TestBuildSchedule_InvalidRange(t *testing.T) {
	tests := []struct {
		name string
		spec plan.PacingSpec
	}{
		{
			name: "zero daily pages",
			spec: plan.PacingSpec{
				StartDate:  date(2024, time.January, 1),
				TotalPages: 300,
				Mode:       plan.PacingFixedDaily,
				DailyPages: 0,
			},
		},
		{
			name: "negative daily pages",
			spec: plan.PacingSpec{
				StartDate:  date(2024, time.January, 1),
				TotalPages: 300,
				Mode:       plan.PacingFixedDaily,
				DailyPages: -5,
			},
		},
		{
			name: "deadline before start",
			spec: plan.PacingSpec{
				StartDate:    date(2024, time.January, 10),
				TotalPages:   300,
				Mode:         plan.PacingDeadline,
				DeadlineDate: date(2024, time.January, 1),
			},
		},
		{
			name: "unknown mode",
			spec: plan.PacingSpec{
				StartDate:  date(2024, time.January, 1),
				TotalPages: 300,
				Mode:       plan.PacingMode("weekly"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plan.BuildSchedule(tt.spec)
			require.Error(t, err)
			assert.True(t, apperr.IsInvalidRange(err))
		})
	}
}

/*
TestBuildSchedule_DeadlineOnStartDate verifies the one-day boundary: a
deadline equal to the start date crams the whole remainder into a single day.
*/
func TestBuildSchedule_DeadlineOnStartDate(t *testing.T) {
	days, err := plan.BuildSchedule(plan.PacingSpec{
		StartDate:    date(2024, time.January, 1),
		TotalPages:   80,
		StartingPage: 0,
		Mode:         plan.PacingDeadline,
		DeadlineDate: date(2024, time.January, 1),
	})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 80, days[0].DailyPages)
}

/*
TestRecalculateEndDate verifies end-date projection against the reader's
actual position.
*/
func TestRecalculateEndDate(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 45, 12, 0, time.UTC)
	today := date(2024, time.March, 15)

	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		dailyPages  int
		want        time.Time
	}{
		{"behind pushes out", 50, 300, 30, today.AddDate(0, 0, 9)},
		{"even division", 100, 300, 50, today.AddDate(0, 0, 4)},
		{"one page left", 299, 300, 30, today.AddDate(0, 0, 1)},
		{"finished resolves to today", 300, 300, 30, today},
		{"over-tracked resolves to today", 310, 300, 30, today},
		{"untouched book", 0, 300, 20, today.AddDate(0, 0, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plan.RecalculateEndDate(tt.currentPage, tt.totalPages, tt.dailyPages, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestDaysBetweenInclusive verifies endpoint-inclusive day counting.
*/
func TestDaysBetweenInclusive(t *testing.T) {
	assert.Equal(t, 1, plan.DaysBetweenInclusive(date(2024, time.January, 1), date(2024, time.January, 1)))
	assert.Equal(t, 10, plan.DaysBetweenInclusive(date(2024, time.January, 1), date(2024, time.January, 10)))
	assert.Equal(t, 0, plan.DaysBetweenInclusive(date(2024, time.January, 2), date(2024, time.January, 1)))

	// Wall-clock components never change the day count.
	from := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 3, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, plan.DaysBetweenInclusive(from, to))
}

/*
TestMidnight verifies UTC day truncation.
*/
func TestMidnight(t *testing.T) {
	in := time.Date(2024, time.July, 4, 18, 30, 59, 123, time.FixedZone("UTC+2", 2*3600))
	assert.Equal(t, date(2024, time.July, 4), plan.Midnight(in))
}
