// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package plan implements reading-plan generation and progress reconciliation.

A plan distributes the unread pages of a book over a calendar range, producing
a day-by-day page schedule. As the reader logs actual activity, the plan's
horizon (end date) slides while the pacing rate stays fixed.

# Core Responsibility

  - Scheduling: Expands a [PacingSpec] into an ordered [ReadingDay] sequence.
  - Reconciliation: Keeps the book's current page and the plan end date
    consistent with user-confirmed reading activity.

The schedule itself is never stored; it is derived wholesale from the stored
pacing parameters on every read, so there is no per-day row state to drift.
*/
package plan

import "time"

// # Pacing Modes

// PacingMode selects how the daily page target of a plan is determined.
type PacingMode string

const (
	// PacingFixedDaily distributes pages at a user-chosen fixed rate per day.
	PacingFixedDaily PacingMode = "fixed_daily"

	// PacingDeadline derives the daily rate from a target completion date.
	PacingDeadline PacingMode = "deadline"
)

// # Domain Entities

// Plan is the stored pacing configuration for a single book.
//
// DailyPages always holds the effective rate: for deadline mode it is
// resolved once at creation, so later recalculations never depend on the
// original deadline.
type Plan struct {
	ID           string     `json:"id"`
	BookID       string     `json:"book_id"`
	Mode         PacingMode `json:"pacing_mode"`
	StartDate    time.Time  `json:"start_date"`
	StartingPage int        `json:"starting_page"`
	DailyPages   int        `json:"daily_pages"`
	DeadlineDate *time.Time `json:"deadline_date,omitempty"`
	EndDate      time.Time  `json:"end_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PacingSpec is the input to schedule generation.
//
// Invariant: StartingPage < TotalPages for a plannable book. DailyPages is
// consulted only in fixed-daily mode; DeadlineDate only in deadline mode.
type PacingSpec struct {
	StartDate    time.Time
	TotalPages   int
	StartingPage int
	Mode         PacingMode
	DailyPages   int
	DeadlineDate time.Time
}

// ReadingDay is one scheduled day's page assignment within a generated plan.
//
// Page ranges are inclusive on both ends: day n+1 starts at day n's EndPage+1,
// and the final day's EndPage equals the book's total page count.
type ReadingDay struct {
	DayNumber  int       `json:"day_number"`
	Date       time.Time `json:"date"`
	StartPage  int       `json:"start_page"`
	EndPage    int       `json:"end_page"`
	DailyPages int       `json:"daily_pages"`
}

// ScheduledDay decorates a [ReadingDay] with its completion state, derived
// from the session log by matching calendar dates.
type ScheduledDay struct {
	ReadingDay
	Completed bool `json:"completed"`
}

// View is the full read-model for a book's plan: the stored pacing
// configuration plus the freshly derived schedule.
type View struct {
	Plan *Plan          `json:"plan"`
	Days []ScheduledDay `json:"days"`
}
