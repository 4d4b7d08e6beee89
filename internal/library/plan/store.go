// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan

import (
	"context"
	"time"
)

// # Plan Data Access

// Repository defines the data access contract for stored pacing
// configurations. A book holds at most one plan; the schedule itself is
// derived and never stored.
type Repository interface {

	/*
		FindByBook returns the plan attached to a book.

		Parameters:
		  - context: context.Context
		  - bookID: string (Owner book UUID)

		Returns:
		  - *Plan: The stored pacing configuration
		  - error: apperr.NotFound if the book has no plan
	*/
	FindByBook(context context.Context, bookID string) (*Plan, error)

	/*
		Create persists a new plan.

		Returns:
		  - error: apperr.Conflict if the book already has a plan
	*/
	Create(context context.Context, plan *Plan) error

	/*
		UpdateEndDate writes a freshly projected completion date.

		Returns:
		  - error: apperr.NotFound if the plan row is gone
	*/
	UpdateEndDate(context context.Context, planID string, endDate time.Time) error

	/*
		DeleteByBook removes a book's plan. The reading log is untouched.

		Returns:
		  - error: apperr.NotFound if the book has no plan
	*/
	DeleteByBook(context context.Context, bookID string) error
}
