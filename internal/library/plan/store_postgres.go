// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/dberr"
)

// # PostgreSQL Repository

// planRepository implements the [Repository] interface using pgx.
type planRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed plan store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &planRepository{pool: pool}
}

/*
FindByBook retrieves the plan attached to a book.

Returns:
  - *Plan: The stored pacing configuration
  - error: apperr.NotFound if the book has no plan
*/
func (repository *planRepository) FindByBook(context context.Context, bookID string) (*Plan, error) {

	// Single-row lookup on the unique bookid constraint
	query := `
		SELECT id, bookid, pacingmode, startdate, startingpage, dailypages,
		       deadlinedate, enddate, createdat, updatedat
		FROM library.plan
		WHERE bookid = $1
	`

	var plan Plan
	err := repository.pool.QueryRow(context, query, bookID).Scan(
		&plan.ID, &plan.BookID, &plan.Mode, &plan.StartDate, &plan.StartingPage,
		&plan.DailyPages, &plan.DeadlineDate, &plan.EndDate,
		&plan.CreatedAt, &plan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Plan")
		}
		return nil, fmt.Errorf("postgres: failed to find plan by book: %w", err)
	}

	return &plan, nil
}

/*
Create persists a new plan row.

Returns:
  - error: apperr.Conflict if the book already has a plan (unique bookid)
*/
func (repository *planRepository) Create(context context.Context, plan *Plan) error {

	// Insertion blueprint
	query := `
		INSERT INTO library.plan (id, bookid, pacingmode, startdate, startingpage, dailypages, deadlinedate, enddate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Contextual execute
	_, err := repository.pool.Exec(context, query,
		plan.ID, plan.BookID, plan.Mode, plan.StartDate, plan.StartingPage,
		plan.DailyPages, plan.DeadlineDate, plan.EndDate,
	)

	return dberr.Wrap(err, "create_plan")
}

/*
UpdateEndDate writes a freshly projected completion date.

Returns:
  - error: apperr.NotFound if the plan row is gone
*/
func (repository *planRepository) UpdateEndDate(context context.Context, planID string, endDate time.Time) error {

	query := `UPDATE library.plan SET enddate = $1, updatedat = NOW() WHERE id = $2`

	result, err := repository.pool.Exec(context, query, endDate, planID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update plan end date: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Plan")
	}

	return nil
}

/*
DeleteByBook removes a book's plan.

Returns:
  - error: apperr.NotFound if the book has no plan
*/
func (repository *planRepository) DeleteByBook(context context.Context, bookID string) error {

	query := `DELETE FROM library.plan WHERE bookid = $1`

	result, err := repository.pool.Exec(context, query, bookID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Plan")
	}

	return nil
}
