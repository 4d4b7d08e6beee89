// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan

import (
	"context"
	"log/slog"
	"time"

	"github.com/leafmark/leafmark/internal/library/book"
	"github.com/leafmark/leafmark/internal/library/session"
	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/validate"
	"github.com/leafmark/leafmark/pkg/pointer"
	"github.com/leafmark/leafmark/pkg/uuid"
)

const (
	FieldMode       = "pacing_mode"
	FieldStartDate  = "start_date"
	FieldDailyPages = "daily_pages"
	FieldDeadline   = "deadline_date"
)

// Modes lists every valid pacing mode, used for input validation.
var Modes = []string{string(PacingFixedDaily), string(PacingDeadline)}

// Invalidator discards cached analytics for a book after its plan or
// progress state changes. Satisfied by the analytics cache.
type Invalidator interface {
	Invalidate(context context.Context, bookID string) error
}

// # Service Layer

// Service orchestrates plan generation and progress reconciliation.
type Service struct {
	planRepo    Repository
	bookRepo    book.Repository
	sessionRepo session.Repository
	cache       Invalidator
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(planRepo Repository, bookRepo book.Repository, sessionRepo session.Repository, cache Invalidator, logger *slog.Logger) *Service {
	return &Service{
		planRepo:    planRepo,
		bookRepo:    bookRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		logger:      logger,
	}
}

// CreateInput carries the user's pacing choices for a new plan.
type CreateInput struct {
	Mode         string
	StartDate    string
	DailyPages   int
	DeadlineDate string
}

// # Plan Operations

/*
CreatePlan attaches a pacing plan to a book.

Description: The plan starts from the book's confirmed position: pages the
reader has already covered are never rescheduled. Deadline mode resolves its
implied daily rate once, here, so the stored plan is always expressible as a
fixed rate. A book can hold one plan at a time.

Parameters:
  - context: context.Context
  - bookID: string (Book UUID)
  - userID: string (Owner ID)
  - input: CreateInput (Mode, start date, and the mode's rate parameter)

Returns:
  - *View: The stored plan plus its derived schedule
  - error: Validation, INVALID_RANGE, Conflict, NotFound, or persistence errors
*/
func (service *Service) CreatePlan(context context.Context, bookID, userID string, input CreateInput) (*View, error) {

	// 1. Input validation
	v := &validate.Validator{}
	v.OneOf(FieldMode, input.Mode, Modes...)
	v.Date(FieldStartDate, input.StartDate)
	if PacingMode(input.Mode) == PacingDeadline {
		v.Date(FieldDeadline, input.DeadlineDate)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	startDate, _ := time.Parse(DateLayout, input.StartDate)

	// 2. Ownership gate and pacing spec assembly
	target, err := service.bookRepo.FindByID(context, bookID, userID)
	if err != nil {
		return nil, err
	}

	if target.CurrentPage >= target.TotalPages {
		return nil, apperr.InvalidRange("Book is already finished")
	}

	spec := PacingSpec{
		StartDate:    startDate,
		TotalPages:   target.TotalPages,
		StartingPage: target.CurrentPage,
		Mode:         PacingMode(input.Mode),
		DailyPages:   input.DailyPages,
	}

	var deadline *time.Time
	if spec.Mode == PacingDeadline {
		d, _ := time.Parse(DateLayout, input.DeadlineDate)
		spec.DeadlineDate = d
		deadline = pointer.To(d)
	}

	// 3. Rate resolution and schedule generation
	daily, err := EffectiveDailyPages(spec)
	if err != nil {
		return nil, err
	}

	days, err := BuildSchedule(spec)
	if err != nil {
		return nil, err
	}

	endDate := Midnight(startDate)
	if len(days) > 0 {
		endDate = days[len(days)-1].Date
	}

	// 4. Persistence
	stored := &Plan{
		ID:           uuid.New(),
		BookID:       bookID,
		Mode:         spec.Mode,
		StartDate:    Midnight(startDate),
		StartingPage: target.CurrentPage,
		DailyPages:   daily,
		DeadlineDate: deadline,
		EndDate:      endDate,
	}

	if err := service.planRepo.Create(context, stored); err != nil {
		return nil, err
	}

	if err := service.cache.Invalidate(context, bookID); err != nil {
		service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}

	service.logger.Info("plan_created",
		slog.String("plan_id", stored.ID),
		slog.String("book_id", bookID),
		slog.String("pacing_mode", string(stored.Mode)),
		slog.Int("daily_pages", daily),
	)

	// 5. Derived view assembly
	return service.buildView(context, stored, target.TotalPages)
}

/*
GetPlan returns a book's plan with its freshly derived schedule.

Description: The schedule is regenerated from the stored pacing parameters
on every read; each day's completion state is derived by matching the day's
date against the reading log.

Returns:
  - *View: The plan plus schedule
  - error: apperr.NotFound if the book or its plan does not exist
*/
func (service *Service) GetPlan(context context.Context, bookID, userID string) (*View, error) {

	target, err := service.bookRepo.FindByID(context, bookID, userID)
	if err != nil {
		return nil, err
	}

	stored, err := service.planRepo.FindByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	return service.buildView(context, stored, target.TotalPages)
}

/*
DeletePlan removes a book's plan. The reading log and the book's confirmed
position are untouched.

Returns:
  - error: apperr.NotFound if the book or its plan does not exist
*/
func (service *Service) DeletePlan(context context.Context, bookID, userID string) error {

	if _, err := service.bookRepo.FindByID(context, bookID, userID); err != nil {
		return err
	}

	if err := service.planRepo.DeleteByBook(context, bookID); err != nil {
		return err
	}

	if err := service.cache.Invalidate(context, bookID); err != nil {
		service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}

	service.logger.Info("plan_deleted", slog.String("book_id", bookID))

	return nil
}

// # Progress Reconciliation

/*
ToggleDay marks or unmarks a scheduled day as read.

Description: Marking a day writes the day's page quota into the reading log
(set semantics, so a repeat mark is idempotent) and moves the book's bookmark
to the day's end page. Unmarking removes the log entry; the bookmark resets
to zero only when no other entries remain, since surviving entries still
vouch for prior progress. Either way the plan's projected end date is
recomputed from the settled position.

Parameters:
  - context: context.Context
  - bookID: string (Book UUID)
  - userID: string (Owner ID)
  - dayNumber: int (1-based position in the schedule)
  - done: bool (Target completion state)

Returns:
  - *View: The plan plus schedule after reconciliation
  - error: apperr.NotFound if the book, plan, or day does not exist
*/
func (service *Service) ToggleDay(context context.Context, bookID, userID string, dayNumber int, done bool) (*View, error) {

	// 1. Ownership gate and schedule regeneration
	target, err := service.bookRepo.FindByID(context, bookID, userID)
	if err != nil {
		return nil, err
	}

	stored, err := service.planRepo.FindByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	days, err := BuildSchedule(service.specFor(stored, target.TotalPages))
	if err != nil {
		return nil, err
	}

	if dayNumber < 1 || dayNumber > len(days) {
		return nil, apperr.NotFound("Plan day")
	}
	day := days[dayNumber-1]

	// 2. Atomic log write and bookmark settlement
	var settledPage int
	if done {
		if err := service.sessionRepo.MarkDay(context, bookID, day.Date, day.DailyPages, day.EndPage); err != nil {
			return nil, err
		}
		settledPage = day.EndPage
	} else {
		remaining, err := service.sessionRepo.UnmarkDay(context, bookID, day.Date, target.CurrentPage)
		if err != nil {
			return nil, err
		}
		settledPage = target.CurrentPage
		if remaining == 0 {
			settledPage = 0
		}
	}

	// 3. End-date reprojection from the settled position
	stored.EndDate = RecalculateEndDate(settledPage, target.TotalPages, stored.DailyPages, time.Now())
	if err := service.planRepo.UpdateEndDate(context, stored.ID, stored.EndDate); err != nil {
		return nil, err
	}

	if err := service.cache.Invalidate(context, bookID); err != nil {
		service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}

	service.logger.Info("plan_day_toggled",
		slog.String("book_id", bookID),
		slog.Int("day_number", dayNumber),
		slog.Bool("done", done),
		slog.Int("settled_page", settledPage),
	)

	// 4. Fresh view after reconciliation
	return service.buildView(context, stored, target.TotalPages)
}

/*
RefreshEndDate reprojects a plan's completion date after the book's
confirmed position moved outside the plan flow (a logged session or a manual
bookmark override). Books without a plan are a no-op.

Parameters:
  - context: context.Context
  - bookID: string
  - currentPage: int (The book's settled position)
  - totalPages: int

Returns:
  - error: Persistence errors; a missing plan is not an error
*/
func (service *Service) RefreshEndDate(context context.Context, bookID string, currentPage, totalPages int) error {

	stored, err := service.planRepo.FindByBook(context, bookID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}

	endDate := RecalculateEndDate(currentPage, totalPages, stored.DailyPages, time.Now())
	return service.planRepo.UpdateEndDate(context, stored.ID, endDate)
}

// # Internal Helpers

// specFor rebuilds the generation spec from a stored plan. Deadline plans
// were resolved to an effective rate at creation, so regeneration always
// runs in fixed-daily terms.
func (service *Service) specFor(stored *Plan, totalPages int) PacingSpec {
	return PacingSpec{
		StartDate:    stored.StartDate,
		TotalPages:   totalPages,
		StartingPage: stored.StartingPage,
		Mode:         PacingFixedDaily,
		DailyPages:   stored.DailyPages,
	}
}

// buildView regenerates the schedule and overlays completion state from the
// reading log.
func (service *Service) buildView(context context.Context, stored *Plan, totalPages int) (*View, error) {
	days, err := BuildSchedule(service.specFor(stored, totalPages))
	if err != nil {
		return nil, err
	}

	entries, err := service.sessionRepo.ListByBook(context, stored.BookID)
	if err != nil {
		return nil, err
	}

	// Completion is a date match against the log
	logged := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		logged[entry.ReadOn.UTC().Format(DateLayout)] = struct{}{}
	}

	scheduled := make([]ScheduledDay, 0, len(days))
	for _, day := range days {
		_, done := logged[day.Date.Format(DateLayout)]
		scheduled = append(scheduled, ScheduledDay{ReadingDay: day, Completed: done})
	}

	return &View{Plan: stored, Days: scheduled}, nil
}
