// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/leafmark/leafmark/internal/library/book"
	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/validate"
)

const (
	FieldDate            = "date"
	FieldPagesRead       = "pages_read"
	FieldDurationMinutes = "duration_minutes"
)

// PlanRefresher recomputes a plan's projected end date after the book's
// confirmed position moves. Satisfied by the plan service; books without a
// plan are a no-op.
type PlanRefresher interface {
	RefreshEndDate(context context.Context, bookID string, currentPage, totalPages int) error
}

// Invalidator discards cached analytics for a book after its log changes.
// Satisfied by the analytics cache.
type Invalidator interface {
	Invalidate(context context.Context, bookID string) error
}

// # Service Layer

// Service orchestrates the reading-log business logic.
type Service struct {
	sessionRepo Repository
	bookRepo    book.Repository
	plans       PlanRefresher
	cache       Invalidator
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(sessionRepo Repository, bookRepo book.Repository, plans PlanRefresher, cache Invalidator, logger *slog.Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		bookRepo:    bookRepo,
		plans:       plans,
		cache:       cache,
		logger:      logger,
	}
}

// # Log Operations

/*
ListSessions returns the chronological reading log for one of the user's
books.

Parameters:
  - context: context.Context
  - bookID: string (Book UUID)
  - userID: string (Owner ID)

Returns:
  - []*Entry: The log, oldest first
  - error: apperr.NotFound if the book is not on the user's shelf
*/
func (service *Service) ListSessions(context context.Context, bookID, userID string) ([]*Entry, error) {

	// Ownership gate before touching the log
	if _, err := service.bookRepo.FindByID(context, bookID, userID); err != nil {
		return nil, err
	}

	return service.sessionRepo.ListByBook(context, bookID)
}

/*
RecordSession logs a reading session against a book.

Description: The session advances the book's confirmed position by the pages
read, merging into the day's existing entry when one exists. The implied end
page must not overshoot the book; a session that would land past the last
page is rejected with INVALID_PAGE rather than clamped, since it signals
either a mistyped page count or a stale client.

After the log write commits, the book's plan (if any) gets a fresh projected
end date, and cached analytics are discarded.

Parameters:
  - context: context.Context
  - bookID: string (Book UUID)
  - userID: string (Owner ID)
  - date: string (Calendar day, YYYY-MM-DD)
  - pagesRead: int (Pages covered, must be positive)
  - durationMinutes: int (Optional reading time, 0 when untracked)

Returns:
  - *Entry: The day's entry after merging
  - error: Validation, INVALID_PAGE, NotFound, or persistence errors
*/
func (service *Service) RecordSession(context context.Context, bookID, userID, date string, pagesRead, durationMinutes int) (*Entry, error) {

	// 1. Input validation
	v := &validate.Validator{}
	v.Date(FieldDate, date)
	v.Positive(FieldPagesRead, pagesRead)
	v.NonNegative(FieldDurationMinutes, durationMinutes)
	if err := v.Err(); err != nil {
		return nil, err
	}

	readOn, _ := time.Parse(validate.DateLayout, date)

	// 2. Ownership and position window check
	target, err := service.bookRepo.FindByID(context, bookID, userID)
	if err != nil {
		return nil, err
	}

	endPage := target.CurrentPage + pagesRead
	if endPage > target.TotalPages {
		return nil, apperr.InvalidPage("Session would read past the book's last page")
	}

	// 3. Atomic log merge and bookmark advance
	entry, err := service.sessionRepo.Accumulate(context, bookID, readOn, pagesRead, durationMinutes*60, endPage)
	if err != nil {
		return nil, err
	}

	// 4. Downstream projections follow the committed log
	if err := service.plans.RefreshEndDate(context, bookID, endPage, target.TotalPages); err != nil {
		service.logger.Warn("plan_refresh_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}

	if err := service.cache.Invalidate(context, bookID); err != nil {
		service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}

	service.logger.Info("session_recorded",
		slog.String("book_id", bookID),
		slog.String("read_on", date),
		slog.Int("pages_read", pagesRead),
		slog.Int("duration_minutes", durationMinutes),
	)

	return entry, nil
}
