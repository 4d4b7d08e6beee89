// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package book

import (
	"context"
	"log/slog"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/validate"
	"github.com/leafmark/leafmark/pkg/slug"
	"github.com/leafmark/leafmark/pkg/uuid"
)

const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldTotalPages  = "total_pages"
	FieldCurrentPage = "current_page"
	FieldStatus      = "status"

	// MaxTitleLen bounds titles to keep slugs and listings manageable.
	MaxTitleLen = 300
	// MaxAuthorLen bounds the author display string.
	MaxAuthorLen = 200
)

// PlanRefresher recomputes a plan's projected end date after the book's
// confirmed position or page count moves. Satisfied by the plan service;
// books without a plan are a no-op.
type PlanRefresher interface {
	RefreshEndDate(context context.Context, bookID string, currentPage, totalPages int) error
}

// Invalidator discards cached analytics for a book after its progress state
// changes. Satisfied by the analytics cache.
type Invalidator interface {
	Invalidate(context context.Context, bookID string) error
}

// # Service Layer

// Service orchestrates the business logic for the user's shelf.
type Service struct {
	bookRepo Repository
	plans    PlanRefresher
	cache    Invalidator
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(bookRepo Repository, plans PlanRefresher, cache Invalidator, logger *slog.Logger) *Service {
	return &Service{
		bookRepo: bookRepo,
		plans:    plans,
		cache:    cache,
		logger:   logger,
	}
}

// # Shelf Operations

/*
ListBooks retrieves a filtered, paginated view of the user's shelf.

Parameters:
  - context: context.Context
  - userID: string (Owner ID)
  - filter: Filter (Status, search query, sort direction)
  - limit: int
  - offset: int

Returns:
  - []*Book: Matching books
  - int: Total count matching filters
  - error: Storage or execution errors
*/
func (service *Service) ListBooks(context context.Context, userID string, filter Filter, limit, offset int) ([]*Book, int, error) {
	if filter.Status != "" {
		v := &validate.Validator{}
		v.OneOf(FieldStatus, filter.Status, Statuses...)
		if err := v.Err(); err != nil {
			return nil, 0, err
		}
	}

	return service.bookRepo.List(context, userID, filter, limit, offset)
}

/*
GetBook retrieves a single book scoped to its owner.

Returns:
  - *Book: The hydrated entity
  - error: apperr.NotFound if missing or not owned by the user
*/
func (service *Service) GetBook(context context.Context, id, userID string) (*Book, error) {
	return service.bookRepo.FindByID(context, id, userID)
}

/*
CreateBook adds a new title to the user's shelf.

Description: Validates the core metadata, derives a URL slug from the title,
and defaults the shelf state. A book created with a non-zero current page
lands directly in the "reading" state.

Parameters:
  - context: context.Context
  - book: *Book (Title, Author, TotalPages, optional CurrentPage and Status)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateBook(context context.Context, book *Book) error {

	// 1. Identity and derived field generation
	if book.ID == "" {
		book.ID = uuid.New()
	}
	book.Slug = slug.From(book.Title)

	// 2. Shelf state defaults
	if book.Status == "" {
		book.Status = StatusToRead
		if book.CurrentPage > 0 {
			book.Status = StatusReading
		}
	}

	// 3. Business attribute validation
	v := &validate.Validator{}
	v.Required(FieldTitle, book.Title)
	v.MaxLen(FieldTitle, book.Title, MaxTitleLen)
	v.MaxLen(FieldAuthor, book.Author, MaxAuthorLen)
	v.Positive(FieldTotalPages, book.TotalPages)
	v.NonNegative(FieldCurrentPage, book.CurrentPage)
	v.OneOf(FieldStatus, string(book.Status), Statuses...)
	v.Custom(FieldCurrentPage, book.CurrentPage > book.TotalPages, "Current page cannot exceed total pages")

	if err := v.Err(); err != nil {
		return err
	}

	// 4. Storage persistence
	if err := service.bookRepo.Create(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("user_id", book.UserID),
		slog.Int("total_pages", book.TotalPages),
	)

	return nil
}

/*
UpdateBook persists metadata changes to an existing book.

Description: Re-derives the slug when the title changes and guards the
current-page invariant against a shrunk page count. Shrinking TotalPages
below the confirmed position is rejected rather than silently clamped.

Returns:
  - error: Validation, NotFound, or persistence errors
*/
func (service *Service) UpdateBook(context context.Context, book *Book) error {

	// Load the current row to diff against
	existing, err := service.bookRepo.FindByID(context, book.ID, book.UserID)
	if err != nil {
		return err
	}

	// Carry forward unspecified fields
	if book.Title == "" {
		book.Title = existing.Title
	}
	if book.TotalPages == 0 {
		book.TotalPages = existing.TotalPages
	}
	if book.Status == "" {
		book.Status = existing.Status
	}
	book.CurrentPage = existing.CurrentPage
	book.Slug = slug.From(book.Title)

	v := &validate.Validator{}
	v.Required(FieldTitle, book.Title)
	v.MaxLen(FieldTitle, book.Title, MaxTitleLen)
	v.MaxLen(FieldAuthor, book.Author, MaxAuthorLen)
	v.Positive(FieldTotalPages, book.TotalPages)
	v.OneOf(FieldStatus, string(book.Status), Statuses...)
	v.Custom(FieldTotalPages, book.TotalPages < existing.CurrentPage, "Total pages cannot be below the current reading position")

	if err := v.Err(); err != nil {
		return err
	}

	if err := service.bookRepo.Update(context, book); err != nil {
		return err
	}

	// Page-count changes reshape the plan's end date and pace projections
	if book.TotalPages != existing.TotalPages {
		if err := service.plans.RefreshEndDate(context, book.ID, existing.CurrentPage, book.TotalPages); err != nil {
			service.logger.Warn("plan_refresh_failed", slog.String("book_id", book.ID), slog.String("error", err.Error()))
		}

		if err := service.cache.Invalidate(context, book.ID); err != nil {
			service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", book.ID), slog.String("error", err.Error()))
		}
	}

	service.logger.Info("book_updated", slog.String("book_id", book.ID))

	return nil
}

/*
SetCurrentPage moves the confirmed reading position directly.

Description: The manual bookmark override. The position must stay inside
[0, TotalPages]; out-of-window values are rejected with INVALID_PAGE. The
shelf status follows the position: reaching the last page finishes the book,
moving off page zero marks it as reading, and resetting to zero shelves it
back to "to read". The book's plan (if any) gets a fresh projected end date
from the new position.

Parameters:
  - context: context.Context
  - id: string (Book UUID)
  - userID: string (Owner ID)
  - currentPage: int (New confirmed position)

Returns:
  - *Book: The updated entity
  - error: INVALID_PAGE, NotFound, or persistence errors
*/
func (service *Service) SetCurrentPage(context context.Context, id, userID string, currentPage int) (*Book, error) {

	// 1. Ownership and existence check
	book, err := service.bookRepo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	// 2. Position window enforcement
	if currentPage < 0 || currentPage > book.TotalPages {
		return nil, apperr.InvalidPage("Current page must be between 0 and the book's total pages")
	}

	// 3. Status follows the position
	status := deriveStatus(book.Status, currentPage, book.TotalPages)

	if err := service.bookRepo.SetProgress(context, id, userID, currentPage, status); err != nil {
		return nil, err
	}

	book.CurrentPage = currentPage
	book.Status = status

	// 4. Downstream projections follow the settled position
	if err := service.plans.RefreshEndDate(context, id, currentPage, book.TotalPages); err != nil {
		service.logger.Warn("plan_refresh_failed", slog.String("book_id", id), slog.String("error", err.Error()))
	}

	if err := service.cache.Invalidate(context, id); err != nil {
		service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", id), slog.String("error", err.Error()))
	}

	service.logger.Info("book_progress_set",
		slog.String("book_id", id),
		slog.Int("current_page", currentPage),
	)

	return book, nil
}

/*
DeleteBook soft-deletes a book from the user's shelf.

Returns:
  - error: apperr.NotFound if missing, or persistence errors
*/
func (service *Service) DeleteBook(context context.Context, id, userID string) error {
	if err := service.bookRepo.SoftDelete(context, id, userID); err != nil {
		return err
	}

	if err := service.cache.Invalidate(context, id); err != nil {
		service.logger.Warn("analytics_invalidate_failed", slog.String("book_id", id), slog.String("error", err.Error()))
	}

	service.logger.Info("book_deleted", slog.String("book_id", id), slog.String("user_id", userID))

	return nil
}

// # Internal Helpers

// deriveStatus maps a confirmed position onto the shelf state. Abandoned
// books stay abandoned unless the reader reaches the final page.
func deriveStatus(current Status, currentPage, totalPages int) Status {
	switch {
	case currentPage >= totalPages:
		return StatusFinished
	case currentPage > 0:
		if current == StatusAbandoned {
			return StatusAbandoned
		}
		return StatusReading
	default:
		if current == StatusAbandoned {
			return StatusAbandoned
		}
		return StatusToRead
	}
}
