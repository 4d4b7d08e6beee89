// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/leafmark/leafmark/internal/library/book"
	"github.com/leafmark/leafmark/internal/library/plan"
	"github.com/leafmark/leafmark/internal/library/session"
	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// # Service Layer

// Service assembles the projector's inputs and fronts it with the cache.
type Service struct {
	bookRepo    book.Repository
	planRepo    plan.Repository
	sessionRepo session.Repository
	cache       *Cache
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(bookRepo book.Repository, planRepo plan.Repository, sessionRepo session.Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		bookRepo:    bookRepo,
		planRepo:    planRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		logger:      logger,
	}
}

/*
AnalyzeBook returns the derived metric set for one of the user's books.

Description: Serves from the Redis cache when a fresh projection exists;
otherwise gathers the log, the plan's end date, and the reader's historical
speed, runs the projector, and caches the result. Cache failures degrade to
a recompute rather than an error.

Parameters:
  - context: context.Context
  - bookID: string (Book UUID)
  - userID: string (Owner ID)

Returns:
  - *Analysis: The derived metrics
  - error: apperr.NotFound if the book is not on the user's shelf
*/
func (service *Service) AnalyzeBook(context context.Context, bookID, userID string) (*Analysis, error) {

	// 1. Ownership gate
	target, err := service.bookRepo.FindByID(context, bookID, userID)
	if err != nil {
		return nil, err
	}

	// 2. Cache probe
	cached, err := service.cache.Get(context, bookID)
	if err != nil {
		service.logger.Warn("analytics_cache_read_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}
	if cached != nil {
		return cached, nil
	}

	// 3. Projection inputs
	entries, err := service.sessionRepo.ListByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	var planEndDate *time.Time
	stored, err := service.planRepo.FindByBook(context, bookID)
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, err
		}
	} else {
		planEndDate = &stored.EndDate
	}

	fallbackPPM, err := service.sessionRepo.AverageUserPagesPerMinute(context, userID)
	if err != nil {
		return nil, err
	}

	// 4. Pure projection
	analysis := Analyze(entries, target.TotalPages, target.CurrentPage, planEndDate, fallbackPPM, time.Now())

	// 5. Cache fill
	if err := service.cache.Set(context, bookID, &analysis); err != nil {
		service.logger.Warn("analytics_cache_write_failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}

	return &analysis, nil
}
