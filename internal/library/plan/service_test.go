// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/library/book"
	"github.com/leafmark/leafmark/internal/library/plan"
	"github.com/leafmark/leafmark/internal/library/session"
	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// # Test Fakes

// fakeBookRepo is an in-memory [book.Repository].
type fakeBookRepo struct {
	books map[string]*book.Book
}

func (f *fakeBookRepo) List(_ context.Context, userID string, _ book.Filter, _, _ int) ([]*book.Book, int, error) {
	var out []*book.Book
	for _, b := range f.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id, userID string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok || b.UserID != userID {
		return nil, apperr.NotFound("Book")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) SetProgress(_ context.Context, id, _ string, currentPage int, status book.Status) error {
	f.books[id].CurrentPage = currentPage
	f.books[id].Status = status
	return nil
}

func (f *fakeBookRepo) SoftDelete(_ context.Context, id, _ string) error {
	delete(f.books, id)
	return nil
}

// fakeSessionRepo is an in-memory [session.Repository]. It mirrors the
// transactional coupling of the real store: every log write also settles the
// book's bookmark.
type fakeSessionRepo struct {
	books   *fakeBookRepo
	entries map[string]map[string]*session.Entry // bookID -> date -> entry
}

func (f *fakeSessionRepo) logFor(bookID string) map[string]*session.Entry {
	if f.entries[bookID] == nil {
		f.entries[bookID] = map[string]*session.Entry{}
	}
	return f.entries[bookID]
}

func (f *fakeSessionRepo) ListByBook(_ context.Context, bookID string) ([]*session.Entry, error) {
	var out []*session.Entry
	for _, e := range f.logFor(bookID) {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeSessionRepo) Accumulate(_ context.Context, bookID string, readOn time.Time, pagesRead, durationSeconds, currentPage int) (*session.Entry, error) {
	key := readOn.Format(plan.DateLayout)
	log := f.logFor(bookID)
	if existing, ok := log[key]; ok {
		existing.PagesRead += pagesRead
		existing.DurationSeconds += durationSeconds
	} else {
		log[key] = &session.Entry{BookID: bookID, ReadOn: readOn, PagesRead: pagesRead, DurationSeconds: durationSeconds}
	}
	f.books.books[bookID].CurrentPage = currentPage
	return log[key], nil
}

func (f *fakeSessionRepo) MarkDay(_ context.Context, bookID string, readOn time.Time, pagesRead, currentPage int) error {
	key := readOn.Format(plan.DateLayout)
	log := f.logFor(bookID)
	// Set semantics on the page count; tracked duration survives the toggle,
	// matching the real store's upsert.
	if existing, ok := log[key]; ok {
		existing.PagesRead = pagesRead
	} else {
		log[key] = &session.Entry{BookID: bookID, ReadOn: readOn, PagesRead: pagesRead}
	}
	f.books.books[bookID].CurrentPage = currentPage
	return nil
}

func (f *fakeSessionRepo) UnmarkDay(_ context.Context, bookID string, readOn time.Time, keepPage int) (int, error) {
	log := f.logFor(bookID)
	delete(log, readOn.Format(plan.DateLayout))

	page := keepPage
	if len(log) == 0 {
		page = 0
	}
	f.books.books[bookID].CurrentPage = page
	return len(log), nil
}

func (f *fakeSessionRepo) AverageUserPagesPerMinute(_ context.Context, _ string) (float64, error) {
	return 0, nil
}

// fakePlanRepo is an in-memory [plan.Repository].
type fakePlanRepo struct {
	plans map[string]*plan.Plan // keyed by book ID
}

func (f *fakePlanRepo) FindByBook(_ context.Context, bookID string) (*plan.Plan, error) {
	p, ok := f.plans[bookID]
	if !ok {
		return nil, apperr.NotFound("Plan")
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlanRepo) Create(_ context.Context, p *plan.Plan) error {
	if _, ok := f.plans[p.BookID]; ok {
		return apperr.Conflict("Resource already exists")
	}
	f.plans[p.BookID] = p
	return nil
}

func (f *fakePlanRepo) UpdateEndDate(_ context.Context, planID string, endDate time.Time) error {
	for _, p := range f.plans {
		if p.ID == planID {
			p.EndDate = endDate
			return nil
		}
	}
	return apperr.NotFound("Plan")
}

func (f *fakePlanRepo) DeleteByBook(_ context.Context, bookID string) error {
	if _, ok := f.plans[bookID]; !ok {
		return apperr.NotFound("Plan")
	}
	delete(f.plans, bookID)
	return nil
}

// fakeInvalidator counts cache invalidations.
type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(_ context.Context, _ string) error {
	f.calls++
	return nil
}

// # Harness

const (
	testUserID = "user-1"
	testBookID = "book-1"
)

type harness struct {
	service  *plan.Service
	books    *fakeBookRepo
	plans    *fakePlanRepo
	sessions *fakeSessionRepo
	cache    *fakeInvalidator
}

// newHarness wires a service over fakes with one 300-page book on the shelf.
func newHarness(t *testing.T, currentPage int) *harness {
	t.Helper()

	books := &fakeBookRepo{books: map[string]*book.Book{
		testBookID: {
			ID:          testBookID,
			UserID:      testUserID,
			Title:       "The Left Hand of Darkness",
			TotalPages:  300,
			CurrentPage: currentPage,
			Status:      book.StatusReading,
		},
	}}
	plans := &fakePlanRepo{plans: map[string]*plan.Plan{}}
	sessions := &fakeSessionRepo{books: books, entries: map[string]map[string]*session.Entry{}}
	cache := &fakeInvalidator{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := plan.NewService(plans, books, sessions, cache, logger)

	return &harness{service: service, books: books, plans: plans, sessions: sessions, cache: cache}
}

// # Plan Creation

func TestCreatePlan_FixedDaily(t *testing.T) {
	h := newHarness(t, 0)

	view, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, view.Plan.DailyPages)
	assert.Len(t, view.Days, 15)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), view.Plan.EndDate)
	assert.Nil(t, view.Plan.DeadlineDate)
	assert.Equal(t, 1, h.cache.calls)
}

func TestCreatePlan_DeadlineResolvesRate(t *testing.T) {
	h := newHarness(t, 0)

	view, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:         string(plan.PacingDeadline),
		StartDate:    "2024-01-01",
		DeadlineDate: "2024-01-10",
	})
	require.NoError(t, err)

	// 300 pages over 10 inclusive days resolve to a fixed 30/day rate.
	assert.Equal(t, 30, view.Plan.DailyPages)
	require.NotNil(t, view.Plan.DeadlineDate)
	assert.Len(t, view.Days, 10)
	assert.Equal(t, 300, view.Days[9].EndPage)
}

func TestCreatePlan_StartsFromBookmark(t *testing.T) {
	h := newHarness(t, 50)

	view, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, 50, view.Plan.StartingPage)
	assert.Equal(t, 51, view.Days[0].StartPage)
	assert.Len(t, view.Days, 10)
}

func TestCreatePlan_FinishedBookRejected(t *testing.T) {
	h := newHarness(t, 300)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidRange(err))
}

func TestCreatePlan_DuplicateRejected(t *testing.T) {
	h := newHarness(t, 0)

	input := plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	}

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, input)
	require.NoError(t, err)

	_, err = h.service.CreatePlan(context.Background(), testBookID, testUserID, input)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

func TestCreatePlan_InvalidInput(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       "weekly",
		StartDate:  "not-a-date",
		DailyPages: 20,
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// # Day Toggling

func TestToggleDay_MarkAdvancesBookmark(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	view, err := h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, true)
	require.NoError(t, err)

	assert.Equal(t, 20, h.books.books[testBookID].CurrentPage)
	assert.True(t, view.Days[0].Completed)
	assert.False(t, view.Days[1].Completed)

	// 280 pages left at 20/day projects 14 days from today.
	wantEnd := plan.Midnight(time.Now()).AddDate(0, 0, 14)
	assert.Equal(t, wantEnd, view.Plan.EndDate)
}

func TestToggleDay_MarkIsIdempotent(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	_, err = h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, true)
	require.NoError(t, err)
	view, err := h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, true)
	require.NoError(t, err)

	assert.Equal(t, 20, h.books.books[testBookID].CurrentPage)
	assert.True(t, view.Days[0].Completed)
}

func TestToggleDay_MarkKeepsTimedDuration(t *testing.T) {
	h := newHarness(t, 0)

	// A timed session already sits on day 1's date.
	day1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := h.sessions.Accumulate(context.Background(), testBookID, day1, 5, 900, 5)
	require.NoError(t, err)

	_, err = h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	_, err = h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, true)
	require.NoError(t, err)

	// The toggle sets the day's page count to the quota but carries no time
	// signal, so the measured duration stays.
	entry := h.sessions.entries[testBookID]["2024-01-01"]
	require.NotNil(t, entry)
	assert.Equal(t, 20, entry.PagesRead)
	assert.Equal(t, 900, entry.DurationSeconds)
}

func TestToggleDay_UnmarkResetsWhenLogEmpties(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	_, err = h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, true)
	require.NoError(t, err)

	view, err := h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, false)
	require.NoError(t, err)

	// The last surviving entry went away, so no confirmed progress remains.
	assert.Equal(t, 0, h.books.books[testBookID].CurrentPage)
	assert.False(t, view.Days[0].Completed)
}

func TestToggleDay_UnmarkKeepsBookmarkWhileLogRemains(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	_, err = h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, true)
	require.NoError(t, err)
	_, err = h.service.ToggleDay(context.Background(), testBookID, testUserID, 2, true)
	require.NoError(t, err)

	view, err := h.service.ToggleDay(context.Background(), testBookID, testUserID, 1, false)
	require.NoError(t, err)

	// Day 2's entry still vouches for the position; only its checkbox clears.
	assert.Equal(t, 40, h.books.books[testBookID].CurrentPage)
	assert.False(t, view.Days[0].Completed)
	assert.True(t, view.Days[1].Completed)
}

func TestToggleDay_UnknownDay(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	_, err = h.service.ToggleDay(context.Background(), testBookID, testUserID, 99, true)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # End-Date Refresh

func TestRefreshEndDate_NoPlanIsNoop(t *testing.T) {
	h := newHarness(t, 0)

	err := h.service.RefreshEndDate(context.Background(), testBookID, 100, 300)
	assert.NoError(t, err)
}

func TestRefreshEndDate_Reprojects(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 30,
	})
	require.NoError(t, err)

	require.NoError(t, h.service.RefreshEndDate(context.Background(), testBookID, 50, 300))

	// ceil(250/30) = 9 days out from today.
	wantEnd := plan.Midnight(time.Now()).AddDate(0, 0, 9)
	assert.Equal(t, wantEnd, h.plans.plans[testBookID].EndDate)
}

// # Ownership

func TestGetPlan_WrongUser(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.CreatePlan(context.Background(), testBookID, testUserID, plan.CreateInput{
		Mode:       string(plan.PacingFixedDaily),
		StartDate:  "2024-01-01",
		DailyPages: 20,
	})
	require.NoError(t, err)

	_, err = h.service.GetPlan(context.Background(), testBookID, "someone-else")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
