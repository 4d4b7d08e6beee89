// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/library/book"
	"github.com/leafmark/leafmark/internal/library/session"
	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// # Test Fakes

type fakeBookRepo struct {
	books map[string]*book.Book
}

func (f *fakeBookRepo) List(_ context.Context, userID string, _ book.Filter, _, _ int) ([]*book.Book, int, error) {
	return nil, 0, nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id, userID string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok || b.UserID != userID {
		return nil, apperr.NotFound("Book")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) Create(_ context.Context, b *book.Book) error { f.books[b.ID] = b; return nil }
func (f *fakeBookRepo) Update(_ context.Context, b *book.Book) error { f.books[b.ID] = b; return nil }
func (f *fakeBookRepo) SetProgress(_ context.Context, id, _ string, currentPage int, status book.Status) error {
	f.books[id].CurrentPage = currentPage
	f.books[id].Status = status
	return nil
}
func (f *fakeBookRepo) SoftDelete(_ context.Context, id, _ string) error {
	delete(f.books, id)
	return nil
}

type fakeSessionRepo struct {
	books   *fakeBookRepo
	entries map[string]*session.Entry // keyed by date
}

func (f *fakeSessionRepo) ListByBook(_ context.Context, bookID string) ([]*session.Entry, error) {
	var out []*session.Entry
	for _, e := range f.entries {
		if e.BookID == bookID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Accumulate(_ context.Context, bookID string, readOn time.Time, pagesRead, durationSeconds, currentPage int) (*session.Entry, error) {
	key := readOn.Format("2006-01-02")
	if existing, ok := f.entries[key]; ok {
		existing.PagesRead += pagesRead
		existing.DurationSeconds += durationSeconds
	} else {
		f.entries[key] = &session.Entry{BookID: bookID, ReadOn: readOn, PagesRead: pagesRead, DurationSeconds: durationSeconds}
	}
	f.books.books[bookID].CurrentPage = currentPage
	return f.entries[key], nil
}

func (f *fakeSessionRepo) MarkDay(_ context.Context, bookID string, readOn time.Time, pagesRead, currentPage int) error {
	key := readOn.Format("2006-01-02")
	if existing, ok := f.entries[key]; ok {
		existing.PagesRead = pagesRead
	} else {
		f.entries[key] = &session.Entry{BookID: bookID, ReadOn: readOn, PagesRead: pagesRead}
	}
	f.books.books[bookID].CurrentPage = currentPage
	return nil
}

func (f *fakeSessionRepo) UnmarkDay(_ context.Context, bookID string, readOn time.Time, keepPage int) (int, error) {
	delete(f.entries, readOn.Format("2006-01-02"))
	page := keepPage
	if len(f.entries) == 0 {
		page = 0
	}
	f.books.books[bookID].CurrentPage = page
	return len(f.entries), nil
}

func (f *fakeSessionRepo) AverageUserPagesPerMinute(_ context.Context, _ string) (float64, error) {
	return 0, nil
}

type fakeRefresher struct {
	calls      int
	lastPage   int
	lastTotal  int
	refreshErr error
}

func (f *fakeRefresher) RefreshEndDate(_ context.Context, _ string, currentPage, totalPages int) error {
	f.calls++
	f.lastPage = currentPage
	f.lastTotal = totalPages
	return f.refreshErr
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(_ context.Context, _ string) error { f.calls++; return nil }

// # Harness

const (
	testUserID = "user-1"
	testBookID = "book-1"
)

type harness struct {
	service   *session.Service
	books     *fakeBookRepo
	sessions  *fakeSessionRepo
	refresher *fakeRefresher
	cache     *fakeInvalidator
}

func newHarness(t *testing.T, currentPage int) *harness {
	t.Helper()

	books := &fakeBookRepo{books: map[string]*book.Book{
		testBookID: {
			ID:          testBookID,
			UserID:      testUserID,
			Title:       "Piranesi",
			TotalPages:  300,
			CurrentPage: currentPage,
			Status:      book.StatusReading,
		},
	}}
	sessions := &fakeSessionRepo{books: books, entries: map[string]*session.Entry{}}
	refresher := &fakeRefresher{}
	cache := &fakeInvalidator{}

	service := session.NewService(sessions, books, refresher, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &harness{service: service, books: books, sessions: sessions, refresher: refresher, cache: cache}
}

// # Recording

func TestRecordSession_AdvancesBookmark(t *testing.T) {
	h := newHarness(t, 40)

	entry, err := h.service.RecordSession(context.Background(), testBookID, testUserID, "2024-02-01", 10, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, entry.PagesRead)
	assert.Equal(t, 600, entry.DurationSeconds)
	assert.Equal(t, 50, h.books.books[testBookID].CurrentPage)

	// Downstream projections follow the committed write.
	assert.Equal(t, 1, h.refresher.calls)
	assert.Equal(t, 50, h.refresher.lastPage)
	assert.Equal(t, 300, h.refresher.lastTotal)
	assert.Equal(t, 1, h.cache.calls)
}

func TestRecordSession_SameDayAccumulates(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.RecordSession(context.Background(), testBookID, testUserID, "2024-02-01", 10, 10)
	require.NoError(t, err)

	entry, err := h.service.RecordSession(context.Background(), testBookID, testUserID, "2024-02-01", 5, 5)
	require.NoError(t, err)

	assert.Equal(t, 15, entry.PagesRead)
	assert.Equal(t, 900, entry.DurationSeconds)
	assert.Equal(t, 15, h.books.books[testBookID].CurrentPage)
}

func TestRecordSession_OvershootRejected(t *testing.T) {
	h := newHarness(t, 295)

	_, err := h.service.RecordSession(context.Background(), testBookID, testUserID, "2024-02-01", 10, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidPage(err))

	// Nothing was written.
	assert.Empty(t, h.sessions.entries)
	assert.Equal(t, 295, h.books.books[testBookID].CurrentPage)
	assert.Zero(t, h.refresher.calls)
}

func TestRecordSession_InvalidInput(t *testing.T) {
	h := newHarness(t, 0)

	tests := []struct {
		name      string
		date      string
		pagesRead int
		duration  int
	}{
		{"bad date", "02/01/2024", 10, 10},
		{"zero pages", "2024-02-01", 0, 10},
		{"negative pages", "2024-02-01", -3, 10},
		{"negative duration", "2024-02-01", 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.service.RecordSession(context.Background(), testBookID, testUserID, tt.date, tt.pagesRead, tt.duration)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestRecordSession_WrongUser(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.RecordSession(context.Background(), testBookID, "someone-else", "2024-02-01", 10, 10)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Listing

func TestListSessions_OwnershipGate(t *testing.T) {
	h := newHarness(t, 0)

	_, err := h.service.RecordSession(context.Background(), testBookID, testUserID, "2024-02-01", 10, 10)
	require.NoError(t, err)

	entries, err := h.service.ListSessions(context.Background(), testBookID, testUserID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = h.service.ListSessions(context.Background(), testBookID, "someone-else")
	require.Error(t, err)
}
