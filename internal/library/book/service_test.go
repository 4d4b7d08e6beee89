// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/library/book"
	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// # Test Fakes

type fakeRepo struct {
	books map[string]*book.Book
}

func (f *fakeRepo) List(_ context.Context, userID string, _ book.Filter, _, _ int) ([]*book.Book, int, error) {
	var out []*book.Book
	for _, b := range f.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id, userID string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok || b.UserID != userID {
		return nil, apperr.NotFound("Book")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) Create(_ context.Context, b *book.Book) error { f.books[b.ID] = b; return nil }
func (f *fakeRepo) Update(_ context.Context, b *book.Book) error { f.books[b.ID] = b; return nil }
func (f *fakeRepo) SetProgress(_ context.Context, id, _ string, currentPage int, status book.Status) error {
	f.books[id].CurrentPage = currentPage
	f.books[id].Status = status
	return nil
}
func (f *fakeRepo) SoftDelete(_ context.Context, id, _ string) error {
	if _, ok := f.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(f.books, id)
	return nil
}

type fakeRefresher struct {
	calls     int
	lastPage  int
	lastTotal int
}

func (f *fakeRefresher) RefreshEndDate(_ context.Context, _ string, currentPage, totalPages int) error {
	f.calls++
	f.lastPage = currentPage
	f.lastTotal = totalPages
	return nil
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(_ context.Context, _ string) error { f.calls++; return nil }

// # Harness

const (
	testUserID = "user-1"
	testBookID = "book-1"
)

type harness struct {
	service   *book.Service
	books     *fakeRepo
	refresher *fakeRefresher
	cache     *fakeInvalidator
}

func newHarness(t *testing.T, currentPage int) *harness {
	t.Helper()

	books := &fakeRepo{books: map[string]*book.Book{
		testBookID: {
			ID:          testBookID,
			UserID:      testUserID,
			Title:       "A Wizard of Earthsea",
			TotalPages:  300,
			CurrentPage: currentPage,
			Status:      book.StatusReading,
		},
	}}
	refresher := &fakeRefresher{}
	cache := &fakeInvalidator{}

	service := book.NewService(books, refresher, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &harness{service: service, books: books, refresher: refresher, cache: cache}
}

// # Creation

func TestCreateBook_DefaultsStatus(t *testing.T) {
	h := newHarness(t, 0)

	fresh := &book.Book{UserID: testUserID, Title: "The Dispossessed", TotalPages: 400}
	require.NoError(t, h.service.CreateBook(context.Background(), fresh))

	assert.Equal(t, book.StatusToRead, fresh.Status)
	assert.NotEmpty(t, fresh.ID)
	assert.Equal(t, "the-dispossessed", fresh.Slug)
}

func TestCreateBook_NonZeroBookmarkStartsReading(t *testing.T) {
	h := newHarness(t, 0)

	fresh := &book.Book{UserID: testUserID, Title: "The Dispossessed", TotalPages: 400, CurrentPage: 60}
	require.NoError(t, h.service.CreateBook(context.Background(), fresh))

	assert.Equal(t, book.StatusReading, fresh.Status)
}

// # Bookmark Override

func TestSetCurrentPage_ReprojectsPlanEndDate(t *testing.T) {
	h := newHarness(t, 40)

	updated, err := h.service.SetCurrentPage(context.Background(), testBookID, testUserID, 120)
	require.NoError(t, err)

	assert.Equal(t, 120, updated.CurrentPage)
	assert.Equal(t, 120, h.books.books[testBookID].CurrentPage)

	// The override feeds the plan a fresh end date and drops cached analytics.
	assert.Equal(t, 1, h.refresher.calls)
	assert.Equal(t, 120, h.refresher.lastPage)
	assert.Equal(t, 300, h.refresher.lastTotal)
	assert.Equal(t, 1, h.cache.calls)
}

func TestSetCurrentPage_StatusFollowsPosition(t *testing.T) {
	tests := []struct {
		name string
		page int
		want book.Status
	}{
		{"last page finishes", 300, book.StatusFinished},
		{"mid-book reads", 10, book.StatusReading},
		{"zero shelves back", 0, book.StatusToRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 40)

			updated, err := h.service.SetCurrentPage(context.Background(), testBookID, testUserID, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, updated.Status)
		})
	}
}

func TestSetCurrentPage_OutOfRange(t *testing.T) {
	h := newHarness(t, 40)

	for _, page := range []int{-1, 301} {
		_, err := h.service.SetCurrentPage(context.Background(), testBookID, testUserID, page)
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidPage(err))
	}

	// Nothing was written, nothing reprojected.
	assert.Equal(t, 40, h.books.books[testBookID].CurrentPage)
	assert.Zero(t, h.refresher.calls)
	assert.Zero(t, h.cache.calls)
}

// # Metadata Updates

func TestUpdateBook_PageCountChangeReprojects(t *testing.T) {
	h := newHarness(t, 40)

	err := h.service.UpdateBook(context.Background(), &book.Book{
		ID:         testBookID,
		UserID:     testUserID,
		TotalPages: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, h.refresher.calls)
	assert.Equal(t, 40, h.refresher.lastPage)
	assert.Equal(t, 500, h.refresher.lastTotal)
	assert.Equal(t, 1, h.cache.calls)
}

func TestUpdateBook_ShrinkBelowBookmarkRejected(t *testing.T) {
	h := newHarness(t, 40)

	err := h.service.UpdateBook(context.Background(), &book.Book{
		ID:         testBookID,
		UserID:     testUserID,
		TotalPages: 30,
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Zero(t, h.refresher.calls)
}
