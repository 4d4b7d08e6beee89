// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package session

import (
	"context"
	"time"
)

// # Session Data Access

// Repository defines the data access contract for the reading log.
//
// The write methods pair the log mutation with the book's bookmark update in
// a single database transaction: the log and the book's current page must
// never be observed out of sync.
type Repository interface {

	/*
		ListByBook returns the full reading log for a book, ordered by date
		ascending.

		Parameters:
		  - context: context.Context
		  - bookID: string (Owner book UUID)

		Returns:
		  - []*Entry: The chronological log
		  - error: Storage failures
	*/
	ListByBook(context context.Context, bookID string) ([]*Entry, error)

	/*
		Accumulate merges a logged session into the day's entry and advances
		the book's bookmark, atomically.

		Description: Inserts the (book, date) entry or adds the pages and
		duration onto the existing one, then writes the new confirmed position
		onto the book row. The book's shelf status follows the position.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - readOn: time.Time (UTC midnight of the session's day)
		  - pagesRead: int (Pages covered in this session)
		  - durationSeconds: int (Optional reading time, 0 when untracked)
		  - currentPage: int (The book's new confirmed position)

		Returns:
		  - *Entry: The day's entry after merging
		  - error: Transaction failures
	*/
	Accumulate(context context.Context, bookID string, readOn time.Time, pagesRead, durationSeconds, currentPage int) (*Entry, error)

	/*
		MarkDay writes the day's entry with set semantics and advances the
		book's bookmark, atomically.

		Description: Used by the plan checklist. Unlike Accumulate, a repeat
		mark overwrites the day's page count instead of adding to it, keeping
		the toggle idempotent. Only the page count is replaced: tracked
		duration from an earlier timed session on the same day survives, since
		a checklist toggle carries no time signal of its own.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - readOn: time.Time (UTC midnight of the scheduled day)
		  - pagesRead: int (The day's scheduled page count)
		  - currentPage: int (The scheduled day's end page)

		Returns:
		  - error: Transaction failures
	*/
	MarkDay(context context.Context, bookID string, readOn time.Time, pagesRead, currentPage int) error

	/*
		UnmarkDay removes the day's entry and settles the book's bookmark,
		atomically.

		Description: Deletes the (book, date) entry. When the log becomes
		empty the bookmark resets to 0; otherwise it is left at keepPage,
		since remaining entries still vouch for prior progress.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - readOn: time.Time
		  - keepPage: int (Position to retain while other entries remain)

		Returns:
		  - int: Entries remaining in the log after deletion
		  - error: Transaction failures
	*/
	UnmarkDay(context context.Context, bookID string, readOn time.Time, keepPage int) (int, error)

	/*
		AverageUserPagesPerMinute returns the user's reading speed across all
		of their books, computed over entries with tracked duration.

		Returns:
		  - float64: Pages per minute, 0 when the user has no timed entries
		  - error: Storage failures
	*/
	AverageUserPagesPerMinute(context context.Context, userID string) (float64, error)
}
