// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package session provides the PostgreSQL implementation for the reading log.

It leans on two Postgres features:
  - Upserts: ON CONFLICT on the (bookid, readon) unique constraint merges
    repeat activity for a day into a single row.
  - ACID Transactions: Every log write updates the owning book row in the
    same transaction, so the bookmark and the log can never drift apart.
*/
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/pkg/uuid"
)

// bookmarkQuery settles the book's confirmed position and lets the shelf
// status follow it. Abandoned books keep their state until finished.
const bookmarkQuery = `
	UPDATE library.book
	SET currentpage = $1,
	    status = CASE
	        WHEN $1 >= totalpages THEN 'finished'
	        WHEN $1 > 0 AND status <> 'abandoned' THEN 'reading'
	        WHEN $1 = 0 AND status <> 'abandoned' THEN 'to_read'
	        ELSE status
	    END,
	    updatedat = NOW()
	WHERE id = $2 AND deletedat IS NULL
`

// # PostgreSQL Repository

// sessionRepository implements the [Repository] interface using pgx.
type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed session store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &sessionRepository{pool: pool}
}

/*
ListByBook returns the chronological reading log for a book.
*/
func (repository *sessionRepository) ListByBook(context context.Context, bookID string) ([]*Entry, error) {

	// Ordered retrieval query
	query := `
		SELECT id, bookid, readon, pagesread, durationseconds, createdat, updatedat
		FROM library.session
		WHERE bookid = $1
		ORDER BY readon ASC
	`

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list sessions: %w", err)
	}
	defer rows.Close()

	// Entry hydration
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.ID, &entry.BookID, &entry.ReadOn, &entry.PagesRead,
			&entry.DurationSeconds, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan session: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

/*
Accumulate merges a logged session into the day's entry and advances the
book's bookmark inside one transaction.
*/
func (repository *sessionRepository) Accumulate(context context.Context, bookID string, readOn time.Time, pagesRead, durationSeconds, currentPage int) (*Entry, error) {

	// 1. Transaction boundary
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin session transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 2. Additive upsert on the (bookid, readon) unique constraint
	query := `
		INSERT INTO library.session (id, bookid, readon, pagesread, durationseconds)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bookid, readon) DO UPDATE
		SET pagesread = library.session.pagesread + EXCLUDED.pagesread,
		    durationseconds = library.session.durationseconds + EXCLUDED.durationseconds,
		    updatedat = NOW()
		RETURNING id, bookid, readon, pagesread, durationseconds, createdat, updatedat
	`

	var entry Entry
	err = transaction.QueryRow(context, query,
		uuid.New(), bookID, readOn, pagesRead, durationSeconds,
	).Scan(
		&entry.ID, &entry.BookID, &entry.ReadOn, &entry.PagesRead,
		&entry.DurationSeconds, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to upsert session: %w", err)
	}

	// 3. Bookmark settlement in the same transaction
	if _, err := transaction.Exec(context, bookmarkQuery, currentPage, bookID); err != nil {
		return nil, fmt.Errorf("postgres: failed to advance bookmark: %w", err)
	}

	// 4. Commit
	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit session transaction: %w", err)
	}

	return &entry, nil
}

/*
MarkDay writes the day's entry with set semantics and advances the book's
bookmark inside one transaction.
*/
func (repository *sessionRepository) MarkDay(context context.Context, bookID string, readOn time.Time, pagesRead, currentPage int) error {

	// 1. Transaction boundary
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin mark transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 2. Idempotent upsert: repeated marks overwrite the page count rather
	// than add to it. An existing entry's durationseconds is left alone so a
	// timed session's measured time survives the toggle.
	query := `
		INSERT INTO library.session (id, bookid, readon, pagesread, durationseconds)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (bookid, readon) DO UPDATE
		SET pagesread = EXCLUDED.pagesread,
		    updatedat = NOW()
	`

	if _, err := transaction.Exec(context, query, uuid.New(), bookID, readOn, pagesRead); err != nil {
		return fmt.Errorf("postgres: failed to mark day: %w", err)
	}

	// 3. Bookmark settlement
	if _, err := transaction.Exec(context, bookmarkQuery, currentPage, bookID); err != nil {
		return fmt.Errorf("postgres: failed to advance bookmark: %w", err)
	}

	// 4. Commit
	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit mark transaction: %w", err)
	}

	return nil
}

/*
UnmarkDay removes the day's entry and settles the book's bookmark inside one
transaction.
*/
func (repository *sessionRepository) UnmarkDay(context context.Context, bookID string, readOn time.Time, keepPage int) (int, error) {

	// 1. Transaction boundary
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin unmark transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 2. Entry removal
	query := `DELETE FROM library.session WHERE bookid = $1 AND readon = $2`
	if _, err := transaction.Exec(context, query, bookID, readOn); err != nil {
		return 0, fmt.Errorf("postgres: failed to unmark day: %w", err)
	}

	// 3. Remaining log size decides the bookmark fallback
	var remaining int
	countQuery := `SELECT COUNT(*) FROM library.session WHERE bookid = $1`
	if err := transaction.QueryRow(context, countQuery, bookID).Scan(&remaining); err != nil {
		return 0, fmt.Errorf("postgres: failed to count remaining sessions: %w", err)
	}

	// An empty log means no confirmed progress is left to stand on
	page := keepPage
	if remaining == 0 {
		page = 0
	}

	if _, err := transaction.Exec(context, bookmarkQuery, page, bookID); err != nil {
		return 0, fmt.Errorf("postgres: failed to settle bookmark: %w", err)
	}

	// 4. Commit
	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit unmark transaction: %w", err)
	}

	return remaining, nil
}

/*
AverageUserPagesPerMinute computes the user's cross-book reading speed over
timed entries only. Untimed entries (plan toggles, quick logs) carry no speed
signal and are excluded.
*/
func (repository *sessionRepository) AverageUserPagesPerMinute(context context.Context, userID string) (float64, error) {

	// Aggregated speed across every timed entry owned by the user
	query := `
		SELECT COALESCE(SUM(s.pagesread)::float8 / NULLIF(SUM(s.durationseconds)::float8 / 60.0, 0), 0)
		FROM library.session s
		JOIN library.book b ON b.id = s.bookid
		WHERE b.userid = $1 AND s.durationseconds > 0
	`

	var pagesPerMinute float64
	if err := repository.pool.QueryRow(context, query, userID).Scan(&pagesPerMinute); err != nil {
		return 0, fmt.Errorf("postgres: failed to compute user reading speed: %w", err)
	}

	return pagesPerMinute, nil
}
