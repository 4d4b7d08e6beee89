// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/dberr"
)

// # PostgreSQL Repository

// bookRepository implements the [Repository] interface using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &bookRepository{pool: pool}
}

/*
List returns a filtered, paginated slice of the user's books and the total count.

Description: Uses COUNT(*) OVER() to retrieve the total record count in the
same round-trip as the page of rows, avoiding a second COUNT query.

Parameters:
  - context: context.Context
  - userID: string (Owner ID)
  - filter: Filter (Status, query, direction)
  - limit: int
  - offset: int

Returns:
  - []*Book: Slice of hydrated book entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *bookRepository) List(context context.Context, userID string, filter Filter, limit, offset int) ([]*Book, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT
			b.id, b.userid, b.title, b.author, b.slug, b.totalpages,
			b.currentpage, b.status, b.createdat, b.updatedat,
			COUNT(*) OVER() AS total_count
		FROM library.book b
		WHERE b.userid = $1 AND b.deletedat IS NULL
	`)
	args = append(args, userID)
	argID++

	// Shelf state filter injection
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	// Title/author substring search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (b.title ILIKE $%d OR b.author ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Ordering and pagination limits
	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" {
		sortDir = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.createdat %s, b.id DESC", sortDir))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list books: %w", err)
	}
	defer rows.Close()

	// Entity hydration
	var books []*Book
	var totalCount int

	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID, &book.UserID, &book.Title, &book.Author, &book.Slug,
			&book.TotalPages, &book.CurrentPage, &book.Status,
			&book.CreatedAt, &book.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		books = append(books, &book)
	}

	return books, totalCount, nil
}

/*
FindByID retrieves a book by its primary key, scoped to the owning user.

Returns:
  - *Book: The hydrated entity
  - error: apperr.NotFound if the book does not exist, is deleted, or
    belongs to a different user
*/
func (repository *bookRepository) FindByID(context context.Context, id, userID string) (*Book, error) {

	// Single-row ownership-scoped lookup
	query := `
		SELECT
			id, userid, title, author, slug, totalpages,
			currentpage, status, createdat, updatedat
		FROM library.book
		WHERE id = $1 AND userid = $2 AND deletedat IS NULL
	`

	var book Book
	err := repository.pool.QueryRow(context, query, id, userID).Scan(
		&book.ID, &book.UserID, &book.Title, &book.Author, &book.Slug,
		&book.TotalPages, &book.CurrentPage, &book.Status,
		&book.CreatedAt, &book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres: failed to find book by id: %w", err)
	}

	return &book, nil
}

/*
Create persists a new book row.

Returns:
  - error: apperr.Conflict on duplicate constraints, execution errors otherwise
*/
func (repository *bookRepository) Create(context context.Context, book *Book) error {

	// Insertion blueprint
	query := `
		INSERT INTO library.book (id, userid, title, author, slug, totalpages, currentpage, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Contextual execute
	_, err := repository.pool.Exec(context, query,
		book.ID, book.UserID, book.Title, book.Author, book.Slug,
		book.TotalPages, book.CurrentPage, book.Status,
	)

	return dberr.Wrap(err, "create_book")
}

/*
Update persists metadata changes to an existing book row.

Returns:
  - error: apperr.NotFound if targeting a missing or deleted row
*/
func (repository *bookRepository) Update(context context.Context, book *Book) error {

	// Metadata update; currentpage moves only through SetProgress and the
	// session/plan transaction paths.
	query := `
		UPDATE library.book
		SET title = $1, author = $2, slug = $3, totalpages = $4, status = $5, updatedat = NOW()
		WHERE id = $6 AND userid = $7 AND deletedat IS NULL
	`

	result, err := repository.pool.Exec(context, query,
		book.Title, book.Author, book.Slug, book.TotalPages, book.Status,
		book.ID, book.UserID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update book: %w", err)
	}

	// Verify affected rows
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

/*
SetProgress writes the confirmed position and shelf status in one statement.

Returns:
  - error: apperr.NotFound if targeting a missing or deleted row
*/
func (repository *bookRepository) SetProgress(context context.Context, id, userID string, currentPage int, status Status) error {

	query := `
		UPDATE library.book
		SET currentpage = $1, status = $2, updatedat = NOW()
		WHERE id = $3 AND userid = $4 AND deletedat IS NULL
	`

	result, err := repository.pool.Exec(context, query, currentPage, status, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to set book progress: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

/*
SoftDelete hides a book without physical row removal.

Returns:
  - error: apperr.NotFound if missing or already deleted
*/
func (repository *bookRepository) SoftDelete(context context.Context, id, userID string) error {

	query := `UPDATE library.book SET deletedat = NOW() WHERE id = $1 AND userid = $2 AND deletedat IS NULL`

	result, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}
