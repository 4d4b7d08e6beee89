// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for shelf books.
//
// Every method that targets a single book takes the owning user's ID and
// scopes the query by it, so one user can never read or mutate another
// user's shelf.
type Repository interface {

	/*
		List returns a filtered, paginated slice of the user's books.

		Parameters:
		  - context: context.Context
		  - userID: string (Owner ID)
		  - filter: Filter (Status, search query, sort direction)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book: Matching books
		  - int: Total count matching filters
		  - error: Storage failures
	*/
	List(context context.Context, userID string, filter Filter, limit, offset int) ([]*Book, int, error)

	/*
		FindByID returns the user's book with the given ID.

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound if missing, deleted, or owned by someone else
	*/
	FindByID(context context.Context, id, userID string) (*Book, error)

	/*
		Create persists a new book on the user's shelf.
	*/
	Create(context context.Context, book *Book) error

	/*
		Update persists metadata changes (title, author, slug, total pages,
		status) to an existing book.

		Returns:
		  - error: apperr.NotFound if the row does not exist
	*/
	Update(context context.Context, book *Book) error

	/*
		SetProgress writes the confirmed reading position and shelf status in
		a single statement.

		Returns:
		  - error: apperr.NotFound if the row does not exist
	*/
	SetProgress(context context.Context, id, userID string, currentPage int, status Status) error

	/*
		SoftDelete hides a book without physical row removal. Dependent plan
		and session rows are retained for potential restore.

		Returns:
		  - error: apperr.NotFound if missing or already deleted
	*/
	SoftDelete(context context.Context, id, userID string) error
}
