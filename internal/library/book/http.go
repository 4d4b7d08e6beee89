// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package book provides the HTTP interface for managing the user's shelf.

# Routing Strategy

All endpoints require authentication: the shelf is strictly personal data and
every handler scopes its queries by the authenticated user ID.
*/
package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
	"github.com/leafmark/leafmark/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for shelf management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches shelf endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/books", handler.ListBooks)
		user.Post("/books", handler.CreateBook)
		user.Get("/books/{id}", handler.GetBook)
		user.Patch("/books/{id}", handler.UpdateBook)
		user.Delete("/books/{id}", handler.DeleteBook)
		user.Put("/books/{id}/progress", handler.SetProgress)
	})
}

// # Shelf Retrieval

/*
GET /api/v1/books.

Description: Returns a paginated view of the authenticated user's shelf.

Request:
  - status: string (Filter by shelf state)
  - q: string (Substring search on title/author)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Book: Paginated list
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) ListBooks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Status:  request.URL.Query().Get("status"),
		Query:   request.URL.Query().Get("q"),
		SortDir: request.URL.Query().Get("dir"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), userID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/books/{id}.

Response:
  - 200: Book: The requested book
  - 404: ErrNotFound: Book not found or not owned by the user
*/
func (handler *Handler) GetBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// # Shelf Mutation

// createBookRequest defines the inbound JSON schema for adding a book.
type createBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	Status      string `json:"status"`
}

/*
POST /api/v1/books.

Description: Adds a new title to the authenticated user's shelf.

Response:
  - 201: Book: Created book object
  - 400: Validation: Invalid payload
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) CreateBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookDto := &Book{
		UserID:      userID,
		Title:       input.Title,
		Author:      input.Author,
		TotalPages:  input.TotalPages,
		CurrentPage: input.CurrentPage,
		Status:      Status(input.Status),
	}

	if err := handler.service.CreateBook(request.Context(), bookDto); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bookDto)
}

// updateBookRequest defines the inbound JSON schema for metadata edits.
type updateBookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	TotalPages int    `json:"total_pages"`
	Status     string `json:"status"`
}

/*
PATCH /api/v1/books/{id}.

Description: Edits book metadata. Omitted fields keep their stored values.

Response:
  - 200: Book: Updated book object
  - 400: Validation: Invalid payload
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) UpdateBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookDto := &Book{
		ID:         requestutil.ID(request, "id"),
		UserID:     userID,
		Title:      input.Title,
		Author:     input.Author,
		TotalPages: input.TotalPages,
		Status:     Status(input.Status),
	}

	if err := handler.service.UpdateBook(request.Context(), bookDto); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bookDto)
}

// setProgressRequest defines the inbound JSON schema for the bookmark override.
type setProgressRequest struct {
	CurrentPage int `json:"current_page"`
}

/*
PUT /api/v1/books/{id}/progress.

Description: Moves the confirmed reading position directly. The shelf status
follows the new position.

Response:
  - 200: Book: Updated book object
  - 404: ErrNotFound: Book not found
  - 422: INVALID_PAGE: Position outside [0, total pages]
*/
func (handler *Handler) SetProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setProgressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.SetCurrentPage(request.Context(), requestutil.ID(request, "id"), userID, input.CurrentPage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
DELETE /api/v1/books/{id}.

Response:
  - 204: No content
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) DeleteBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
