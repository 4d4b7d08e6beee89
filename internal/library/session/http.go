// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the reading log.
type Handler struct {
	service *Service
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches reading-log endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/books/{id}/sessions", handler.ListSessions)
		user.Post("/books/{id}/sessions", handler.RecordSession)
	})
}

// # Log Retrieval

/*
GET /api/v1/books/{id}/sessions.

Description: Returns the full reading log for a book, oldest entry first.

Response:
  - 200: []Entry: The chronological log
  - 404: ErrNotFound: Book not found or not owned by the user
*/
func (handler *Handler) ListSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.ListSessions(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

// # Log Mutation

// recordSessionRequest defines the inbound JSON schema for logging a session.
type recordSessionRequest struct {
	Date            string `json:"date"`
	PagesRead       int    `json:"pages_read"`
	DurationMinutes int    `json:"duration_minutes"`
}

/*
POST /api/v1/books/{id}/sessions.

Description: Logs a reading session. Repeat sessions on the same day merge
into one entry; the book's bookmark advances by the pages read.

Response:
  - 201: Entry: The day's entry after merging
  - 400: Validation: Invalid payload
  - 404: ErrNotFound: Book not found
  - 422: INVALID_PAGE: Session would read past the last page
*/
func (handler *Handler) RecordSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordSessionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.RecordSession(
		request.Context(),
		requestutil.ID(request, "id"),
		userID,
		input.Date,
		input.PagesRead,
		input.DurationMinutes,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}
