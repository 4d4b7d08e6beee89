// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for reading analytics.
type Handler struct {
	service *Service
}

// NewHandler constructs a new analytics [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches analytics endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/books/{id}/analytics", handler.AnalyzeBook)
	})
}

/*
GET /api/v1/books/{id}/analytics.

Description: Returns pace metrics, scores, and the projected finish date
for a book. Served from cache when fresh.

Response:
  - 200: Analysis: The derived metrics
  - 404: ErrNotFound: Book not found or not owned by the user
*/
func (handler *Handler) AnalyzeBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	analysis, err := handler.service.AnalyzeBook(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, analysis)
}
