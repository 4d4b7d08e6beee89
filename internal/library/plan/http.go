// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package plan

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
	"github.com/leafmark/leafmark/pkg/convert"
)

// # Handler Implementation

// Handler implements the HTTP layer for plan management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new plan [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches plan endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/books/{id}/plan", handler.GetPlan)
		user.Post("/books/{id}/plan", handler.CreatePlan)
		user.Delete("/books/{id}/plan", handler.DeletePlan)
		user.Post("/books/{id}/plan/days/{dayNumber}/toggle", handler.ToggleDay)
	})
}

// # Plan Retrieval

/*
GET /api/v1/books/{id}/plan.

Description: Returns the book's plan and its derived day-by-day schedule,
with each day's completion state resolved against the reading log.

Response:
  - 200: View: Plan plus schedule
  - 404: ErrNotFound: Book or plan not found
*/
func (handler *Handler) GetPlan(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetPlan(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// # Plan Mutation

// createPlanRequest defines the inbound JSON schema for attaching a plan.
type createPlanRequest struct {
	Mode         string `json:"pacing_mode"`
	StartDate    string `json:"start_date"`
	DailyPages   int    `json:"daily_pages"`
	DeadlineDate string `json:"deadline_date"`
}

/*
POST /api/v1/books/{id}/plan.

Description: Attaches a pacing plan to a book, starting from the book's
confirmed position.

Response:
  - 201: View: Stored plan plus derived schedule
  - 400: Validation: Invalid payload
  - 404: ErrNotFound: Book not found
  - 409: Conflict: Book already has a plan
  - 422: INVALID_RANGE: Spec cannot produce a schedule
*/
func (handler *Handler) CreatePlan(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPlanRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.CreatePlan(request.Context(), requestutil.ID(request, "id"), userID, CreateInput{
		Mode:         input.Mode,
		StartDate:    input.StartDate,
		DailyPages:   input.DailyPages,
		DeadlineDate: input.DeadlineDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}

/*
DELETE /api/v1/books/{id}/plan.

Response:
  - 204: No content
  - 404: ErrNotFound: Book or plan not found
*/
func (handler *Handler) DeletePlan(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePlan(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Day Toggling

// toggleDayRequest defines the inbound JSON schema for a checklist toggle.
type toggleDayRequest struct {
	Done bool `json:"done"`
}

/*
POST /api/v1/books/{id}/plan/days/{dayNumber}/toggle.

Description: Marks or unmarks a scheduled day as read, reconciling the
book's bookmark and the plan's projected end date.

Response:
  - 200: View: Plan plus schedule after reconciliation
  - 404: ErrNotFound: Book, plan, or day not found
*/
func (handler *Handler) ToggleDay(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input toggleDayRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dayNumber := convert.ToInt(requestutil.Param(request, "dayNumber"))

	view, err := handler.service.ToggleDay(request.Context(), requestutil.ID(request, "id"), userID, dayNumber, input.Done)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}
