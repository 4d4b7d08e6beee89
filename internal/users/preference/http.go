// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package preference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
	"github.com/leafmark/leafmark/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for reader preferences.
type Handler struct {
	service *Service
}

// NewHandler constructs a new preference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches preference endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/me/preferences", handler.GetPreferences)
		user.Put("/me/preferences", handler.UpdatePreferences)
	})
}

// # Request Payloads

type updatePreferencesRequest struct {
	Theme   string `json:"theme"`
	KidMode bool   `json:"kid_mode"`
}

/*
GET /api/v1/me/preferences.

Description: Returns the reader's stored settings, or system defaults when
nothing has been saved yet.

Response:
  - 200: Preferences: Current or default settings
*/
func (handler *Handler) GetPreferences(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	prefs, err := handler.service.GetPreferences(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, prefs)
}

/*
PUT /api/v1/me/preferences.

Description: Replaces the reader's settings with the submitted values.

Request:
  - Body: updatePreferencesRequest (Theme, KidMode)

Response:
  - 200: Preferences: The stored settings
  - 400: ErrInvalidJSON: Unknown theme or malformed body
*/
func (handler *Handler) UpdatePreferences(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePreferencesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	prefs, err := handler.service.UpdatePreferences(request.Context(), userID, UpdateInput{
		Theme:   input.Theme,
		KidMode: input.KidMode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, prefs)
}
