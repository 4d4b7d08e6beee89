// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package preference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/validate"
)

// # Service Layer

// Service orchestrates reads and writes of reader settings.
type Service struct {
	preferenceRepo Repository
	logger         *slog.Logger
}

// NewService constructs a new preference [Service].
func NewService(preferenceRepo Repository, logger *slog.Logger) *Service {
	return &Service{preferenceRepo: preferenceRepo, logger: logger}
}

// Defaults returns the system-wide default settings for a user.
func Defaults(userID string) *Preferences {
	return &Preferences{
		UserID:  userID,
		Theme:   ThemeSystem,
		KidMode: false,
	}
}

/*
GetPreferences retrieves the reader settings for a user.

Description: Attempts a database lookup. If no explicit preferences exist,
it falls back to system-wide default settings.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Preferences: Current or default settings
  - error: Storage failures
*/
func (service *Service) GetPreferences(context context.Context, userID string) (*Preferences, error) {
	prefs, err := service.preferenceRepo.FindByUserID(context, userID)

	if err != nil {
		// Resilience: provide defaults if none are stored
		if apperr.IsNotFound(err) {
			return Defaults(userID), nil
		}
		return nil, fmt.Errorf("preference_service_get_failed: %w", err)
	}

	return prefs, nil
}

// UpdateInput defines the settings a reader can change in one request.
type UpdateInput struct {
	Theme   string
	KidMode bool
}

/*
UpdatePreferences validates and persists new settings for the user.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *Preferences: The stored settings
  - error: Validation or storage failures
*/
func (service *Service) UpdatePreferences(context context.Context, userID string, input UpdateInput) (*Preferences, error) {

	validator := &validate.Validator{}
	validator.OneOf(FieldTheme, input.Theme, Themes...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	prefs := &Preferences{
		UserID:    userID,
		Theme:     input.Theme,
		KidMode:   input.KidMode,
		UpdatedAt: time.Now(),
	}

	if err := service.preferenceRepo.Upsert(context, prefs); err != nil {
		return nil, fmt.Errorf("preference_service_save_failed: %w", err)
	}

	service.logger.Info("user_preferences_updated",
		slog.String("user_id", userID),
		slog.String("theme", prefs.Theme),
		slog.Bool("kid_mode", prefs.KidMode),
	)

	return prefs, nil
}
