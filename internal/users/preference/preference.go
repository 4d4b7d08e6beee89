// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package preference handles per-reader application settings.

It stores the small set of UI and content options a reader can configure:
the color theme and the kid-friendly content mode. Readers without stored
settings get system defaults rather than an error.
*/
package preference

import (
	"context"
	"time"
)

// # Domain Entities

// Preferences represents the customizable settings for a reader.
type Preferences struct {
	UserID    string    `json:"user_id"`
	Theme     string    `json:"theme"` // 'system', 'light', 'dark'
	KidMode   bool      `json:"kid_mode"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Themes enumerates the accepted theme values.
var Themes = []string{ThemeSystem, ThemeLight, ThemeDark}

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// # Field Identifiers

const (
	FieldTheme   = "theme"
	FieldKidMode = "kid_mode"
)

// # Repository Contracts

// Repository defines the persistence contract for reader preferences.
type Repository interface {

	/*
		FindByUserID retrieves the stored preferences for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Preferences: Hydrated entity
		  - error: apperr.NotFound when nothing is stored yet
	*/
	FindByUserID(context context.Context, userID string) (*Preferences, error)

	/*
		Upsert inserts or replaces the preferences row for a user.

		Parameters:
		  - context: context.Context
		  - prefs: *Preferences

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, prefs *Preferences) error
}
