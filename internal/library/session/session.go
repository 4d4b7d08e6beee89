// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package session records confirmed reading activity.

The session log is the single source of truth for what the reader actually
did: one entry per book per calendar day, accumulating pages and reading time
as the day's sessions are logged. Plans and analytics are both projections
over this log.
*/
package session

import "time"

// # Domain Entity

// Entry is the accumulated reading activity for one book on one calendar day.
//
// Logging twice on the same day merges into the existing entry rather than
// creating a second row; (BookID, ReadOn) is unique.
type Entry struct {
	ID              string    `json:"id"`
	BookID          string    `json:"book_id"`
	ReadOn          time.Time `json:"read_on"`
	PagesRead       int       `json:"pages_read"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
