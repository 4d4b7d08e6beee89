// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

/*
Package book manages the reader's personal library shelf.

A book is the root aggregate of the library domain: plans, sessions, and
analytics all hang off a book row. Each book belongs to exactly one user and
every data-access path is scoped by that ownership.
*/
package book

import "time"

// # Reading Status

// Status is the shelf state of a book.
type Status string

const (
	StatusToRead    Status = "to_read"
	StatusReading   Status = "reading"
	StatusFinished  Status = "finished"
	StatusAbandoned Status = "abandoned"
)

// Statuses lists every valid shelf state, used for input validation.
var Statuses = []string{
	string(StatusToRead),
	string(StatusReading),
	string(StatusFinished),
	string(StatusAbandoned),
}

// # Domain Entity

// Book is a single title on a user's shelf.
//
// CurrentPage is the confirmed reading position: 0 means untouched, and it
// can never exceed TotalPages. It is advanced by the progress-tracking flows
// (plan day toggles and logged sessions), or set directly by the user.
type Book struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Slug        string     `json:"slug"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Filter narrows shelf listings.
type Filter struct {
	// Status restricts results to a single shelf state when non-empty.
	Status string
	// Query is a case-insensitive substring match on title and author.
	Query string
	// SortDir is "asc" or "desc"; listings order by creation time.
	SortDir string
}
