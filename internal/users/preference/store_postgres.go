// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/internal/platform/apperr"
)

// # Postgres Repository

// preferenceRepository implements [Repository] backed by users.preference.
type preferenceRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) Repository {
	return &preferenceRepository{pool: pool}
}

/*
FindByUserID retrieves the stored preferences row for a user.

Returns:
  - *Preferences: Hydrated entity
  - error: apperr.NotFound when the user never saved settings
*/
func (repository *preferenceRepository) FindByUserID(context context.Context, userID string) (*Preferences, error) {
	const query = `
		SELECT userid, theme, kidmode, updatedat
		FROM users.preference
		WHERE userid = $1`

	prefs := &Preferences{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&prefs.UserID,
		&prefs.Theme,
		&prefs.KidMode,
		&prefs.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Preferences")
		}
		return nil, fmt.Errorf("postgres: failed to find preferences: %w", err)
	}

	return prefs, nil
}

/*
Upsert inserts or replaces the single preferences row for a user.
*/
func (repository *preferenceRepository) Upsert(context context.Context, prefs *Preferences) error {
	const query = `
		INSERT INTO users.preference (userid, theme, kidmode, updatedat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (userid) DO UPDATE
		SET theme = EXCLUDED.theme,
		    kidmode = EXCLUDED.kidmode,
		    updatedat = EXCLUDED.updatedat`

	_, err := repository.pool.Exec(context, query,
		prefs.UserID,
		prefs.Theme,
		prefs.KidMode,
		prefs.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres: failed to save preferences: %w", err)
	}

	return nil
}
