// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package preference_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/users/preference"
)

type fakeRepo struct {
	stored map[string]*preference.Preferences
}

func (f *fakeRepo) FindByUserID(_ context.Context, userID string) (*preference.Preferences, error) {
	if p, ok := f.stored[userID]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Preferences")
}

func (f *fakeRepo) Upsert(_ context.Context, prefs *preference.Preferences) error {
	f.stored[prefs.UserID] = prefs
	return nil
}

func newService(t *testing.T) (*preference.Service, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{stored: map[string]*preference.Preferences{}}
	return preference.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestGetPreferences_DefaultsWhenUnset(t *testing.T) {
	service, _ := newService(t)

	prefs, err := service.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, preference.ThemeSystem, prefs.Theme)
	assert.False(t, prefs.KidMode)
}

func TestUpdatePreferences_RoundTrip(t *testing.T) {
	service, repo := newService(t)

	saved, err := service.UpdatePreferences(context.Background(), "user-1", preference.UpdateInput{
		Theme:   preference.ThemeDark,
		KidMode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, preference.ThemeDark, saved.Theme)
	assert.True(t, saved.KidMode)
	assert.NotZero(t, saved.UpdatedAt)

	loaded, err := service.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Len(t, repo.stored, 1)
}

func TestUpdatePreferences_RejectsUnknownTheme(t *testing.T) {
	service, repo := newService(t)

	_, err := service.UpdatePreferences(context.Background(), "user-1", preference.UpdateInput{
		Theme: "sepia",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.stored)
}
