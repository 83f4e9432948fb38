package services

import (
	"context"
	"path/filepath"
	"testing"

	"MenuMate/config/database"
	"MenuMate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreferenceService(t *testing.T) *PreferenceService {
	t.Helper()
	db, err := database.InitSQLite(filepath.Join(t.TempDir(), "db", "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPreferenceService(db)
}

func TestPreferenceServiceUnknownUser(t *testing.T) {
	svc := newPreferenceService(t)

	prefs, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestPreferenceServiceSaveAndUpdate(t *testing.T) {
	svc := newPreferenceService(t)
	ctx := context.Background()

	prefs := models.DefaultPreferences()
	prefs.Allergens["peanuts"] = true
	require.NoError(t, svc.Save(ctx, "user-1", prefs))

	got, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, prefs, *got)
	assert.Equal(t, map[string]struct{}{"peanuts": {}}, got.DisallowedAllergens())

	prefs.Allergens["peanuts"] = false
	prefs.Allergens["milk"] = true
	prefs.CustomPreferences = "no dairy"
	require.NoError(t, svc.Save(ctx, "user-1", prefs))

	got, err = svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "no dairy", got.CustomPreferences)
	assert.Equal(t, map[string]struct{}{"milk": {}}, got.DisallowedAllergens())
}

func TestPreferenceServiceEnsureDefaults(t *testing.T) {
	svc := newPreferenceService(t)
	ctx := context.Background()

	prefs, err := svc.EnsureDefaults(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), *prefs)
	assert.Empty(t, prefs.DisallowedAllergens())

	custom := models.DefaultPreferences()
	custom.Allergens["soy"] = true
	require.NoError(t, svc.Save(ctx, "user-2", custom))

	prefs, err = svc.EnsureDefaults(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, prefs.Allergens["soy"])
}
