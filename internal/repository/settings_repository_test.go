package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"priorify/internal/domain"
	"priorify/internal/store"
)

func setupSettingsRepository(t *testing.T) (*SettingsRepository, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "priorify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewSettingsRepository(st), st
}

func TestSettingsRepository_Defaults(t *testing.T) {
	repo, _ := setupSettingsRepository(t)

	settings, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.Theme)
	assert.True(t, settings.NotificationsEnabled)
}

func TestSettingsRepository_ToggleTheme(t *testing.T) {
	repo, st := setupSettingsRepository(t)
	ctx := context.Background()

	theme, err := repo.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	theme, err = repo.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)

	// The toggle writes through: a fresh repository sees it
	toggled, err := NewSettingsRepository(st).ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, toggled)
}

func TestSettingsRepository_ToggleNotifications(t *testing.T) {
	repo, _ := setupSettingsRepository(t)
	ctx := context.Background()

	enabled, err := repo.ToggleNotifications(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, settings.NotificationsEnabled)

	enabled, err = repo.ToggleNotifications(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestSettingsRepository_CorruptThemeFallsBackToDefault(t *testing.T) {
	repo, st := setupSettingsRepository(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRaw(ctx, store.KeyTheme, []byte(`"neon"`)))

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.Theme)
}

func TestSettingsRepository_ResetAll(t *testing.T) {
	repo, st := setupSettingsRepository(t)
	ctx := context.Background()

	// Populate every owned key
	require.NoError(t, st.Save(ctx, store.KeyTasks, []string{"placeholder"}))
	require.NoError(t, st.Save(ctx, store.KeyTheme, domain.ThemeDark))
	require.NoError(t, st.Save(ctx, store.KeyNotificationsEnabled, false))
	require.NoError(t, st.Save(ctx, store.KeyLastDueNotification, "2024-06-01"))

	// A key outside this system's ownership must survive
	require.NoError(t, st.Save(ctx, "unrelated", "kept"))

	require.NoError(t, repo.ResetAll(ctx))

	for _, key := range store.OwnedKeys() {
		var ignored interface{}
		found, err := st.Load(ctx, key, &ignored)
		require.NoError(t, err)
		assert.False(t, found, "key %s should have been cleared", key)
	}

	var kept string
	found, err := st.Load(ctx, "unrelated", &kept)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "kept", kept)

	// Settings are back to defaults
	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}
