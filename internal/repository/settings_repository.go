package repository

import (
	"context"

	"priorify/internal/domain"
	"priorify/internal/store"
)

// SettingsRepository owns the theme and notification preferences. Values
// are read from the store on demand and written through on every toggle;
// a missing or corrupt value falls back to its default.
type SettingsRepository struct {
	store *store.Store
}

// NewSettingsRepository creates a settings repository backed by the given store.
func NewSettingsRepository(st *store.Store) *SettingsRepository {
	return &SettingsRepository{store: st}
}

// Get returns the current settings, applying defaults for anything not
// persisted yet.
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	var theme domain.Theme
	loaded, err := r.store.Load(ctx, store.KeyTheme, &theme)
	if err != nil {
		return settings, err
	}
	if loaded && theme.IsValid() {
		settings.Theme = theme
	}

	var enabled bool
	loaded, err = r.store.Load(ctx, store.KeyNotificationsEnabled, &enabled)
	if err != nil {
		return settings, err
	}
	if loaded {
		settings.NotificationsEnabled = enabled
	}

	return settings, nil
}

// ToggleTheme flips light<->dark and persists the result.
func (r *SettingsRepository) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return settings.Theme, err
	}

	toggled := settings.Theme.Toggled()
	if err := r.store.Save(ctx, store.KeyTheme, toggled); err != nil {
		return settings.Theme, err
	}
	return toggled, nil
}

// ToggleNotifications flips the notifications-enabled flag and persists
// the result.
func (r *SettingsRepository) ToggleNotifications(ctx context.Context) (bool, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return settings.NotificationsEnabled, err
	}

	toggled := !settings.NotificationsEnabled
	if err := r.store.Save(ctx, store.KeyNotificationsEnabled, toggled); err != nil {
		return settings.NotificationsEnabled, err
	}
	return toggled, nil
}

// ResetAll clears every key owned by this system from the store. This is
// a destructive, irreversible operation that fully reinitializes the data
// layer.
func (r *SettingsRepository) ResetAll(ctx context.Context) error {
	for _, key := range store.OwnedKeys() {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
