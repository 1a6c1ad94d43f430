package cli

import (
	"context"
	"fmt"
	"io"

	"priorify/internal/api"
)

// SettingsCommand handles the settings, theme and notifications commands
type SettingsCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(a api.API, out io.Writer) *SettingsCommand {
	return &SettingsCommand{api: a, out: out, errs: NewErrorHandler()}
}

// Show prints the current settings
func (c *SettingsCommand) Show(ctx context.Context) error {
	settings, err := c.api.GetSettings(ctx)
	if err != nil {
		return c.errs.Handle("read settings", err)
	}

	notifications := "off"
	if settings.NotificationsEnabled {
		notifications = "on"
	}
	fmt.Fprintf(c.out, "Theme:         %s\n", settings.Theme)
	fmt.Fprintf(c.out, "Notifications: %s\n", notifications)
	return nil
}

// ToggleTheme flips the theme preference
func (c *SettingsCommand) ToggleTheme(ctx context.Context) error {
	theme, err := c.api.ToggleTheme(ctx)
	if err != nil {
		return c.errs.Handle("toggle theme", err)
	}

	fmt.Fprintf(c.out, "Theme set to %s\n", theme)
	return nil
}

// ToggleNotifications flips the notifications-enabled flag
func (c *SettingsCommand) ToggleNotifications(ctx context.Context) error {
	enabled, err := c.api.ToggleNotifications(ctx)
	if err != nil {
		return c.errs.Handle("toggle notifications", err)
	}

	if enabled {
		fmt.Fprintln(c.out, "Notifications enabled")
	} else {
		fmt.Fprintln(c.out, "Notifications disabled")
	}
	return nil
}

// ResetCommand handles the reset command
type ResetCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(a api.API, out io.Writer) *ResetCommand {
	return &ResetCommand{api: a, out: out, errs: NewErrorHandler()}
}

// Execute clears every persisted key owned by the application. The caller
// is expected to have confirmed the destructive intent already.
func (c *ResetCommand) Execute(ctx context.Context, confirmed bool) error {
	if !confirmed {
		fmt.Fprintln(c.out, "Reset deletes all tasks and settings. Re-run with --yes to confirm.")
		return nil
	}

	if err := c.api.ResetAll(ctx); err != nil {
		return c.errs.Handle("reset data", err)
	}

	fmt.Fprintln(c.out, "All data has been reset")
	return nil
}
