package main

import (
	"context"
	"fmt"
	"os"

	"priorify/internal/api"
	"priorify/internal/cli"
	"priorify/internal/config"
	"priorify/internal/notify"
	"priorify/internal/repository"
	"priorify/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	st, err := store.Open(cfg.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()

	tasks, err := repository.NewTaskRepository(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	settings := repository.NewSettingsRepository(st)
	scheduler := notify.NewScheduler(tasks, settings, st, notify.NewWriterNotifier(os.Stderr))

	apiInstance := api.New(tasks, settings, scheduler)

	// Evaluate due-today alerts once at startup, before any command runs.
	if err := apiInstance.EvaluateNotifications(ctx); err != nil {
		return fmt.Errorf("failed to evaluate notifications: %w", err)
	}

	return cli.NewRootCommand(apiInstance, cfg).Execute()
}
