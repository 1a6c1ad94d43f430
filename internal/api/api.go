package api

import (
	"context"

	"priorify/internal/domain"
	"priorify/internal/notify"
	"priorify/internal/repository"
	"priorify/internal/view"
)

// API defines the interface the presentation layer calls into. It is the
// authoritative surface of the task-tracking data layer: every mutating
// task operation writes through synchronously, re-evaluates the due-today
// scheduler and then emits a feedback notification.
type API interface {
	// Task operations
	ListTasks() []domain.Task
	AddTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) (*domain.Task, error)

	// Settings operations
	GetSettings(ctx context.Context) (domain.Settings, error)
	ToggleTheme(ctx context.Context) (domain.Theme, error)
	ToggleNotifications(ctx context.Context) (bool, error)
	ResetAll(ctx context.Context) error

	// Derived views
	DeriveView(query domain.Query) domain.DerivedView

	// Export and import of the persisted task collection
	ExportTasks(ctx context.Context) ([]byte, error)
	ImportTasks(ctx context.Context, raw []byte) error

	// Collaborator hooks
	Notify(ctx context.Context, message string) error
	Subscribe(observer repository.Observer)
	EvaluateNotifications(ctx context.Context) error
}

type apiImpl struct {
	tasks     *repository.TaskRepository
	settings  *repository.SettingsRepository
	scheduler *notify.Scheduler
}

// New creates a new API instance over the given repositories and scheduler.
func New(tasks *repository.TaskRepository, settings *repository.SettingsRepository, scheduler *notify.Scheduler) API {
	return &apiImpl{
		tasks:     tasks,
		settings:  settings,
		scheduler: scheduler,
	}
}

func (a *apiImpl) ListTasks() []domain.Task {
	return a.tasks.List()
}

func (a *apiImpl) AddTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	task, err := a.tasks.Add(ctx, input)
	if err != nil {
		return nil, err
	}
	a.afterMutation(ctx, "Task added successfully")
	return task, nil
}

func (a *apiImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := a.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	a.afterMutation(ctx, "Task updated")
	return task, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	if err := a.tasks.Delete(ctx, id); err != nil {
		return err
	}
	a.afterMutation(ctx, "Task deleted")
	return nil
}

func (a *apiImpl) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := a.tasks.ToggleComplete(ctx, id)
	if err != nil {
		return nil, err
	}
	// Toggling is silent feedback-wise; the scheduler still re-evaluates.
	a.afterMutation(ctx, "")
	return task, nil
}

func (a *apiImpl) GetSettings(ctx context.Context) (domain.Settings, error) {
	return a.settings.Get(ctx)
}

func (a *apiImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	return a.settings.ToggleTheme(ctx)
}

func (a *apiImpl) ToggleNotifications(ctx context.Context) (bool, error) {
	return a.settings.ToggleNotifications(ctx)
}

func (a *apiImpl) ResetAll(ctx context.Context) error {
	if err := a.settings.ResetAll(ctx); err != nil {
		return err
	}
	// The persisted collection is gone; drop the in-memory copy too.
	return a.tasks.Reload(ctx)
}

func (a *apiImpl) DeriveView(query domain.Query) domain.DerivedView {
	return view.DeriveView(a.tasks.List(), query)
}

// ExportTasks returns the byte-identical persisted serialization of the
// task collection, or nil when nothing has been persisted yet.
func (a *apiImpl) ExportTasks(ctx context.Context) ([]byte, error) {
	raw, found, err := a.tasks.ExportRaw(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return raw, nil
}

func (a *apiImpl) ImportTasks(ctx context.Context, raw []byte) error {
	if err := a.tasks.ImportRaw(ctx, raw); err != nil {
		return err
	}
	a.afterMutation(ctx, "Tasks imported successfully")
	return nil
}

func (a *apiImpl) Notify(ctx context.Context, message string) error {
	return a.scheduler.Notify(ctx, message)
}

func (a *apiImpl) Subscribe(observer repository.Observer) {
	a.tasks.Subscribe(observer)
}

func (a *apiImpl) EvaluateNotifications(ctx context.Context) error {
	return a.scheduler.Evaluate(ctx)
}

// afterMutation runs the post-write side effects: scheduler re-evaluation
// and, when non-empty, a feedback message. Neither failure disturbs the
// already-persisted mutation.
func (a *apiImpl) afterMutation(ctx context.Context, feedback string) {
	_ = a.scheduler.Evaluate(ctx)
	if feedback != "" {
		_ = a.scheduler.Notify(ctx, feedback)
	}
}
