package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"priorify/internal/domain"
	apperrors "priorify/internal/errors"
	"priorify/internal/store"
	"priorify/internal/validation"
)

// TaskRepository exclusively owns the task collection. The collection is
// loaded once at construction, held in memory in insertion order, and
// written through in full on every mutation, so no partial write is ever
// observable.
type TaskRepository struct {
	store     *store.Store
	tasks     []domain.Task
	validator *validation.TaskValidator
	observers []Observer

	now   func() time.Time
	newID func() string
}

// NewTaskRepository creates a task repository backed by the given store.
// A missing or corrupt persisted collection starts empty.
func NewTaskRepository(ctx context.Context, st *store.Store) (*TaskRepository, error) {
	r := &TaskRepository{
		store:     st,
		validator: validation.NewTaskValidator(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload replaces the in-memory collection with the persisted one.
func (r *TaskRepository) Reload(ctx context.Context) error {
	var tasks []domain.Task
	loaded, err := r.store.Load(ctx, store.KeyTasks, &tasks)
	if err != nil {
		return err
	}
	if !loaded {
		tasks = nil
	}
	r.tasks = tasks
	return nil
}

// Subscribe registers an observer for change events. Consumers must not
// mutate the repository re-entrantly from within the callback.
func (r *TaskRepository) Subscribe(observer Observer) {
	r.observers = append(r.observers, observer)
}

// List returns the task collection in insertion order.
func (r *TaskRepository) List() []domain.Task {
	tasks := make([]domain.Task, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}

// Add validates the input, assigns a fresh unique id, defaults completion
// to false and writes the updated collection through to the store.
func (r *TaskRepository) Add(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := r.validator.ValidateInput(input); err != nil {
		return nil, wrapValidation(err)
	}

	title, err := r.validator.GetValidTitle(input.Title)
	if err != nil {
		return nil, wrapValidation(err)
	}

	task := domain.Task{
		ID:          r.freshID(),
		Title:       title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Completed:   false,
		CreatedAt:   domain.Timestamp(r.now()),
	}

	updated := append(r.List(), task)
	if err := r.persist(ctx, updated); err != nil {
		return nil, err
	}

	r.publish(ChangeEvent{Type: TaskAdded, Task: task})
	return &task, nil
}

// Update merges the patch fields onto the task with the matching id.
// Identity is immutable; an unknown id is a no-op that signals not found.
func (r *TaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := r.validator.ValidatePatch(patch); err != nil {
		return nil, wrapValidation(err)
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("task", id)
	}

	updated := r.List()
	task := updated[idx]
	if patch.Title != nil {
		title, err := r.validator.GetValidTitle(*patch.Title)
		if err != nil {
			return nil, wrapValidation(err)
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = domain.Timestamp(r.now())
	updated[idx] = task

	if err := r.persist(ctx, updated); err != nil {
		return nil, err
	}

	r.publish(ChangeEvent{Type: TaskUpdated, Task: task})
	return &task, nil
}

// Delete removes the task with the matching id; an unknown id is a no-op
// that signals not found.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return apperrors.NewNotFoundError("task", id)
	}

	removed := r.tasks[idx]
	updated := make([]domain.Task, 0, len(r.tasks)-1)
	updated = append(updated, r.tasks[:idx]...)
	updated = append(updated, r.tasks[idx+1:]...)

	if err := r.persist(ctx, updated); err != nil {
		return err
	}

	r.publish(ChangeEvent{Type: TaskDeleted, Task: removed})
	return nil
}

// ToggleComplete flips the completion state of the task with the matching
// id; an unknown id is a no-op that signals not found.
func (r *TaskRepository) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("task", id)
	}

	updated := r.List()
	task := updated[idx]
	task.Completed = !task.Completed
	task.UpdatedAt = domain.Timestamp(r.now())
	updated[idx] = task

	if err := r.persist(ctx, updated); err != nil {
		return nil, err
	}

	r.publish(ChangeEvent{Type: TaskToggled, Task: task})
	return &task, nil
}

// ExportRaw returns the byte-identical persisted serialization of the task
// collection. The second return value is false when nothing has been
// persisted yet.
func (r *TaskRepository) ExportRaw(ctx context.Context) ([]byte, bool, error) {
	return r.store.LoadRaw(ctx, store.KeyTasks)
}

// ImportRaw replaces the task collection with the contents of a
// user-supplied file. The bytes must parse as a task array with valid
// tasks; a failure is rejected without mutating any persisted key. The
// original bytes are persisted verbatim, so a subsequent export is
// byte-identical to the imported file.
func (r *TaskRepository) ImportRaw(ctx context.Context, raw []byte) error {
	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return apperrors.NewImportFormatError("not parseable as JSON array", err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, task := range tasks {
		if err := r.validator.ValidateTask(task); err != nil {
			return apperrors.NewImportFormatError("invalid task in array", err).WithContext("index", i)
		}
		if _, dup := seen[task.ID]; dup {
			return apperrors.NewImportFormatError("duplicate task id", nil).WithContext("id", task.ID)
		}
		seen[task.ID] = struct{}{}
	}

	if err := r.store.SaveRaw(ctx, store.KeyTasks, raw); err != nil {
		return err
	}
	r.tasks = tasks
	return nil
}

// persist writes the full collection through to the store and, on success,
// replaces the in-memory collection. A failed write leaves both the
// persisted and in-memory state unchanged.
func (r *TaskRepository) persist(ctx context.Context, tasks []domain.Task) error {
	if err := r.store.Save(ctx, store.KeyTasks, tasks); err != nil {
		return err
	}
	r.tasks = tasks
	return nil
}

func (r *TaskRepository) publish(event ChangeEvent) {
	for _, observer := range r.observers {
		observer(event)
	}
}

func (r *TaskRepository) indexOf(id string) int {
	for i, task := range r.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// freshID generates an id that is collision-free against all currently
// held ids.
func (r *TaskRepository) freshID() string {
	for {
		id := r.newID()
		if r.indexOf(id) < 0 {
			return id
		}
	}
}

// wrapValidation converts a validation package error into the application
// error taxonomy, preserving the field details as the cause.
func wrapValidation(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return apperrors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return apperrors.NewValidationError("invalid task input", err)
}
