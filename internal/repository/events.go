package repository

import (
	"priorify/internal/domain"
)

// ChangeType identifies the kind of mutation that produced a change event.
type ChangeType string

const (
	TaskAdded   ChangeType = "added"
	TaskUpdated ChangeType = "updated"
	TaskDeleted ChangeType = "deleted"
	TaskToggled ChangeType = "toggled"
)

// ChangeEvent describes a single successful task mutation. Events are
// delivered synchronously after the write-through completes.
type ChangeEvent struct {
	Type ChangeType
	Task domain.Task
}

// Observer receives change events. Observers must not mutate the
// repositories from within a callback.
type Observer func(ChangeEvent)
