package domain

import (
	"strings"
	"time"
)

// DueDateLayout is the calendar-day format used for task due dates and for
// the daily notification marker.
const DueDateLayout = "2006-01-02"

// Priority represents a task priority level. The zero value means "unset".
type Priority string

const (
	PriorityUnset  Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is one of the known levels or unset.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUnset, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority normalizes a priority string to a Priority value.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return PriorityUnset, false
	}
	return p, true
}

// Task represents a unit of user-tracked work.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.Priority.IsValid()
}

// IsDueOn returns true if the task is due on the given calendar day and is
// not yet completed.
func (t Task) IsDueOn(day string) bool {
	return t.DueDate == day && !t.Completed
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskInput holds the caller-supplied fields for creating a task. The
// repository assigns the identity and timestamps.
type TaskInput struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     string
}

// TaskPatch holds the fields of an update; nil fields are left unchanged.
// Identity is immutable, so there is no ID field to patch.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *string
	Completed   *bool
}

// Timestamp formats a time for the createdAt/updatedAt fields.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
