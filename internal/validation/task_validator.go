package validation

import (
	"strings"
	"time"

	"priorify/internal/domain"
)

const (
	titleMinLength = 1
	titleMaxLength = 255
)

// TaskValidator provides validation for task-related operations
type TaskValidator struct{}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		validationError.AddRequiredError("title")
		return validationError
	}

	if len(trimmed) > titleMaxLength {
		validationError.AddInvalidLengthError("title", trimmed, titleMinLength, titleMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidatePriority validates a priority value; the unset priority is valid
func (tv *TaskValidator) ValidatePriority(priority domain.Priority) error {
	if !priority.IsValid() {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("priority", string(priority), "must be high, medium or low")
		return validationError
	}
	return nil
}

// ValidateDueDate validates a due date string; empty means no due date
func (tv *TaskValidator) ValidateDueDate(dueDate string) error {
	if dueDate == "" {
		return nil
	}
	if _, err := time.Parse(domain.DueDateLayout, dueDate); err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("dueDate", dueDate, domain.DueDateLayout)
		return validationError
	}
	return nil
}

// ValidateInput validates a task input for creation
func (tv *TaskValidator) ValidateInput(input domain.TaskInput) error {
	validationError := NewValidationError()

	tv.collect(validationError, tv.ValidateTitle(input.Title))
	tv.collect(validationError, tv.ValidatePriority(input.Priority))
	tv.collect(validationError, tv.ValidateDueDate(input.DueDate))

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidatePatch validates the set fields of a task patch
func (tv *TaskValidator) ValidatePatch(patch domain.TaskPatch) error {
	validationError := NewValidationError()

	if patch.Title != nil {
		tv.collect(validationError, tv.ValidateTitle(*patch.Title))
	}
	if patch.Priority != nil {
		tv.collect(validationError, tv.ValidatePriority(*patch.Priority))
	}
	if patch.DueDate != nil {
		tv.collect(validationError, tv.ValidateDueDate(*patch.DueDate))
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTask validates a fully-formed task, as found in an import file
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	if strings.TrimSpace(task.ID) == "" {
		validationError.AddRequiredError("id")
	}
	tv.collect(validationError, tv.ValidateTitle(task.Title))
	tv.collect(validationError, tv.ValidatePriority(task.Priority))
	tv.collect(validationError, tv.ValidateDueDate(task.DueDate))

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// GetValidTitle returns a trimmed title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

// collect merges the field errors of a nested validation result
func (tv *TaskValidator) collect(into *ValidationError, err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(*ValidationError); ok {
		into.Errors = append(into.Errors, nested.Errors...)
	}
}
