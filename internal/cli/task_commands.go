package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"priorify/internal/api"
	"priorify/internal/domain"
)

// AddCommand handles the add command
type AddCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(a api.API, out io.Writer) *AddCommand {
	return &AddCommand{api: a, out: out, errs: NewErrorHandler()}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, title, description, priority, dueDate string) error {
	parsed := domain.PriorityUnset
	if priority != "" {
		p, ok := domain.ParsePriority(priority)
		if !ok {
			return fmt.Errorf("failed to add task: priority must be high, medium or low")
		}
		parsed = p
	}

	task, err := c.api.AddTask(ctx, domain.TaskInput{
		Title:       title,
		Description: description,
		Priority:    parsed,
		DueDate:     dueDate,
	})
	if err != nil {
		return c.errs.Handle("add task", err)
	}

	fmt.Fprintf(c.out, "Added task %s: %s\n", task.ID, task.Title)
	return nil
}

// ListCommand handles the list command
type ListCommand struct {
	api api.API
	out io.Writer
}

// NewListCommand creates a new list command handler
func NewListCommand(a api.API, out io.Writer) *ListCommand {
	return &ListCommand{api: a, out: out}
}

// Execute runs the list command with a derived-view query
func (c *ListCommand) Execute(ctx context.Context, query domain.Query) error {
	derived := c.api.DeriveView(query)

	if len(derived.Filtered) == 0 {
		fmt.Fprintln(c.out, "No tasks found")
		return nil
	}

	for _, task := range derived.Filtered {
		fmt.Fprintln(c.out, formatTask(task))
	}
	return nil
}

// formatTask renders one task as a single line:
// [x] title (high, due 2024-06-01) id
func formatTask(task domain.Task) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}

	var details []string
	if task.Priority != domain.PriorityUnset {
		details = append(details, string(task.Priority))
	}
	if task.DueDate != "" {
		details = append(details, "due "+task.DueDate)
	}

	line := fmt.Sprintf("[%s] %s", mark, task.Title)
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return line + "  " + task.ID
}

// UpdateCommand handles the update command
type UpdateCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewUpdateCommand creates a new update command handler
func NewUpdateCommand(a api.API, out io.Writer) *UpdateCommand {
	return &UpdateCommand{api: a, out: out, errs: NewErrorHandler()}
}

// UpdateFlags carries the optional fields of an update; nil means "leave unchanged".
type UpdateFlags struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *string
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context, id string, flags UpdateFlags) error {
	patch := domain.TaskPatch{
		Title:       flags.Title,
		Description: flags.Description,
		DueDate:     flags.DueDate,
	}
	if flags.Priority != nil {
		p, ok := domain.ParsePriority(*flags.Priority)
		if !ok {
			return fmt.Errorf("failed to update task: priority must be high, medium or low")
		}
		patch.Priority = &p
	}

	task, err := c.api.UpdateTask(ctx, id, patch)
	if err != nil {
		return c.errs.Handle("update task", err)
	}

	fmt.Fprintf(c.out, "Updated task %s: %s\n", task.ID, task.Title)
	return nil
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(a api.API, out io.Writer) *DeleteCommand {
	return &DeleteCommand{api: a, out: out, errs: NewErrorHandler()}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, id string) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return c.errs.Handle("delete task", err)
	}

	fmt.Fprintf(c.out, "Deleted task %s\n", id)
	return nil
}

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(a api.API, out io.Writer) *ToggleCommand {
	return &ToggleCommand{api: a, out: out, errs: NewErrorHandler()}
}

// Execute runs the toggle command
func (c *ToggleCommand) Execute(ctx context.Context, id string) error {
	task, err := c.api.ToggleComplete(ctx, id)
	if err != nil {
		return c.errs.Handle("toggle task", err)
	}

	state := "pending"
	if task.Completed {
		state = "completed"
	}
	fmt.Fprintf(c.out, "Task %s is now %s\n", task.ID, state)
	return nil
}

// StatsCommand handles the stats command
type StatsCommand struct {
	api api.API
	out io.Writer
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(a api.API, out io.Writer) *StatsCommand {
	return &StatsCommand{api: a, out: out}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) error {
	stats := c.api.DeriveView(domain.DefaultQuery()).Stats

	fmt.Fprintf(c.out, "Total:           %d\n", stats.Total)
	fmt.Fprintf(c.out, "Completed:       %d\n", stats.Completed)
	fmt.Fprintf(c.out, "Pending:         %d\n", stats.Pending)
	fmt.Fprintf(c.out, "High priority:   %d\n", stats.HighPriority)
	fmt.Fprintf(c.out, "Medium priority: %d\n", stats.MediumPriority)
	fmt.Fprintf(c.out, "Low priority:    %d\n", stats.LowPriority)
	fmt.Fprintf(c.out, "Completion rate: %d%%\n", stats.CompletionRate)
	return nil
}
