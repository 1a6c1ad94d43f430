package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"priorify/internal/api"
	"priorify/internal/config"
	"priorify/internal/domain"
)

// ExportCommand handles the export command
type ExportCommand struct {
	api    api.API
	out    io.Writer
	config *config.Config
	errs   *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(a api.API, out io.Writer, cfg *config.Config) *ExportCommand {
	return &ExportCommand{api: a, out: out, config: cfg, errs: NewErrorHandler()}
}

// Execute writes the persisted task collection, byte for byte, to the
// given path. An empty path selects a dated default filename.
func (c *ExportCommand) Execute(ctx context.Context, path string) error {
	raw, err := c.api.ExportTasks(ctx)
	if err != nil {
		return c.errs.Handle("export tasks", err)
	}
	if raw == nil {
		fmt.Fprintln(c.out, "No tasks to export")
		return nil
	}

	if path == "" {
		day := time.Now().Format(domain.DueDateLayout)
		path = fmt.Sprintf("%s-%s.json", c.config.Export.FilenamePrefix, day)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to export tasks: %w", err)
	}

	fmt.Fprintf(c.out, "Exported tasks to %s\n", path)
	return nil
}

// ImportCommand handles the import command
type ImportCommand struct {
	api  api.API
	out  io.Writer
	errs *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(a api.API, out io.Writer) *ImportCommand {
	return &ImportCommand{api: a, out: out, errs: NewErrorHandler()}
}

// Execute replaces the task collection with the contents of the given
// file. A file that does not parse as a task array is rejected without
// touching persisted state.
func (c *ImportCommand) Execute(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to import tasks: %w", err)
	}

	if err := c.api.ImportTasks(ctx, raw); err != nil {
		return c.errs.Handle("import tasks", err)
	}

	fmt.Fprintf(c.out, "Imported tasks from %s\n", path)
	return nil
}
