package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"priorify/internal/api"
	"priorify/internal/config"
	"priorify/internal/domain"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	api    api.API
	config *config.Config
}

// NewRootCommand creates the root cobra command with all subcommands
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		api:    apiInstance,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "priorify",
		Short: "A command-line task tracker with priorities and due dates",
		Long: `Priorify is a command-line task tracker. It keeps an authoritative,
durable task collection, derives filtered views and statistics on demand,
and raises at most one "tasks due today" alert per day.

EXAMPLES:
  priorify add "Buy milk" --priority high --due 2024-06-01
  priorify list --search milk --hide-completed
  priorify toggle 6b1e...                  # Flip completion by task id
  priorify stats                           # Aggregate counters
  priorify export tasks.json               # Byte-identical task export
  priorify import tasks.json               # Replace collection from a file
  priorify reset --yes                     # Delete everything

CONFIGURATION:
  Settings cascade: environment variables > config.toml > defaults

    PRIORIFY_DATA_DIR                      Data directory (default: ~/.priorify)
    PRIORIFY_DATA_FILENAME                 Database filename (default: priorify.db)
    PRIORIFY_EXPORT_PREFIX                 Export filename prefix (default: priorify-tasks)
    PRIORIFY_APP_TIMEOUT                   Operation timeout (default: 30s)
    PRIORIFY_APP_VERBOSE                   Enable verbose output (default: false)
    PRIORIFY_DEBUG                         Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.config.Application.Timeout)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	out := os.Stdout

	// Add command
	var addDescription, addPriority, addDue string
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long:  "Add a new task with an optional description, priority and due date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewAddCommand(r.api, out).Execute(ctx, args[0], addDescription, addPriority, addDue)
		},
	}
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Task priority (high, medium, low)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")

	// List command
	var listSearch, listPriority string
	var listHideCompleted bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks with optional filtering.

Filters combine: a task must match every given filter to be shown.
Search matches case-insensitively within titles and descriptions.

Examples:
  priorify list                            # All tasks
  priorify list --search milk              # Tasks mentioning "milk"
  priorify list --priority high            # High-priority tasks only
  priorify list --hide-completed           # Pending tasks only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			query := domain.Query{
				SearchText:     listSearch,
				PriorityFilter: listPriority,
				ShowCompleted:  !listHideCompleted,
			}
			return NewListCommand(r.api, out).Execute(ctx, query)
		},
	}
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search text for title and description")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", domain.PriorityFilterAll, "Priority filter (all, high, medium, low)")
	listCmd.Flags().BoolVar(&listHideCompleted, "hide-completed", false, "Hide completed tasks")

	// Update command
	updateFlags := UpdateFlags{}
	var updateTitle, updateDescription, updatePriority, updateDue string
	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a task",
		Long:  "Update fields of an existing task. Only the flags you pass are changed; the task id is immutable.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			if cmd.Flags().Changed("title") {
				updateFlags.Title = &updateTitle
			}
			if cmd.Flags().Changed("description") {
				updateFlags.Description = &updateDescription
			}
			if cmd.Flags().Changed("priority") {
				updateFlags.Priority = &updatePriority
			}
			if cmd.Flags().Changed("due") {
				updateFlags.DueDate = &updateDue
			}
			return NewUpdateCommand(r.api, out).Execute(ctx, args[0], updateFlags)
		},
	}
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority (high, medium, low)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date (YYYY-MM-DD, empty clears)")

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewDeleteCommand(r.api, out).Execute(ctx, args[0])
		},
	}

	// Toggle command
	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewToggleCommand(r.api, out).Execute(ctx, args[0])
		},
	}

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewStatsCommand(r.api, out).Execute(ctx)
		},
	}

	// Settings commands
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewSettingsCommand(r.api, out).Show(ctx)
		},
	}

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Toggle between light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewSettingsCommand(r.api, out).ToggleTheme(ctx)
		},
	}

	notificationsCmd := &cobra.Command{
		Use:   "notifications",
		Short: "Toggle notifications on or off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewSettingsCommand(r.api, out).ToggleNotifications(ctx)
		},
	}

	// Reset command
	var resetConfirmed bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all tasks and settings",
		Long:  "Delete every persisted key owned by the application: tasks, settings and the notification marker. This cannot be undone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewResetCommand(r.api, out).Execute(ctx, resetConfirmed)
		},
	}
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm the destructive reset")

	// Export command
	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the task collection to a JSON file",
		Long:  "Write the persisted task collection, byte for byte, to a JSON file. Without a file argument a dated filename is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return NewExportCommand(r.api, out, r.config).Execute(ctx, path)
		},
	}

	// Import command
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a task collection from a JSON file",
		Long:  "Replace the task collection with the contents of a JSON file. The file must parse as a task array; otherwise nothing is changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.newContext()
			defer cancel()

			return NewImportCommand(r.api, out).Execute(ctx, args[0])
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		updateCmd,
		deleteCmd,
		toggleCmd,
		statsCmd,
		settingsCmd,
		themeCmd,
		notificationsCmd,
		resetCmd,
		exportCmd,
		importCmd,
	)
}
