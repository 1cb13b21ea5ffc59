package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"someday/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "sd",
		Short: "A bucketed task list for today, next and someday",
		Long: `Someday (sd) keeps tasks in four buckets: today, next day, next week and
someday. Someday tasks can be grouped into projects. Running sd without a
subcommand opens the interactive board.

EXAMPLES:
  sd                                         # Open the interactive board
  sd add "Reply to email"                    # Add a task for today
  sd add "Plant bulbs" --project Garden      # Add a someday task to a project
  sd add "Call plumber" --when nextweek      # Plan a task for next week
  sd done 3f1c...                            # Mark a task as done
  sd list --format yaml                      # Print the board
  sd project rename Garden Yard              # Rename a project and its tasks
  sd export > backup.json                    # Dump every task and project

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Storage Configuration:
    SD_STORAGE_BACKEND                     sqlite, file or memory (default: sqlite)
    SD_DATA_DIR                            Data directory (default: ~/.someday)
    SD_STORAGE_FILENAME                    Storage filename (default: someday.db)
    SD_DATA_DIR_PERMISSIONS                Data directory permissions (default: 0755)
    SD_STORAGE_WRITE_TIMEOUT               Write timeout (default: 5s)

  Display Configuration:
    SD_DISPLAY_COMPLETION_DELAY            Fade before a completed task leaves (default: 300ms)
    SD_DISPLAY_DOUBLE_ACTIVATION_WINDOW    Window for opening a task editor (default: 400ms)
    SD_DISPLAY_DEFAULT_WHEN                Bucket for new tasks (default: today)

  Application Configuration:
    SD_APP_TIMEOUT                         Application timeout (default: 60s)
    SD_APP_VERBOSE                         Enable verbose output (default: false)
    SD_CONFIG                              Config file (default: <data dir>/config.yaml)

  Command Configuration:
    SD_LIST_DEFAULT_FORMAT                 Default list format (default: table)
    SD_EXPORT_DEFAULT_FORMAT               Default export format (default: json)

GETTING HELP:
  sd [command] --help                        # Get help for any specific command
  sd completion bash                         # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.applyFlags(cmd.Flags())
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runTUI(cmd)
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command with args
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	r.cmd.SetOut(r.app.out)
	r.cmd.SetIn(r.app.in)
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite, file or memory (overrides SD_STORAGE_BACKEND)")
	flags.String("data-dir", "", "Data directory (overrides SD_DATA_DIR)")
	flags.String("storage-filename", "", "Storage filename (overrides SD_STORAGE_FILENAME)")
	flags.Uint32("data-dir-permissions", 0, "Data directory permissions (overrides SD_DATA_DIR_PERMISSIONS)")
	flags.Duration("write-timeout", 0, "Storage write timeout (overrides SD_STORAGE_WRITE_TIMEOUT)")

	// Display configuration
	flags.Duration("completion-delay", 0, "Fade before a completed task leaves the board (overrides SD_DISPLAY_COMPLETION_DELAY)")
	flags.Duration("double-activation-window", 0, "Window for the second activation that opens the editor (overrides SD_DISPLAY_DOUBLE_ACTIVATION_WINDOW)")
	flags.String("default-when", "", "Bucket for new tasks (overrides SD_DISPLAY_DEFAULT_WHEN)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides SD_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides SD_APP_VERBOSE)")

	// Commands configuration
	flags.String("list-format", "", "Default list format (overrides SD_LIST_DEFAULT_FORMAT)")
	flags.String("export-format", "", "Default export format (overrides SD_EXPORT_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Long: `Add a task to a bucket. Without --when the task goes to the default
bucket, or to someday when --project is given.

Examples:
  sd add "Reply to email"
  sd add "Plant bulbs" --project Garden
  sd add "Book dentist" --when nextday --notes "after 3pm"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewAddCommand(r.app).Execute(ctx, args, addOpts)
			})
		},
	}
	addCmd.Flags().StringVar(&addOpts.When, "when", "", "Bucket: today, nextday, nextweek or someday")
	addCmd.Flags().StringVar(&addOpts.Project, "project", "", "Project for a someday task")
	addCmd.Flags().StringVar(&addOpts.Notes, "notes", "", "Free-form notes")

	// Edit command
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Change the title, notes, bucket or project of a task. Only the flags
given are changed. Moving a task out of someday drops its project.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := editOptionsFromFlags(cmd.Flags())
			return r.run(cmd, func(ctx context.Context) error {
				return NewEditCommand(r.app).Execute(ctx, args, opts)
			})
		},
	}
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("notes", "", "New notes")
	editCmd.Flags().String("when", "", "New bucket: today, nextday, nextweek or someday")
	editCmd.Flags().String("project", "", "New project (empty string clears it)")

	// Done command
	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewDoneCommand(r.app).Execute(ctx, args)
			})
		},
	}

	// List command
	var listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the board",
		Long: `Print the open tasks grouped by bucket: Today, Next, Unplanned and one
section per project.

Formats: table, json, yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewListCommand(r.app).Execute(ctx, listFormat)
			})
		},
	}
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format: table, json or yaml")

	// Export command
	var exportFormat string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks and projects",
		Long: `Write the raw task and project collections, done tasks included.

Formats: json, yaml

Example:
  sd export --format yaml > someday.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewExportCommand(r.app).Execute(ctx, exportFormat)
			})
		},
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: json or yaml")

	// TUI command
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		editCmd,
		doneCmd,
		listCmd,
		r.newProjectCommand(),
		exportCmd,
		tuiCmd,
	)
}

// newProjectCommand builds the project command group
func (r *RootCommand) newProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewProjectCommand(r.app).Add(ctx, args[0])
			})
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a project and move its tasks along",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewProjectCommand(r.app).Rename(ctx, args[0], args[1])
			})
		},
	}

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project",
		Long: `Delete a project. Its tasks are kept and become uncategorized.
You are asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewProjectCommand(r.app).Delete(ctx, args[0], yes)
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewProjectCommand(r.app).List(ctx)
			})
		},
	}

	projectCmd.AddCommand(addCmd, renameCmd, deleteCmd, listCmd)
	return projectCmd
}

// run bounds a scripted command by the application timeout and makes sure
// the backend exists before fn runs
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), r.getAppTimeout())
	defer cancel()

	if err := r.app.ensureBackend(ctx); err != nil {
		return err
	}
	r.reportStorage(cmd)
	return fn(ctx)
}

// runTUI starts the interactive board. The session is not bound by the
// application timeout.
func (r *RootCommand) runTUI(cmd *cobra.Command) error {
	ctx := context.WithoutCancel(commandContext(cmd))

	setupCtx, cancel := context.WithTimeout(ctx, r.getAppTimeout())
	err := r.app.ensureBackend(setupCtx)
	cancel()
	if err != nil {
		return err
	}
	r.reportStorage(cmd)
	return NewTUICommand(r.app).Execute(ctx)
}

// reportStorage names the storage in use when verbose output is on
func (r *RootCommand) reportStorage(cmd *cobra.Command) {
	cfg := r.app.config
	if cfg == nil || !cfg.Application.Verbose {
		return
	}
	if cfg.Storage.Backend == config.BackendMemory {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using in-memory storage; changes are discarded on exit")
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Using %s storage at %s\n", cfg.Storage.Backend, cfg.GetStoragePath())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// applyFlags folds the flags the user actually set into the configuration
// and validates the result
func (r *RootCommand) applyFlags(flags *pflag.FlagSet) error {
	if r.app.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	overrides := &config.ConfigOverrides{}

	// Storage configuration
	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		overrides.Backend = &v
	}
	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		overrides.DataDir = &v
	}
	if flags.Changed("storage-filename") {
		v, _ := flags.GetString("storage-filename")
		overrides.Filename = &v
	}
	if flags.Changed("data-dir-permissions") {
		v, _ := flags.GetUint32("data-dir-permissions")
		overrides.DirPermissions = &v
	}
	if flags.Changed("write-timeout") {
		v, _ := flags.GetDuration("write-timeout")
		overrides.WriteTimeout = &v
	}

	// Display configuration
	if flags.Changed("completion-delay") {
		v, _ := flags.GetDuration("completion-delay")
		overrides.CompletionDelay = &v
	}
	if flags.Changed("double-activation-window") {
		v, _ := flags.GetDuration("double-activation-window")
		overrides.DoubleActivationWindow = &v
	}
	if flags.Changed("default-when") {
		v, _ := flags.GetString("default-when")
		overrides.DefaultWhen = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	// Commands configuration
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListDefaultFormat = &v
	}
	if flags.Changed("export-format") {
		v, _ := flags.GetString("export-format")
		overrides.ExportDefaultFormat = &v
	}

	r.app.config.ApplyOverrides(overrides)
	return r.app.config.Validate()
}
