package cli

import (
	"context"
	"fmt"
	"strings"

	"someday/internal/api"
	"someday/internal/config"
	"someday/internal/domain"
	"someday/internal/errors"
)

// AddOptions holds the flags of the add command
type AddOptions struct {
	When    string
	Project string
	Notes   string
}

// AddCommand handles the add command
type AddCommand struct {
	api    api.API
	config *config.Config
	app    *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{api: app.api, config: app.config, app: app}
}

// Execute creates a task from the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string, opts AddOptions) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: sd add <title...> [--when W] [--project P] [--notes N]")
	}

	when, err := c.resolveWhen(opts)
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}

	task, err := c.api.AddTask(ctx, domain.TaskInput{
		Title:   strings.Join(args, " "),
		Notes:   opts.Notes,
		When:    when,
		Project: strings.TrimSpace(opts.Project),
	})
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %s to %s: %s\n", task.ID, placement(*task), task.Title)
	return nil
}

// resolveWhen defaults to someday when only a project is given, and to the
// configured bucket otherwise
func (c *AddCommand) resolveWhen(opts AddOptions) (domain.When, error) {
	if opts.When == "" {
		if strings.TrimSpace(opts.Project) != "" {
			return domain.WhenSomeday, nil
		}
		if c.config != nil {
			return c.config.GetDefaultWhen(), nil
		}
		return domain.WhenToday, nil
	}
	return parseWhenFlag(opts.When)
}

func parseWhenFlag(s string) (domain.When, error) {
	when, err := domain.ParseWhen(s)
	if err != nil {
		return "", errors.NewInvalidInputError("when", s, err.Error())
	}
	return when, nil
}

// placement describes where a task shows up on the board
func placement(t domain.Task) string {
	if name := t.ProjectName(); name != "" {
		return "project " + name
	}
	return t.When.Label()
}
