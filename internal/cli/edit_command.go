package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"someday/internal/api"
	"someday/internal/errors"
)

// EditOptions holds the flags the user set on the edit command. Nil means
// leave the field alone.
type EditOptions struct {
	Title   *string
	Notes   *string
	When    *string
	Project *string
}

func (o EditOptions) empty() bool {
	return o.Title == nil && o.Notes == nil && o.When == nil && o.Project == nil
}

func editOptionsFromFlags(flags *pflag.FlagSet) EditOptions {
	var opts EditOptions
	changed := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	opts.Title = changed("title")
	opts.Notes = changed("notes")
	opts.When = changed("when")
	opts.Project = changed("project")
	return opts
}

// EditCommand handles the edit command
type EditCommand struct {
	api api.API
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{api: app.api, app: app}
}

// Execute applies the given changes to the task named by args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string, opts EditOptions) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sd edit <id> [--title T] [--notes N] [--when W] [--project P]")
	}
	if opts.empty() {
		return NewErrorHandler().Handle("edit task",
			errors.NewInvalidInputError("flags", nil, "nothing to change; pass --title, --notes, --when or --project"))
	}

	edit := api.TaskEdit{
		Title:   opts.Title,
		Notes:   opts.Notes,
		Project: opts.Project,
	}
	if opts.When != nil {
		when, err := parseWhenFlag(*opts.When)
		if err != nil {
			return NewErrorHandler().Handle("edit task", err)
		}
		edit.When = &when
	}

	task, err := c.api.EditTask(ctx, args[0], edit)
	if err != nil {
		return NewErrorHandler().Handle("edit task", err)
	}

	fmt.Fprintf(c.app.out, "Updated task %s in %s: %s\n", task.ID, placement(*task), task.Title)
	return nil
}
