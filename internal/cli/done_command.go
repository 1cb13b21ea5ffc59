package cli

import (
	"context"
	"fmt"

	"someday/internal/api"
)

// DoneCommand handles the done command
type DoneCommand struct {
	api api.API
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{api: app.api, app: app}
}

// Execute marks the task named by args[0] as done
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sd done <id>")
	}

	task, err := c.api.CompleteTask(ctx, args[0])
	if err != nil {
		return NewErrorHandler().Handle("complete task", err)
	}

	fmt.Fprintf(c.app.out, "Completed task %s: %s\n", task.ID, task.Title)
	return nil
}
