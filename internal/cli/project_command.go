package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"someday/internal/api"
	"someday/internal/controller"
)

// ProjectCommand handles the project subcommands
type ProjectCommand struct {
	api api.API
	app *App
}

// NewProjectCommand creates a new project command handler
func NewProjectCommand(app *App) *ProjectCommand {
	return &ProjectCommand{api: app.api, app: app}
}

// Add creates a project
func (c *ProjectCommand) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := c.api.AddProject(ctx, name); err != nil {
		return NewErrorHandler().Handle("add project", err)
	}
	fmt.Fprintf(c.app.out, "Added project %s\n", name)
	return nil
}

// Rename renames a project; its tasks follow
func (c *ProjectCommand) Rename(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if err := c.api.RenameProject(ctx, oldName, newName); err != nil {
		return NewErrorHandler().Handle("rename project", err)
	}
	fmt.Fprintf(c.app.out, "Renamed project %s to %s\n", oldName, newName)
	return nil
}

// Delete removes a project after confirmation unless yes is set. Its
// tasks stay and become uncategorized.
func (c *ProjectCommand) Delete(ctx context.Context, name string, yes bool) error {
	if !yes && !c.confirm(controller.DeleteProjectWarning) {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}

	affected, err := c.api.DeleteProject(ctx, name)
	if err != nil {
		return NewErrorHandler().Handle("delete project", err)
	}

	fmt.Fprintf(c.app.out, "Deleted project %s (%d %s uncategorized)\n", name, affected, pluralTasks(affected))
	return nil
}

// List prints every project with its number of open tasks
func (c *ProjectCommand) List(ctx context.Context) error {
	projects, err := c.api.ListProjects(ctx)
	if err != nil {
		return NewErrorHandler().Handle("list projects", err)
	}
	if len(projects) == 0 {
		fmt.Fprintln(c.app.out, "No projects found")
		return nil
	}

	width := 0
	for _, p := range projects {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	for _, p := range projects {
		fmt.Fprintf(c.app.out, "%-*s  %d open\n", width, p.Name, p.OpenTasks)
	}
	return nil
}

// confirm asks a yes/no question on the app's input
func (c *ProjectCommand) confirm(question string) bool {
	fmt.Fprintf(c.app.out, "%s [y/N]: ", question)

	reader := bufio.NewReader(c.app.in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(c.app.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func pluralTasks(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}
