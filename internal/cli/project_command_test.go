package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"someday/internal/domain"
)

func TestProjectCommand_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a project", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)

		require.NoError(t, NewProjectCommand(app).Add(ctx, "  Garden "))
		assert.Equal(t, []string{"Garden"}, domain.ProjectNames(mock.projects))
		assert.Equal(t, "Added project Garden\n", out.String())
	})

	t.Run("duplicate name", func(t *testing.T) {
		app, mock, _ := setupTestAppWithMockAPI(t)
		require.NoError(t, mock.AddProject(ctx, "Garden"))

		err := NewProjectCommand(app).Add(ctx, "Garden")
		require.Error(t, err)
		assert.Equal(t, "failed to add project: project already exists: Garden", err.Error())
		assert.Len(t, mock.projects, 1)
	})

	t.Run("empty name", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockAPI(t)

		err := NewProjectCommand(app).Add(ctx, "   ")
		require.Error(t, err)
		assert.Equal(t, "failed to add project: Please enter a project name", err.Error())
	})
}

func TestProjectCommand_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("tasks follow the project", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		require.NoError(t, mock.AddProject(ctx, "Garden"))
		_, err := mock.AddTask(ctx, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})
		require.NoError(t, err)

		require.NoError(t, NewProjectCommand(app).Rename(ctx, "Garden", "Yard"))

		assert.Equal(t, []string{"Yard"}, domain.ProjectNames(mock.projects))
		assert.Equal(t, "Yard", mock.tasks[0].ProjectName())
		assert.Equal(t, "Renamed project Garden to Yard\n", out.String())
	})

	t.Run("unknown project", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockAPI(t)

		err := NewProjectCommand(app).Rename(ctx, "Garden", "Yard")
		require.Error(t, err)
		assert.Equal(t, "failed to rename project: project not found: Garden", err.Error())
	})
}

func TestProjectCommand_Delete(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, mock *mockAPI) {
		require.NoError(t, mock.AddProject(ctx, "Yard"))
		_, err := mock.AddTask(ctx, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Yard"})
		require.NoError(t, err)
	}

	t.Run("with --yes", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		seed(t, mock)

		require.NoError(t, NewProjectCommand(app).Delete(ctx, "Yard", true))

		assert.Empty(t, mock.projects)
		require.Len(t, mock.tasks, 1)
		assert.Nil(t, mock.tasks[0].Project)
		assert.Equal(t, "Deleted project Yard (1 task uncategorized)\n", out.String())

		board, _ := mock.Board(ctx)
		require.Len(t, board.Unplanned, 1)
		assert.Equal(t, "Plant bulbs", board.Unplanned[0].Title)
	})

	t.Run("confirmed interactively", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		seed(t, mock)
		app.SetInput(strings.NewReader("y\n"))

		require.NoError(t, NewProjectCommand(app).Delete(ctx, "Yard", false))

		assert.Contains(t, out.String(), "Delete project? All tasks in this project will become uncategorized. [y/N]: ")
		assert.Empty(t, mock.projects)
	})

	t.Run("declined", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		seed(t, mock)
		app.SetInput(strings.NewReader("n\n"))

		require.NoError(t, NewProjectCommand(app).Delete(ctx, "Yard", false))

		assert.Contains(t, out.String(), "Delete cancelled.")
		assert.Len(t, mock.projects, 1)
		assert.Equal(t, "Yard", mock.tasks[0].ProjectName())
	})

	t.Run("no input counts as no", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		seed(t, mock)

		require.NoError(t, NewProjectCommand(app).Delete(ctx, "Yard", false))

		assert.Contains(t, out.String(), "Delete cancelled.")
		assert.Len(t, mock.projects, 1)
	})

	t.Run("unknown project", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockAPI(t)

		err := NewProjectCommand(app).Delete(ctx, "Yard", true)
		require.Error(t, err)
		assert.Equal(t, "failed to delete project: project not found: Yard", err.Error())
	})
}

func TestProjectCommand_List(t *testing.T) {
	ctx := context.Background()

	t.Run("counts open tasks", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		require.NoError(t, mock.AddProject(ctx, "Garden"))
		require.NoError(t, mock.AddProject(ctx, "Taxes"))
		_, err := mock.AddTask(ctx, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})
		require.NoError(t, err)
		_, err = mock.AddTask(ctx, domain.TaskInput{Title: "Mow", When: domain.WhenSomeday, Project: "Garden"})
		require.NoError(t, err)
		_, err = mock.CompleteTask(ctx, "task-2")
		require.NoError(t, err)

		require.NoError(t, NewProjectCommand(app).List(ctx))
		assert.Equal(t, "Garden  1 open\nTaxes   0 open\n", out.String())
	})

	t.Run("no projects", func(t *testing.T) {
		app, _, out := setupTestAppWithMockAPI(t)

		require.NoError(t, NewProjectCommand(app).List(ctx))
		assert.Equal(t, "No projects found\n", out.String())
	})
}
