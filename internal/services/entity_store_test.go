package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"someday/internal/domain"
	"someday/internal/errors"
	"someday/internal/persistence"
	"someday/internal/repository/memory"
	"someday/internal/repository/sqlite"
)

// failingPersister wraps an adapter and fails saves on demand
type failingPersister struct {
	*persistence.Adapter
	failSave bool
	saves    int
}

func (p *failingPersister) Save(ctx context.Context, c persistence.Collections) error {
	p.saves++
	if p.failSave {
		return fmt.Errorf("quota exceeded")
	}
	return p.Adapter.Save(ctx, c)
}

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func setupEntityStore(t *testing.T) (EntityStore, *failingPersister) {
	persister := &failingPersister{Adapter: persistence.NewAdapter(memory.New())}
	store, err := NewEntityStore(context.Background(), persister, WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return store, persister
}

func mustCreateProject(t *testing.T, store EntityStore, name string) {
	require.NoError(t, store.CreateProject(context.Background(), name))
}

func mustCreateTask(t *testing.T, store EntityStore, in domain.TaskInput) domain.Task {
	task, err := store.CreateTask(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, task)
	return *task
}

func TestEntityStore_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		input          domain.TaskInput
		projects       []string
		expected       domain.Task
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:     "should create today task",
			input:    domain.TaskInput{Title: "Reply to email", When: domain.WhenToday},
			expected: domain.Task{ID: "task-1", Title: "Reply to email", When: domain.WhenToday},
		},
		{
			name:     "should trim title and default bucket to today",
			input:    domain.TaskInput{Title: "  Buy milk  ", Notes: "2 litres"},
			expected: domain.Task{ID: "task-1", Title: "Buy milk", Notes: "2 litres", When: domain.WhenToday},
		},
		{
			name:     "should keep project for someday task",
			input:    domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"},
			projects: []string{"Garden"},
			expected: domain.Task{ID: "task-1", Title: "Plant bulbs", When: domain.WhenSomeday, Project: domain.ProjectRef("Garden")},
		},
		{
			name:     "should drop project outside someday",
			input:    domain.TaskInput{Title: "Plant bulbs", When: domain.WhenNextWeek, Project: "Garden"},
			projects: []string{"Garden"},
			expected: domain.Task{ID: "task-1", Title: "Plant bulbs", When: domain.WhenNextWeek},
		},
		{
			name:     "should drop reference to unknown project",
			input:    domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Nowhere"},
			expected: domain.Task{ID: "task-1", Title: "Plant bulbs", When: domain.WhenSomeday},
		},
		{
			name:  "should reject whitespace title",
			input: domain.TaskInput{Title: "   ", When: domain.WhenToday},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Equal(t, "Please enter a task title", errors.GetUserMessage(err))
			},
		},
		{
			name:  "should reject unknown bucket",
			input: domain.TaskInput{Title: "x", When: domain.When("later")},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store, persister := setupEntityStore(t)
			for _, p := range tt.projects {
				mustCreateProject(t, store, p)
			}
			savesBefore := persister.saves

			// Act
			result, err := store.CreateTask(context.Background(), tt.input)

			// Assert
			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				assert.Empty(t, store.Tasks())
				assert.Equal(t, savesBefore, persister.saves)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *result)
			assert.Equal(t, []domain.Task{tt.expected}, store.Tasks())
			assert.Equal(t, savesBefore+1, persister.saves)
		})
	}
}

func TestEntityStore_CreateTaskUsesUUIDByDefault(t *testing.T) {
	store, err := NewEntityStore(context.Background(), persistence.NewAdapter(memory.New()))
	require.NoError(t, err)

	a := mustCreateTask(t, store, domain.TaskInput{Title: "a"})
	b := mustCreateTask(t, store, domain.TaskInput{Title: "b"})

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestEntityStore_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("should replace fields", func(t *testing.T) {
		store, _ := setupEntityStore(t)
		task := mustCreateTask(t, store, domain.TaskInput{Title: "Draft", When: domain.WhenToday})

		err := store.UpdateTask(ctx, task.ID, domain.TaskInput{Title: "Final", Notes: "n", When: domain.WhenNextDay})

		require.NoError(t, err)
		got, ok := store.Task(task.ID)
		require.True(t, ok)
		assert.Equal(t, domain.Task{ID: task.ID, Title: "Final", Notes: "n", When: domain.WhenNextDay}, got)
	})

	t.Run("should clear project when moving out of someday", func(t *testing.T) {
		store, _ := setupEntityStore(t)
		mustCreateProject(t, store, "Garden")
		task := mustCreateTask(t, store, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})

		err := store.UpdateTask(ctx, task.ID, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenToday, Project: "Garden"})

		require.NoError(t, err)
		got, _ := store.Task(task.ID)
		assert.Nil(t, got.Project)
	})

	t.Run("should ignore unknown id", func(t *testing.T) {
		store, persister := setupEntityStore(t)
		mustCreateTask(t, store, domain.TaskInput{Title: "a"})
		before := persister.saves

		err := store.UpdateTask(ctx, "missing", domain.TaskInput{Title: "b"})

		require.NoError(t, err)
		assert.Equal(t, before, persister.saves)
		assert.Equal(t, "a", store.Tasks()[0].Title)
	})

	t.Run("should reject empty title without mutating", func(t *testing.T) {
		store, _ := setupEntityStore(t)
		task := mustCreateTask(t, store, domain.TaskInput{Title: "a"})

		err := store.UpdateTask(ctx, task.ID, domain.TaskInput{Title: " "})

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
		got, _ := store.Task(task.ID)
		assert.Equal(t, "a", got.Title)
	})
}

func TestEntityStore_CompleteTask(t *testing.T) {
	ctx := context.Background()
	store, persister := setupEntityStore(t)
	task := mustCreateTask(t, store, domain.TaskInput{Title: "Reply to email", When: domain.WhenToday})

	require.NoError(t, store.CompleteTask(ctx, task.ID))

	got, ok := store.Task(task.ID)
	require.True(t, ok)
	assert.True(t, got.Done)
	assert.Len(t, store.Tasks(), 1)

	before := persister.saves
	require.NoError(t, store.CompleteTask(ctx, "missing"))
	assert.Equal(t, before, persister.saves)
}

func TestEntityStore_CreateProject(t *testing.T) {
	ctx := context.Background()
	store, _ := setupEntityStore(t)

	require.NoError(t, store.CreateProject(ctx, " Garden "))
	assert.True(t, store.HasProject("Garden"))

	err := store.CreateProject(ctx, "Garden")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	err = store.CreateProject(ctx, "  ")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	assert.Equal(t, "Please enter a project name", errors.GetUserMessage(err))

	assert.Equal(t, []domain.Project{{Name: "Garden"}}, store.Projects())
}

func TestEntityStore_RenameProject(t *testing.T) {
	ctx := context.Background()

	t.Run("should cascade to tasks and keep order", func(t *testing.T) {
		store, _ := setupEntityStore(t)
		mustCreateProject(t, store, "Garden")
		mustCreateProject(t, store, "House")
		a := mustCreateTask(t, store, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})
		b := mustCreateTask(t, store, domain.TaskInput{Title: "Paint", When: domain.WhenSomeday, Project: "House"})

		require.NoError(t, store.RenameProject(ctx, "Garden", "Yard"))

		assert.Equal(t, []domain.Project{{Name: "Yard"}, {Name: "House"}}, store.Projects())
		gotA, _ := store.Task(a.ID)
		gotB, _ := store.Task(b.ID)
		assert.Equal(t, "Yard", gotA.ProjectName())
		assert.Equal(t, "House", gotB.ProjectName())
		for _, task := range store.Tasks() {
			assert.False(t, task.InProject("Garden"))
		}
	})

	t.Run("should reject name held by another project", func(t *testing.T) {
		store, _ := setupEntityStore(t)
		mustCreateProject(t, store, "Garden")
		mustCreateProject(t, store, "House")

		err := store.RenameProject(ctx, "Garden", "House")

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
		assert.True(t, store.HasProject("Garden"))
	})

	t.Run("should treat unknown and same names as no-ops", func(t *testing.T) {
		store, persister := setupEntityStore(t)
		mustCreateProject(t, store, "Garden")
		before := persister.saves

		require.NoError(t, store.RenameProject(ctx, "Nowhere", "Yard"))
		require.NoError(t, store.RenameProject(ctx, "Garden", "Garden"))

		assert.Equal(t, before, persister.saves)
		assert.Equal(t, []domain.Project{{Name: "Garden"}}, store.Projects())
	})

	t.Run("should reject empty new name", func(t *testing.T) {
		store, _ := setupEntityStore(t)
		mustCreateProject(t, store, "Garden")

		err := store.RenameProject(ctx, "Garden", "")

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
		assert.True(t, store.HasProject("Garden"))
	})
}

func TestEntityStore_DeleteProject(t *testing.T) {
	ctx := context.Background()
	store, persister := setupEntityStore(t)
	mustCreateProject(t, store, "Yard")
	mustCreateProject(t, store, "House")
	task := mustCreateTask(t, store, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Yard"})

	require.NoError(t, store.DeleteProject(ctx, "Yard"))

	assert.False(t, store.HasProject("Yard"))
	assert.Equal(t, []domain.Project{{Name: "House"}}, store.Projects())
	got, ok := store.Task(task.ID)
	require.True(t, ok)
	assert.Nil(t, got.Project)
	assert.Equal(t, domain.WhenSomeday, got.When)

	before := persister.saves
	require.NoError(t, store.DeleteProject(ctx, "Yard"))
	assert.Equal(t, before, persister.saves)
}

func TestEntityStore_PersistenceFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store, persister := setupEntityStore(t)
	mustCreateProject(t, store, "Garden")
	task := mustCreateTask(t, store, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})
	persister.failSave = true

	mutations := map[string]func() error{
		"create task": func() error {
			_, err := store.CreateTask(ctx, domain.TaskInput{Title: "New"})
			return err
		},
		"update task": func() error {
			return store.UpdateTask(ctx, task.ID, domain.TaskInput{Title: "Changed"})
		},
		"complete task":  func() error { return store.CompleteTask(ctx, task.ID) },
		"create project": func() error { return store.CreateProject(ctx, "House") },
		"rename project": func() error { return store.RenameProject(ctx, "Garden", "Yard") },
		"delete project": func() error { return store.DeleteProject(ctx, "Garden") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			err := mutate()

			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypePersistence))
			assert.Equal(t, "Changes were not saved. Please try again.", errors.GetUserMessage(err))
			assert.Equal(t, []domain.Project{{Name: "Garden"}}, store.Projects())
			assert.Equal(t, []domain.Task{task}, store.Tasks())
		})
	}
}

func TestEntityStore_ReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	store, err := NewEntityStore(ctx, persistence.NewAdapter(repo), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	mustCreateProject(t, store, "Garden")
	mustCreateTask(t, store, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})
	done := mustCreateTask(t, store, domain.TaskInput{Title: "Reply to email", When: domain.WhenToday})
	require.NoError(t, store.CompleteTask(ctx, done.ID))

	reloaded, err := NewEntityStore(ctx, persistence.NewAdapter(repo))
	require.NoError(t, err)

	assert.Equal(t, store.Tasks(), reloaded.Tasks())
	assert.Equal(t, store.Projects(), reloaded.Projects())
}

func TestEntityStore_LoadCleansStoredCollections(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	require.NoError(t, repo.Set(ctx, persistence.ProjectsKey, []byte(`["Garden","Garden",""]`)))
	require.NoError(t, repo.Set(ctx, persistence.TasksKey, []byte(`[
		{"id":"a","title":"Plant bulbs","notes":"","when":"someday","project":"Garden","done":false},
		{"id":"b","title":"Haunt attic","notes":"","when":"someday","project":"Ghost","done":false}
	]`)))

	store, err := NewEntityStore(ctx, persistence.NewAdapter(repo))
	require.NoError(t, err)

	assert.Equal(t, []domain.Project{{Name: "Garden"}}, store.Projects())
	a, _ := store.Task("a")
	assert.Equal(t, "Garden", a.ProjectName())
	b, _ := store.Task("b")
	assert.Nil(t, b.Project)

	t.Run("rename reaches every reference", func(t *testing.T) {
		require.NoError(t, store.RenameProject(ctx, "Garden", "Yard"))
		assert.Equal(t, []domain.Project{{Name: "Yard"}}, store.Projects())
	})

	t.Run("new project does not capture the stale reference", func(t *testing.T) {
		require.NoError(t, store.CreateProject(ctx, "Ghost"))
		for _, task := range store.Tasks() {
			assert.False(t, task.InProject("Ghost"), "task %s", task.ID)
		}
	})
}

func TestEntityStore_AccessorsReturnCopies(t *testing.T) {
	store, _ := setupEntityStore(t)
	mustCreateProject(t, store, "Garden")
	mustCreateTask(t, store, domain.TaskInput{Title: "Plant bulbs", When: domain.WhenSomeday, Project: "Garden"})

	tasks := store.Tasks()
	tasks[0].Title = "mutated"
	*tasks[0].Project = "mutated"
	projects := store.Projects()
	projects[0].Name = "mutated"

	assert.Equal(t, "Plant bulbs", store.Tasks()[0].Title)
	assert.Equal(t, "Garden", store.Tasks()[0].ProjectName())
	assert.True(t, store.HasProject("Garden"))
}
