package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"someday/internal/api"
	"someday/internal/domain"
	"someday/internal/errors"
	"someday/internal/persistence"
	"someday/internal/viewmodel"
)

// mockAPI implements the API interface for testing
type mockAPI struct {
	tasks    []domain.Task
	projects []domain.Project
	nextID   int

	// failWith is returned by every mutating call when set
	failWith error
}

func newMockAPI() *mockAPI {
	return &mockAPI{nextID: 1}
}

func (m *mockAPI) index(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *mockAPI) hasProject(name string) bool {
	for _, p := range m.projects {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (m *mockAPI) AddTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.NewValidationError("Please enter a task title", nil)
	}
	if in.Project != "" && !m.hasProject(in.Project) {
		return nil, errors.NewNotFoundError("project", in.Project)
	}
	t := domain.NewTask(fmt.Sprintf("task-%d", m.nextID), in)
	m.nextID++
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *mockAPI) EditTask(ctx context.Context, id string, edit api.TaskEdit) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	i := m.index(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	in := m.tasks[i].Input()
	if edit.Title != nil {
		in.Title = *edit.Title
	}
	if edit.Notes != nil {
		in.Notes = *edit.Notes
	}
	if edit.When != nil {
		in.When = *edit.When
	}
	if edit.Project != nil {
		in.Project = *edit.Project
	}
	m.tasks[i] = m.tasks[i].Apply(in)
	t := m.tasks[i]
	return &t, nil
}

func (m *mockAPI) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	i := m.index(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	m.tasks[i].Done = true
	t := m.tasks[i]
	return &t, nil
}

func (m *mockAPI) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	i := m.index(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	t := m.tasks[i]
	return &t, nil
}

func (m *mockAPI) AddProject(ctx context.Context, name string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if name == "" {
		return errors.NewValidationError("Please enter a project name", nil)
	}
	if m.hasProject(name) {
		return errors.NewConflictError("project", name)
	}
	m.projects = append(m.projects, domain.NewProject(name))
	return nil
}

func (m *mockAPI) RenameProject(ctx context.Context, oldName, newName string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if !m.hasProject(oldName) {
		return errors.NewNotFoundError("project", oldName)
	}
	for i := range m.projects {
		if m.projects[i].Name == oldName {
			m.projects[i].Name = newName
		}
	}
	for i := range m.tasks {
		if m.tasks[i].InProject(oldName) {
			m.tasks[i].Project = domain.ProjectRef(newName)
		}
	}
	return nil
}

func (m *mockAPI) DeleteProject(ctx context.Context, name string) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	if !m.hasProject(name) {
		return 0, errors.NewNotFoundError("project", name)
	}
	kept := m.projects[:0]
	for _, p := range m.projects {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	m.projects = kept

	affected := 0
	for i := range m.tasks {
		if m.tasks[i].InProject(name) {
			m.tasks[i].Project = nil
			affected++
		}
	}
	return affected, nil
}

func (m *mockAPI) ListProjects(ctx context.Context) ([]api.ProjectSummary, error) {
	board, _ := m.Board(ctx)
	summaries := make([]api.ProjectSummary, len(board.Projects))
	for i, g := range board.Projects {
		summaries[i] = api.ProjectSummary{Name: g.Name, OpenTasks: len(g.Tasks)}
	}
	return summaries, nil
}

func (m *mockAPI) Board(ctx context.Context) (viewmodel.Board, error) {
	return viewmodel.Build(m.tasks, m.projects), nil
}

func (m *mockAPI) Export(ctx context.Context) (*api.Snapshot, error) {
	return &api.Snapshot{
		Tasks:    persistence.NewTaskMapper().ToRecords(m.tasks),
		Projects: domain.ProjectNames(m.projects),
	}, nil
}

// setupTestAppWithMockAPI returns an app writing to a buffer and the mock
// behind it
func setupTestAppWithMockAPI(t *testing.T) (*App, *mockAPI, *bytes.Buffer) {
	t.Helper()
	mock := newMockAPI()
	app := NewApp(mock)
	out := &bytes.Buffer{}
	app.SetOutput(out)
	app.SetInput(strings.NewReader(""))
	return app, mock, out
}
