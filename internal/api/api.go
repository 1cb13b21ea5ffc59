// Package api is the request-level surface used by the scripted commands.
// Unlike the entity store it reports unknown ids and names as not found.
package api

import (
	"context"

	"someday/internal/domain"
	"someday/internal/errors"
	"someday/internal/persistence"
	"someday/internal/services"
	"someday/internal/viewmodel"
)

// TaskEdit carries the fields to change on an existing task. Nil fields are
// left as they are.
type TaskEdit struct {
	Title   *string
	Notes   *string
	When    *domain.When
	Project *string
}

// ProjectSummary describes a project and its open tasks.
type ProjectSummary struct {
	Name      string `json:"name" yaml:"name"`
	OpenTasks int    `json:"open_tasks" yaml:"open_tasks"`
}

// Snapshot is the raw content of both collections, done tasks included.
type Snapshot struct {
	Tasks    []persistence.TaskRecord `json:"tasks" yaml:"tasks"`
	Projects []string                 `json:"projects" yaml:"projects"`
}

// API defines the operations available to scripted commands.
type API interface {
	// Task operations
	AddTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	EditTask(ctx context.Context, id string, edit TaskEdit) (*domain.Task, error)
	CompleteTask(ctx context.Context, id string) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// Project operations
	AddProject(ctx context.Context, name string) error
	RenameProject(ctx context.Context, oldName, newName string) error
	DeleteProject(ctx context.Context, name string) (int, error)
	ListProjects(ctx context.Context) ([]ProjectSummary, error)

	// Views
	Board(ctx context.Context) (viewmodel.Board, error)
	Export(ctx context.Context) (*Snapshot, error)
}

type apiImpl struct {
	store  services.EntityStore
	mapper *persistence.TaskMapper
}

// New creates a new API instance.
func New(store services.EntityStore) API {
	return &apiImpl{
		store:  store,
		mapper: persistence.NewTaskMapper(),
	}
}

// checkProject enforces that a project is only named for someday tasks and
// that it exists.
func (a *apiImpl) checkProject(when domain.When, project string) error {
	if project == "" {
		return nil
	}
	if when.OrDefault() != domain.WhenSomeday {
		return errors.NewInvalidInputError("project", project, "only someday tasks can belong to a project")
	}
	if !a.store.HasProject(project) {
		return errors.NewNotFoundError("project", project)
	}
	return nil
}

func (a *apiImpl) AddTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if err := a.checkProject(in.When, in.Project); err != nil {
		return nil, err
	}
	return a.store.CreateTask(ctx, in)
}

func (a *apiImpl) EditTask(ctx context.Context, id string, edit TaskEdit) (*domain.Task, error) {
	current, ok := a.store.Task(id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}

	in := current.Input()
	if edit.Title != nil {
		in.Title = *edit.Title
	}
	if edit.Notes != nil {
		in.Notes = *edit.Notes
	}
	if edit.When != nil {
		in.When = *edit.When
		if in.When != domain.WhenSomeday {
			in.Project = ""
		}
	}
	if edit.Project != nil {
		in.Project = *edit.Project
	}

	if err := a.checkProject(in.When, in.Project); err != nil {
		return nil, err
	}
	if err := a.store.UpdateTask(ctx, id, in); err != nil {
		return nil, err
	}
	return a.GetTask(ctx, id)
}

func (a *apiImpl) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	current, ok := a.store.Task(id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	if current.Done {
		return nil, errors.NewValidationError("task already completed", nil)
	}
	if err := a.store.CompleteTask(ctx, id); err != nil {
		return nil, err
	}
	return a.GetTask(ctx, id)
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	t, ok := a.store.Task(id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &t, nil
}

func (a *apiImpl) AddProject(ctx context.Context, name string) error {
	return a.store.CreateProject(ctx, name)
}

func (a *apiImpl) RenameProject(ctx context.Context, oldName, newName string) error {
	if !a.store.HasProject(oldName) {
		return errors.NewNotFoundError("project", oldName)
	}
	return a.store.RenameProject(ctx, oldName, newName)
}

// DeleteProject removes the project and returns how many tasks, open or
// done, lost their project.
func (a *apiImpl) DeleteProject(ctx context.Context, name string) (int, error) {
	if !a.store.HasProject(name) {
		return 0, errors.NewNotFoundError("project", name)
	}
	affected := 0
	for _, t := range a.store.Tasks() {
		if t.InProject(name) {
			affected++
		}
	}
	if err := a.store.DeleteProject(ctx, name); err != nil {
		return 0, err
	}
	return affected, nil
}

func (a *apiImpl) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	board, err := a.Board(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]ProjectSummary, len(board.Projects))
	for i, g := range board.Projects {
		summaries[i] = ProjectSummary{Name: g.Name, OpenTasks: len(g.Tasks)}
	}
	return summaries, nil
}

func (a *apiImpl) Board(ctx context.Context) (viewmodel.Board, error) {
	if err := ctx.Err(); err != nil {
		return viewmodel.Board{}, err
	}
	return viewmodel.Build(a.store.Tasks(), a.store.Projects()), nil
}

func (a *apiImpl) Export(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Snapshot{
		Tasks:    a.mapper.ToRecords(a.store.Tasks()),
		Projects: domain.ProjectNames(a.store.Projects()),
	}, nil
}
