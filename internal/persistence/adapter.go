// Package persistence loads and saves the task and project collections
// through a key-value repository.
package persistence

import (
	"context"
	"encoding/json"

	"someday/internal/domain"
	"someday/internal/errors"
	"someday/internal/repository"
)

// Entry names in the key-value store.
const (
	TasksKey    = "tasks"
	ProjectsKey = "projects"
)

// Collections is the full persisted state.
type Collections struct {
	Tasks    []domain.Task
	Projects []domain.Project
}

// Clone returns a deep copy, including the project references of tasks.
func (c Collections) Clone() Collections {
	out := Collections{
		Tasks:    make([]domain.Task, len(c.Tasks)),
		Projects: make([]domain.Project, len(c.Projects)),
	}
	copy(out.Projects, c.Projects)
	for i, t := range c.Tasks {
		if t.Project != nil {
			name := *t.Project
			t.Project = &name
		}
		out.Tasks[i] = t
	}
	return out
}

// Adapter serializes Collections to JSON entries.
type Adapter struct {
	repo   repository.Repository
	mapper *TaskMapper
}

// NewAdapter creates an adapter over repo.
func NewAdapter(repo repository.Repository) *Adapter {
	return &Adapter{
		repo:   repo,
		mapper: NewTaskMapper(),
	}
}

// Load reads both collections. A missing entry is an empty collection.
func (a *Adapter) Load(ctx context.Context) (Collections, error) {
	var records []TaskRecord
	if err := a.loadEntry(ctx, TasksKey, &records); err != nil {
		return Collections{}, err
	}

	var names []string
	if err := a.loadEntry(ctx, ProjectsKey, &names); err != nil {
		return Collections{}, err
	}

	projects := make([]domain.Project, 0, len(names))
	for _, name := range names {
		projects = append(projects, domain.Project{Name: name})
	}

	return Collections{
		Tasks:    a.mapper.FromRecords(records),
		Projects: projects,
	}, nil
}

func (a *Adapter) loadEntry(ctx context.Context, key string, dest interface{}) error {
	raw, ok, err := a.repo.Get(ctx, key)
	if err != nil {
		return persistenceError("load "+key, err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.NewPersistenceError("decode "+key, err)
	}
	return nil
}

// Save overwrites both collections in one repository write.
func (a *Adapter) Save(ctx context.Context, c Collections) error {
	records := a.mapper.ToRecords(c.Tasks)
	tasksJSON, err := json.Marshal(records)
	if err != nil {
		return errors.NewPersistenceError("encode tasks", err)
	}

	projectsJSON, err := json.Marshal(domain.ProjectNames(c.Projects))
	if err != nil {
		return errors.NewPersistenceError("encode projects", err)
	}

	if err := a.repo.SetAll(ctx, map[string][]byte{
		TasksKey:    tasksJSON,
		ProjectsKey: projectsJSON,
	}); err != nil {
		return persistenceError("save collections", err)
	}
	return nil
}

// persistenceError keeps errors the repository already classified.
func persistenceError(op string, err error) error {
	if errors.IsErrorType(err, errors.ErrorTypePersistence) {
		return err
	}
	return errors.NewPersistenceError(op, err)
}
