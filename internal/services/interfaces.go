package services

import (
	"context"

	"someday/internal/domain"
	"someday/internal/persistence"
)

// EntityStore owns the task and project collections. Mutations persist both
// collections before they become visible; unknown ids and names are no-ops.
type EntityStore interface {
	// Task operations
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, in domain.TaskInput) error
	CompleteTask(ctx context.Context, id string) error

	// Project operations
	CreateProject(ctx context.Context, name string) error
	RenameProject(ctx context.Context, oldName, newName string) error
	DeleteProject(ctx context.Context, name string) error

	// Read accessors return copies
	Tasks() []domain.Task
	Projects() []domain.Project
	Task(id string) (domain.Task, bool)
	HasProject(name string) bool
}

// Persister loads and saves the full collections.
type Persister interface {
	Load(ctx context.Context) (persistence.Collections, error)
	Save(ctx context.Context, c persistence.Collections) error
}

// IDGenerator returns a fresh task id.
type IDGenerator func() string
