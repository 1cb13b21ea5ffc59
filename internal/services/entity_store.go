package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"someday/internal/domain"
	"someday/internal/errors"
	"someday/internal/logging"
	"someday/internal/persistence"
	"someday/internal/validation"
)

// DefaultWriteTimeout bounds a single persist when no timeout is configured.
const DefaultWriteTimeout = 5 * time.Second

// entityStoreImpl implements the EntityStore interface
type entityStoreImpl struct {
	mu               sync.RWMutex
	state            persistence.Collections
	persister        Persister
	newID            IDGenerator
	writeTimeout     time.Duration
	taskValidator    *validation.TaskValidator
	projectValidator *validation.ProjectValidator
}

// StoreOption configures an entity store
type StoreOption func(*entityStoreImpl)

// WithIDGenerator replaces the UUID generator used for new tasks
func WithIDGenerator(gen IDGenerator) StoreOption {
	return func(s *entityStoreImpl) {
		s.newID = gen
	}
}

// WithWriteTimeout bounds every persist. Zero or negative keeps the default.
func WithWriteTimeout(d time.Duration) StoreOption {
	return func(s *entityStoreImpl) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// NewEntityStore loads both collections through persister and returns a store
// serving them.
func NewEntityStore(ctx context.Context, persister Persister, opts ...StoreOption) (EntityStore, error) {
	s := &entityStoreImpl{
		persister:        persister,
		newID:            func() string { return uuid.NewString() },
		writeTimeout:     DefaultWriteTimeout,
		taskValidator:    validation.NewTaskValidator(),
		projectValidator: validation.NewProjectValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := persister.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.adopt(state)
	logging.Debugf("store loaded: %d tasks, %d projects\n", len(s.state.Tasks), len(s.state.Projects))
	return s, nil
}

// adopt installs loaded collections. Repeated or blank project names are
// dropped, keeping the first, and task references to projects that are not
// in the collection are cleared.
func (s *entityStoreImpl) adopt(loaded persistence.Collections) {
	projects := make([]domain.Project, 0, len(loaded.Projects))
	for _, p := range loaded.Projects {
		if strings.TrimSpace(p.Name) == "" || indexOfProject(projects, p.Name) >= 0 {
			logging.Debugf("stored project %q dropped\n", p.Name)
			continue
		}
		projects = append(projects, p)
	}
	s.state = persistence.Collections{Tasks: loaded.Tasks, Projects: projects}

	tasks := make([]domain.Task, len(loaded.Tasks))
	for i, t := range loaded.Tasks {
		tasks[i] = s.normalize(t)
	}
	s.state.Tasks = tasks
}

// commit persists next and, on success, makes it the current state.
// Callers hold the write lock.
func (s *entityStoreImpl) commit(ctx context.Context, next persistence.Collections) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.persister.Save(ctx, next); err != nil {
		logging.Debugf("persist failed, state unchanged: %v\n", err)
		if errors.IsAppError(err) {
			return err
		}
		return errors.NewPersistenceError("save collections", err)
	}
	s.state = next
	return nil
}

func (s *entityStoreImpl) validateTaskInput(in domain.TaskInput) error {
	if err := s.taskValidator.ValidateTaskInput(in); err != nil {
		return asValidationError(err)
	}
	return nil
}

func (s *entityStoreImpl) validateProjectName(name string) error {
	if err := s.projectValidator.ValidateName(name); err != nil {
		return asValidationError(err)
	}
	return nil
}

func asValidationError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return errors.NewValidationError("invalid input", err)
}

// normalize drops project references that name no known project.
func (s *entityStoreImpl) normalize(t domain.Task) domain.Task {
	if t.Project != nil && indexOfProject(s.state.Projects, *t.Project) < 0 {
		logging.Debugf("task %s: unknown project %q dropped\n", t.ID, *t.Project)
		t.Project = nil
	}
	return t
}

func indexOfTask(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func indexOfProject(projects []domain.Project, name string) int {
	for i, p := range projects {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// CreateTask validates the input and appends a new open task
func (s *entityStoreImpl) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if err := s.validateTaskInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.normalize(domain.NewTask(s.newID(), in))
	next := s.state.Clone()
	next.Tasks = append(next.Tasks, task)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	logging.Debugf("task created: %s %q in %s\n", task.ID, task.Title, task.When)
	return &task, nil
}

// UpdateTask replaces the editable fields of an existing task
func (s *entityStoreImpl) UpdateTask(ctx context.Context, id string, in domain.TaskInput) error {
	if err := s.validateTaskInput(in); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfTask(s.state.Tasks, id)
	if i < 0 {
		logging.Debugf("update ignored, unknown task %s\n", id)
		return nil
	}

	next := s.state.Clone()
	next.Tasks[i] = s.normalize(next.Tasks[i].Apply(in))

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	logging.Debugf("task updated: %s\n", id)
	return nil
}

// CompleteTask marks a task done
func (s *entityStoreImpl) CompleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfTask(s.state.Tasks, id)
	if i < 0 {
		logging.Debugf("complete ignored, unknown task %s\n", id)
		return nil
	}

	next := s.state.Clone()
	next.Tasks[i].Done = true

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	logging.Debugf("task completed: %s\n", id)
	return nil
}

// CreateProject appends a project with a unique name
func (s *entityStoreImpl) CreateProject(ctx context.Context, name string) error {
	if err := s.validateProjectName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfProject(s.state.Projects, name) >= 0 {
		return errors.NewConflictError("project", name)
	}

	next := s.state.Clone()
	next.Projects = append(next.Projects, domain.NewProject(name))

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	logging.Debugf("project created: %q\n", name)
	return nil
}

// RenameProject renames a project in place and rewrites every task reference
func (s *entityStoreImpl) RenameProject(ctx context.Context, oldName, newName string) error {
	if err := s.validateProjectName(newName); err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfProject(s.state.Projects, oldName)
	if i < 0 {
		logging.Debugf("rename ignored, unknown project %q\n", oldName)
		return nil
	}
	if oldName == newName {
		return nil
	}
	if indexOfProject(s.state.Projects, newName) >= 0 {
		return errors.NewConflictError("project", newName)
	}

	next := s.state.Clone()
	next.Projects[i].Name = newName
	moved := 0
	for j := range next.Tasks {
		if next.Tasks[j].InProject(oldName) {
			next.Tasks[j].Project = domain.ProjectRef(newName)
			moved++
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	logging.Debugf("project renamed: %q -> %q, %d tasks updated\n", oldName, newName, moved)
	return nil
}

// DeleteProject removes a project and clears every task reference to it.
// The tasks themselves are kept.
func (s *entityStoreImpl) DeleteProject(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfProject(s.state.Projects, name)
	if i < 0 {
		logging.Debugf("delete ignored, unknown project %q\n", name)
		return nil
	}

	next := s.state.Clone()
	next.Projects = append(next.Projects[:i], next.Projects[i+1:]...)
	cleared := 0
	for j := range next.Tasks {
		if next.Tasks[j].InProject(name) {
			next.Tasks[j].Project = nil
			cleared++
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	logging.Debugf("project deleted: %q, %d tasks uncategorized\n", name, cleared)
	return nil
}

// Tasks returns a copy of the task collection in insertion order
func (s *entityStoreImpl) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Tasks
}

// Projects returns a copy of the project collection in insertion order
func (s *entityStoreImpl) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Projects
}

// Task returns a copy of the task with the given id
func (s *entityStoreImpl) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOfTask(s.state.Tasks, id)
	if i < 0 {
		return domain.Task{}, false
	}
	t := s.state.Tasks[i]
	if t.Project != nil {
		name := *t.Project
		t.Project = &name
	}
	return t, true
}

// HasProject reports whether a project with the given name exists
func (s *entityStoreImpl) HasProject(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOfProject(s.state.Projects, name) >= 0
}
