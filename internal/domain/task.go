package domain

import "strings"

// Task represents a task in the domain model.
// This is a pure domain model without storage concerns.
type Task struct {
	ID      string
	Title   string
	Notes   string
	When    When
	Project *string // nil unless When is someday
	Done    bool
}

// TaskInput carries the user-editable fields of a task for create and update.
type TaskInput struct {
	Title   string
	Notes   string
	When    When
	Project string
}

// NewTask creates an open task from input, applying the project rule.
func NewTask(id string, in TaskInput) Task {
	t := Task{ID: id}
	return t.Apply(in)
}

// Apply returns a copy of t with the editable fields replaced by in.
// The title is trimmed and the project reference is dropped unless the
// task lands in someday.
func (t Task) Apply(in TaskInput) Task {
	t.Title = strings.TrimSpace(in.Title)
	t.Notes = in.Notes
	t.When = in.When.OrDefault()
	t.Project = nil
	if t.When == WhenSomeday {
		t.Project = ProjectRef(in.Project)
	}
	return t
}

// ProjectName returns the referenced project name, or "" when unassigned.
func (t Task) ProjectName() string {
	if t.Project == nil {
		return ""
	}
	return *t.Project
}

// InProject reports whether the task references the named project.
// References compare by value.
func (t Task) InProject(name string) bool {
	return t.Project != nil && *t.Project == name
}

// Input returns the editable fields of t.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:   t.Title,
		Notes:   t.Notes,
		When:    t.When,
		Project: t.ProjectName(),
	}
}

// String returns the task title for display purposes.
func (t Task) String() string {
	if t.Title == "" {
		return "(untitled)"
	}
	return t.Title
}

// ProjectRef turns a form value into a project reference; blank means none.
func ProjectRef(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}
