package persistence

import (
	"someday/internal/domain"
	"someday/internal/logging"
)

// TaskRecord is the serialized shape of a task. Field names match the
// entries written by earlier versions of the app.
type TaskRecord struct {
	ID      string  `json:"id" yaml:"id"`
	Title   string  `json:"title" yaml:"title"`
	Notes   string  `json:"notes" yaml:"notes"`
	When    string  `json:"when" yaml:"when"`
	Project *string `json:"project" yaml:"project"`
	Done    bool    `json:"done" yaml:"done"`
}

// TaskMapper handles conversion between domain tasks and records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its record.
func (m *TaskMapper) ToRecord(t domain.Task) TaskRecord {
	var project *string
	if t.Project != nil {
		name := *t.Project
		project = &name
	}
	return TaskRecord{
		ID:      t.ID,
		Title:   t.Title,
		Notes:   t.Notes,
		When:    string(t.When),
		Project: project,
		Done:    t.Done,
	}
}

// FromRecord converts a record to a domain Task. Records that break the
// bucket invariants are repaired: an unknown bucket becomes today and a
// project reference outside someday is dropped.
func (m *TaskMapper) FromRecord(r TaskRecord) domain.Task {
	when, err := domain.ParseWhen(r.When)
	if err != nil {
		logging.Debugf("task %s: %v, using today\n", r.ID, err)
		when = domain.WhenToday
	}

	t := domain.Task{
		ID:    r.ID,
		Title: r.Title,
		Notes: r.Notes,
		When:  when,
		Done:  r.Done,
	}
	if when == domain.WhenSomeday && r.Project != nil {
		t.Project = domain.ProjectRef(*r.Project)
	}
	return t
}

// ToRecords converts a slice of domain Tasks to records.
func (m *TaskMapper) ToRecords(tasks []domain.Task) []TaskRecord {
	records := make([]TaskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = m.ToRecord(t)
	}
	return records
}

// FromRecords converts a slice of records to domain Tasks.
func (m *TaskMapper) FromRecords(records []TaskRecord) []domain.Task {
	tasks := make([]domain.Task, len(records))
	for i, r := range records {
		tasks[i] = m.FromRecord(r)
	}
	return tasks
}
