package controller

import (
	"context"

	"someday/internal/domain"
)

// TaskForm holds the in-progress field values of the task modal.
type TaskForm struct {
	Title   string
	Notes   string
	When    domain.When
	Project string
}

// Input converts the form to store input.
func (f TaskForm) Input() domain.TaskInput {
	return domain.TaskInput{
		Title:   f.Title,
		Notes:   f.Notes,
		When:    f.When,
		Project: f.Project,
	}
}

// TaskEditor is the view state of the task modal.
type TaskEditor struct {
	State     ModalState
	EditingID string
	Form      TaskForm
	Err       error
}

// ProjectVisible reports whether the project field is shown.
func (e TaskEditor) ProjectVisible() bool {
	return e.State != ModalClosed && e.Form.When == domain.WhenSomeday
}

// OpenTaskCreate opens an empty task modal with the bucket preset.
func (c *Controller) OpenTaskCreate(preset domain.When) {
	c.project = ProjectEditor{}
	from := c.task.State
	c.task = TaskEditor{
		State: ModalCreating,
		Form:  TaskForm{When: preset.OrDefault()},
	}
	logTransition("task", from, c.task.State)
}

// OpenTaskEdit opens the modal prefilled from an existing task. It returns
// false and leaves the modal closed for an unknown id.
func (c *Controller) OpenTaskEdit(id string) bool {
	t, ok := c.store.Task(id)
	if !ok {
		return false
	}
	c.project = ProjectEditor{}
	from := c.task.State
	in := t.Input()
	c.task = TaskEditor{
		State:     ModalEditing,
		EditingID: id,
		Form: TaskForm{
			Title:   in.Title,
			Notes:   in.Notes,
			When:    in.When,
			Project: in.Project,
		},
	}
	logTransition("task", from, c.task.State)
	return true
}

// SelectWhen changes the bucket control. Leaving someday clears the project.
func (c *Controller) SelectWhen(w domain.When) {
	if c.task.State == ModalClosed {
		return
	}
	c.task.Form.When = w.OrDefault()
	if c.task.Form.When != domain.WhenSomeday {
		c.task.Form.Project = ""
	}
}

// SetTaskTitle edits the title field.
func (c *Controller) SetTaskTitle(s string) {
	if c.task.State != ModalClosed {
		c.task.Form.Title = s
	}
}

// SetTaskNotes edits the notes field.
func (c *Controller) SetTaskNotes(s string) {
	if c.task.State != ModalClosed {
		c.task.Form.Notes = s
	}
}

// SetTaskProject edits the project field. It is ignored while the field is
// hidden.
func (c *Controller) SetTaskProject(name string) {
	if c.task.ProjectVisible() {
		c.task.Form.Project = name
	}
}

// SubmitTask commits the form. On error the modal stays open with Err set.
func (c *Controller) SubmitTask(ctx context.Context) error {
	var err error
	switch c.task.State {
	case ModalCreating:
		_, err = c.store.CreateTask(ctx, c.task.Form.Input())
	case ModalEditing:
		err = c.store.UpdateTask(ctx, c.task.EditingID, c.task.Form.Input())
	default:
		return nil
	}
	if err != nil {
		c.task.Err = err
		return err
	}

	logTransition("task", c.task.State, ModalClosed)
	c.task = TaskEditor{}
	c.Refresh()
	return nil
}

// CancelTask discards the form and closes the modal.
func (c *Controller) CancelTask() {
	logTransition("task", c.task.State, ModalClosed)
	c.task = TaskEditor{}
}
