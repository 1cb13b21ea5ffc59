package controller

import (
	"context"
	"strings"
)

// DeleteProjectWarning is shown before a project is deleted.
const DeleteProjectWarning = "Delete project? All tasks in this project will become uncategorized."

// ProjectEditor is the view state of the project modal.
type ProjectEditor struct {
	State            ModalState
	OriginalName     string
	Name             string
	ConfirmingDelete bool
	Err              error
}

// CanDelete reports whether the delete action is offered.
func (e ProjectEditor) CanDelete() bool {
	return e.State == ModalEditing
}

// OpenProjectCreate opens an empty project modal.
func (c *Controller) OpenProjectCreate() {
	c.task = TaskEditor{}
	from := c.project.State
	c.project = ProjectEditor{State: ModalCreating}
	logTransition("project", from, c.project.State)
}

// OpenProjectEdit opens the modal prefilled with an existing project. It
// returns false for an unknown name.
func (c *Controller) OpenProjectEdit(name string) bool {
	if !c.store.HasProject(name) {
		return false
	}
	c.task = TaskEditor{}
	from := c.project.State
	c.project = ProjectEditor{
		State:        ModalEditing,
		OriginalName: name,
		Name:         name,
	}
	logTransition("project", from, c.project.State)
	return true
}

// SetProjectName edits the name field.
func (c *Controller) SetProjectName(s string) {
	if c.project.State != ModalClosed {
		c.project.Name = s
	}
}

// SubmitProject creates or renames the project. On error the modal stays
// open with Err set.
func (c *Controller) SubmitProject(ctx context.Context) error {
	var err error
	switch c.project.State {
	case ModalCreating:
		err = c.store.CreateProject(ctx, c.project.Name)
	case ModalEditing:
		err = c.store.RenameProject(ctx, c.project.OriginalName, c.project.Name)
		if err == nil {
			c.renameCollapsed(c.project.OriginalName, strings.TrimSpace(c.project.Name))
		}
	default:
		return nil
	}
	if err != nil {
		c.project.Err = err
		return err
	}

	logTransition("project", c.project.State, ModalClosed)
	c.project = ProjectEditor{}
	c.Refresh()
	return nil
}

// RequestProjectDelete enters the confirmation step. It is only available
// while editing an existing project.
func (c *Controller) RequestProjectDelete() (string, bool) {
	if !c.project.CanDelete() {
		return "", false
	}
	c.project.ConfirmingDelete = true
	return DeleteProjectWarning, true
}

// ConfirmProjectDelete deletes the project being edited and closes the modal.
func (c *Controller) ConfirmProjectDelete(ctx context.Context) error {
	if !c.project.ConfirmingDelete {
		return nil
	}
	name := c.project.OriginalName
	if err := c.store.DeleteProject(ctx, name); err != nil {
		c.project.Err = err
		return err
	}

	delete(c.collapsed, name)
	logTransition("project", c.project.State, ModalClosed)
	c.project = ProjectEditor{}
	c.Refresh()
	return nil
}

// CancelProjectDelete returns from the confirmation step to the edit modal.
func (c *Controller) CancelProjectDelete() {
	c.project.ConfirmingDelete = false
}
