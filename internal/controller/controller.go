// Package controller holds the interaction state of the board: the task and
// project modals, completion and collapse state. Every commit goes through
// the entity store and refreshes the board.
package controller

import (
	"context"

	"someday/internal/domain"
	"someday/internal/logging"
	"someday/internal/services"
	"someday/internal/viewmodel"
)

// ModalState is the view state of an editor.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalCreating
	ModalEditing
)

// String returns a short name for the state.
func (s ModalState) String() string {
	switch s {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Controller is the application state behind the terminal UI.
type Controller struct {
	store     services.EntityStore
	board     viewmodel.Board
	task      TaskEditor
	project   ProjectEditor
	collapsed map[string]bool
}

// New creates a controller over store with both modals closed.
func New(store services.EntityStore) *Controller {
	c := &Controller{
		store:     store,
		collapsed: map[string]bool{},
	}
	c.Refresh()
	return c
}

// Refresh re-derives the board from the store.
func (c *Controller) Refresh() {
	c.board = viewmodel.Build(c.store.Tasks(), c.store.Projects())
}

// Board returns the current board.
func (c *Controller) Board() viewmodel.Board {
	return c.board
}

// TaskEditor returns a snapshot of the task modal.
func (c *Controller) TaskEditor() TaskEditor {
	return c.task
}

// ProjectEditor returns a snapshot of the project modal.
func (c *Controller) ProjectEditor() ProjectEditor {
	return c.project
}

// ModalOpen reports whether either modal is showing.
func (c *Controller) ModalOpen() bool {
	return c.task.State != ModalClosed || c.project.State != ModalClosed
}

// Dismiss closes whichever modal is open without committing.
func (c *Controller) Dismiss() {
	c.CancelTask()
	c.project = ProjectEditor{}
}

// CompleteTask marks the task done and refreshes the board. The caller
// decides whether to show a fade first; the commit itself is immediate.
func (c *Controller) CompleteTask(ctx context.Context, id string) error {
	if err := c.store.CompleteTask(ctx, id); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// ToggleCollapsed flips the collapse state of a project group.
func (c *Controller) ToggleCollapsed(name string) {
	if c.collapsed[name] {
		delete(c.collapsed, name)
		return
	}
	c.collapsed[name] = true
}

// IsCollapsed reports whether a project group is collapsed.
// Groups start expanded.
func (c *Controller) IsCollapsed(name string) bool {
	return c.collapsed[name]
}

func (c *Controller) renameCollapsed(oldName, newName string) {
	if c.collapsed[oldName] {
		delete(c.collapsed, oldName)
		c.collapsed[newName] = true
	}
}

// ProjectOptions lists the project names a someday task can be filed under.
func (c *Controller) ProjectOptions() []string {
	return domain.ProjectNames(c.store.Projects())
}

func logTransition(editor string, from, to ModalState) {
	if from != to {
		logging.Debugf("%s modal: %s -> %s\n", editor, from, to)
	}
}
