package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"someday/internal/controller"
	"someday/internal/domain"
)

func (m *Model) openTaskCreate(preset domain.When) tea.Cmd {
	m.ctrl.OpenTaskCreate(preset)
	return m.loadTaskForm()
}

// loadTaskForm copies the editor's form into the inputs and focuses the
// title.
func (m *Model) loadTaskForm() tea.Cmd {
	form := m.ctrl.TaskEditor().Form
	m.titleInput.SetValue(form.Title)
	m.titleInput.CursorEnd()
	m.notesInput.SetValue(form.Notes)
	m.status = ""
	return m.setFocus(fieldTitle)
}

func (m *Model) loadProjectForm() tea.Cmd {
	m.nameInput.SetValue(m.ctrl.ProjectEditor().Name)
	m.nameInput.CursorEnd()
	m.status = ""
	return m.nameInput.Focus()
}

func (m *Model) setFocus(f taskField) tea.Cmd {
	m.focus = f
	m.titleInput.Blur()
	m.notesInput.Blur()
	switch f {
	case fieldTitle:
		return m.titleInput.Focus()
	case fieldNotes:
		return m.notesInput.Focus()
	}
	return nil
}

func (m Model) taskFields() []taskField {
	fields := []taskField{fieldTitle, fieldNotes, fieldWhen}
	if m.ctrl.TaskEditor().ProjectVisible() {
		fields = append(fields, fieldProject)
	}
	return fields
}

func (m *Model) cycleFocus(dir int) tea.Cmd {
	fields := m.taskFields()
	i := 0
	for j, f := range fields {
		if f == m.focus {
			i = j
		}
	}
	i = (i + dir + len(fields)) % len(fields)
	return m.setFocus(fields[i])
}

func (m *Model) closeModal() {
	m.titleInput.Blur()
	m.notesInput.Blur()
	m.nameInput.Blur()
	m.status = ""
	m.refresh()
}

func (m Model) updateTaskModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, modalKeys.Dismiss):
		m.ctrl.Dismiss()
		m.closeModal()
		return m, nil
	case key.Matches(msg, modalKeys.Submit):
		m.ctrl.SetTaskTitle(m.titleInput.Value())
		m.ctrl.SetTaskNotes(m.notesInput.Value())
		if err := m.ctrl.SubmitTask(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeModal()
		return m, nil
	case key.Matches(msg, modalKeys.NextField):
		return m, m.cycleFocus(1)
	case key.Matches(msg, modalKeys.PrevField):
		return m, m.cycleFocus(-1)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.ctrl.SetTaskTitle(m.titleInput.Value())
	case fieldNotes:
		m.notesInput, cmd = m.notesInput.Update(msg)
		m.ctrl.SetTaskNotes(m.notesInput.Value())
	case fieldWhen:
		if dir := arrowDirection(msg); dir != 0 {
			m.ctrl.SelectWhen(cycleWhen(m.ctrl.TaskEditor().Form.When, dir))
		}
	case fieldProject:
		if dir := arrowDirection(msg); dir != 0 {
			m.ctrl.SetTaskProject(cycleOption(m.projectChoices(), m.ctrl.TaskEditor().Form.Project, dir))
		}
	}
	return m, cmd
}

func (m Model) updateProjectModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.ProjectEditor().ConfirmingDelete {
		switch {
		case key.Matches(msg, modalKeys.Confirm):
			if err := m.ctrl.ConfirmProjectDelete(m.ctx); err != nil {
				m.setError(err)
				return m, nil
			}
			m.closeModal()
		case key.Matches(msg, modalKeys.Deny):
			m.ctrl.CancelProjectDelete()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, modalKeys.Dismiss):
		m.ctrl.Dismiss()
		m.closeModal()
		return m, nil
	case key.Matches(msg, modalKeys.Submit), msg.Type == tea.KeyEnter:
		m.ctrl.SetProjectName(m.nameInput.Value())
		if err := m.ctrl.SubmitProject(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeModal()
		return m, nil
	case key.Matches(msg, modalKeys.Delete):
		m.ctrl.RequestProjectDelete()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.ctrl.SetProjectName(m.nameInput.Value())
	return m, cmd
}

// projectChoices are the project select options, with "" for none.
func (m Model) projectChoices() []string {
	return append([]string{""}, m.ctrl.ProjectOptions()...)
}

func arrowDirection(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, modalKeys.Left):
		return -1
	case key.Matches(msg, modalKeys.Right):
		return 1
	}
	return 0
}

func cycleWhen(current domain.When, dir int) domain.When {
	options := make([]string, len(domain.AllWhens))
	for i, w := range domain.AllWhens {
		options[i] = string(w)
	}
	return domain.When(cycleOption(options, string(current), dir))
}

func cycleOption(options []string, current string, dir int) string {
	if len(options) == 0 {
		return current
	}
	i := 0
	for j, o := range options {
		if o == current {
			i = j
		}
	}
	return options[(i+dir+len(options))%len(options)]
}

// modalState reports which modal, if any, is open.
func (m Model) modalState() (task, project controller.ModalState) {
	return m.ctrl.TaskEditor().State, m.ctrl.ProjectEditor().State
}
