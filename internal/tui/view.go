package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"someday/internal/controller"
	"someday/internal/domain"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	taskState, projectState := m.modalState()
	switch {
	case taskState != controller.ModalClosed:
		body = m.taskModalView()
	case projectState != controller.ModalClosed:
		body = m.projectModalView()
	default:
		return m.boardView()
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) boardView() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("someday"))
	b.WriteString("\n")

	for i, r := range m.rows {
		line := m.renderRow(r)
		if i == m.cursor && r.selectable() {
			line = styleSelected.Render("› " + line)
		} else {
			line = "  " + line
		}
		if r.kind == rowSection {
			line = styleSection.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styleError.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted.Render(helpLine(
		boardKeys.AddToday, boardKeys.AddNextDay, boardKeys.AddNextWeek, boardKeys.AddSomeday,
		boardKeys.AddProject, boardKeys.Toggle, boardKeys.Activate, boardKeys.Quit,
	)))
	return b.String()
}

func (m Model) renderRow(r row) string {
	switch r.kind {
	case rowSection:
		return fmt.Sprintf("%s (%d)", r.title, r.count)
	case rowProject:
		marker := "▾"
		if m.ctrl.IsCollapsed(r.project) {
			marker = "▸"
		}
		return styleProject.Render(fmt.Sprintf("%s %s (%d)", marker, r.title, r.count))
	case rowEmpty:
		return styleMuted.Render("  nothing here")
	}

	t := r.task
	if m.fading[t.ID] {
		return styleFading.Render("[x] " + t.String())
	}
	line := "[ ] " + t.String()
	if t.When.IsNext() {
		line += styleMuted.Render("  " + t.When.Label())
	}
	if t.Notes != "" {
		line += styleMuted.Render("  · " + firstLine(t.Notes))
	}
	return line
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

func (m Model) label(text string, f taskField) string {
	if m.focus == f {
		return styleFocused.Render(text)
	}
	return styleLabel.Render(text)
}

func (m Model) taskModalView() string {
	editor := m.ctrl.TaskEditor()
	heading := "New task"
	if editor.State == controller.ModalEditing {
		heading = "Edit task"
	}

	lines := []string{
		styleTitle.Render(heading),
		"",
		m.label("Title", fieldTitle) + m.titleInput.View(),
		m.label("Notes", fieldNotes),
		m.notesInput.View(),
		m.label("When", fieldWhen) + renderChoices(whenLabels(), editor.Form.When.Label()),
	}
	if editor.ProjectVisible() {
		current := editor.Form.Project
		if current == "" {
			current = "none"
		}
		choices := append([]string{"none"}, m.ctrl.ProjectOptions()...)
		lines = append(lines, m.label("Project", fieldProject)+renderChoices(choices, current))
	}
	lines = append(lines, "")
	if m.status != "" {
		lines = append(lines, styleError.Render(m.status))
	}
	lines = append(lines, styleMuted.Render(helpLine(modalKeys.NextField, modalKeys.Right, modalKeys.Submit, modalKeys.Dismiss)))
	return styleModal.Render(strings.Join(lines, "\n"))
}

func (m Model) projectModalView() string {
	editor := m.ctrl.ProjectEditor()
	if editor.ConfirmingDelete {
		return styleModal.Render(strings.Join([]string{
			styleTitle.Render("Delete " + editor.OriginalName),
			"",
			controller.DeleteProjectWarning,
			"",
			styleMuted.Render(helpLine(modalKeys.Confirm, modalKeys.Deny)),
		}, "\n"))
	}

	heading := "New project"
	help := helpLine(modalKeys.Submit, modalKeys.Dismiss)
	if editor.CanDelete() {
		heading = "Edit project"
		help = helpLine(modalKeys.Submit, modalKeys.Delete, modalKeys.Dismiss)
	}
	lines := []string{
		styleTitle.Render(heading),
		"",
		styleLabel.Render("Name") + m.nameInput.View(),
		"",
	}
	if m.status != "" {
		lines = append(lines, styleError.Render(m.status))
	}
	lines = append(lines, styleMuted.Render(help))
	return styleModal.Render(strings.Join(lines, "\n"))
}

func whenLabels() []string {
	labels := make([]string, len(domain.AllWhens))
	for i, w := range domain.AllWhens {
		labels[i] = w.Label()
	}
	return labels
}

func renderChoices(options []string, current string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if o == current {
			parts[i] = styleSelected.Render("(" + o + ")")
		} else {
			parts[i] = styleMuted.Render(" " + o + " ")
		}
	}
	return strings.Join(parts, " ")
}
