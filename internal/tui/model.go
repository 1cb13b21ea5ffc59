// Package tui renders the board in the terminal and routes key presses to
// the controller.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"someday/internal/controller"
	"someday/internal/domain"
	"someday/internal/errors"
	"someday/internal/logging"
)

// Options tune the interaction timings.
type Options struct {
	CompletionDelay        time.Duration
	DoubleActivationWindow time.Duration
	DefaultWhen            domain.When
	LogDir                 string
}

type completeTaskMsg struct{ id string }

type taskField int

const (
	fieldTitle taskField = iota
	fieldNotes
	fieldWhen
	fieldProject
)

// Model is the bubbletea model of the board.
type Model struct {
	ctx  context.Context
	ctrl *controller.Controller
	opts Options
	now  func() time.Time

	width  int
	height int

	rows   []row
	cursor int

	fading           map[string]bool
	lastActivation   string
	lastActivationAt time.Time

	titleInput textinput.Model
	notesInput textarea.Model
	nameInput  textinput.Model
	focus      taskField

	status   string
	quitting bool
}

// New creates a board model over ctrl.
func New(ctx context.Context, ctrl *controller.Controller, opts Options) Model {
	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		opts:   opts,
		now:    time.Now,
		fading: map[string]bool{},
		cursor: -1,
	}

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 48

	m.notesInput = textarea.New()
	m.notesInput.Placeholder = "Notes"
	m.notesInput.ShowLineNumbers = false
	m.notesInput.SetWidth(50)
	m.notesInput.SetHeight(3)

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Project name"
	m.nameInput.CharLimit = 128
	m.nameInput.Width = 40

	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case completeTaskMsg:
		m.finishCompletion(msg.id)
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.ctrl.TaskEditor().State != controller.ModalClosed:
			return m.updateTaskModal(msg)
		case m.ctrl.ProjectEditor().State != controller.ModalClosed:
			return m.updateProjectModal(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

// refresh rebuilds the rows and keeps the cursor on the same row when it
// still exists.
func (m *Model) refresh() {
	prev := ""
	if r, ok := m.selected(); ok {
		prev = r.key()
	}
	m.rows = buildRows(m.ctrl.Board(), m.ctrl.IsCollapsed)

	if prev != "" {
		for i, r := range m.rows {
			if r.key() == prev {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 || !m.rows[m.cursor].selectable() {
		m.moveCursor(1)
		if m.cursor < 0 || !m.rows[m.cursor].selectable() {
			m.moveCursor(-1)
		}
	}
}

func (m Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || !m.rows[m.cursor].selectable() {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// moveCursor steps to the next selectable row in dir, staying put at the
// ends.
func (m *Model) moveCursor(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].selectable() {
			m.cursor = i
			return
		}
	}
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, boardKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, boardKeys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, boardKeys.Down):
		m.moveCursor(1)
	case key.Matches(msg, boardKeys.AddDefault):
		return m, m.openTaskCreate(m.opts.DefaultWhen)
	case key.Matches(msg, boardKeys.AddToday):
		return m, m.openTaskCreate(domain.WhenToday)
	case key.Matches(msg, boardKeys.AddNextDay):
		return m, m.openTaskCreate(domain.WhenNextDay)
	case key.Matches(msg, boardKeys.AddNextWeek):
		return m, m.openTaskCreate(domain.WhenNextWeek)
	case key.Matches(msg, boardKeys.AddSomeday):
		return m, m.openTaskCreate(domain.WhenSomeday)
	case key.Matches(msg, boardKeys.AddProject):
		m.ctrl.OpenProjectCreate()
		return m, m.loadProjectForm()
	case key.Matches(msg, boardKeys.Toggle):
		return m, m.toggleSelected()
	case key.Matches(msg, boardKeys.Activate):
		return m, m.activateSelected()
	}
	return m, nil
}

// toggleSelected completes a task after the fade, or flips a project's
// collapse state.
func (m *Model) toggleSelected() tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	if r.kind == rowProject {
		m.ctrl.ToggleCollapsed(r.project)
		m.refresh()
		return nil
	}

	id := r.task.ID
	if m.fading[id] {
		return nil
	}
	if m.opts.CompletionDelay <= 0 {
		m.finishCompletion(id)
		return nil
	}
	m.fading[id] = true
	return tea.Tick(m.opts.CompletionDelay, func(time.Time) tea.Msg {
		return completeTaskMsg{id: id}
	})
}

func (m *Model) finishCompletion(id string) {
	delete(m.fading, id)
	if err := m.ctrl.CompleteTask(m.ctx, id); err != nil {
		m.setError(err)
	} else {
		m.status = ""
	}
	m.refresh()
}

// activateSelected opens the editor when the same row is activated twice
// within the double activation window.
func (m *Model) activateSelected() tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	now := m.now()
	if r.key() != m.lastActivation || now.Sub(m.lastActivationAt) > m.opts.DoubleActivationWindow {
		m.lastActivation = r.key()
		m.lastActivationAt = now
		return nil
	}
	m.lastActivation = ""

	switch r.kind {
	case rowTask:
		if m.ctrl.OpenTaskEdit(r.task.ID) {
			return m.loadTaskForm()
		}
	case rowProject:
		if m.ctrl.OpenProjectEdit(r.project) {
			return m.loadProjectForm()
		}
	}
	return nil
}

func (m *Model) setError(err error) {
	if errors.ShouldLogError(err) {
		logging.Debugf("tui: %v\n", err)
	}
	m.status = errors.GetUserMessage(err)
}
