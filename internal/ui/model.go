package ui

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/logging/events"
	"github.com/atomicstack/fsel/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// animated is implemented by dialogs that run their own commands, such as a
// blinking filter cursor.
type animated interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
}

// Model implements the Bubble Tea model around a single Dialog.
type Model struct {
	dialog      Dialog
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	outcome     Outcome

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps dialog. A positive width or height pins that dimension and
// ignores resize events for it.
func NewModel(dialog Dialog, width, height int) *Model {
	m := &Model{dialog: dialog}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	if m.fixedWidth || m.fixedHeight {
		dialog.Layout(m.width, m.height)
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if a, ok := m.dialog.(animated); ok {
		return a.Init()
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.outcome.Done() {
		return m, nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.outcome.Done() {
		return m, tea.Quit
	}
	if a, ok := m.dialog.(animated); ok {
		if cmd := a.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.outcome.Done() {
		return nil
	}
	if o := m.dialog.HandleKey(keyMsg); o.Done() {
		m.outcome = o
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.Session.Resize(m.width, m.height)
	m.dialog.Layout(m.width, m.height)
	return nil
}

// View implements tea.Model. A finished dialog renders nothing so the
// terminal is left clean.
func (m *Model) View() string {
	if m.outcome.Done() {
		return ""
	}
	return m.dialog.View()
}

// Outcome reports how the dialog finished. It is Continue while running.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// CommittedPath returns the chosen path once the dialog finished with a
// printable outcome.
func (m *Model) CommittedPath() []entry.Entry {
	if !m.outcome.Printed() {
		return nil
	}
	return m.dialog.CommittedPath()
}

// Dialog exposes the wrapped dialog.
func (m *Model) Dialog() Dialog {
	return m.dialog
}
