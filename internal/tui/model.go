package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/keyrec/internal/config"
	"github.com/nixlim/keyrec/internal/display"
	"github.com/nixlim/keyrec/internal/recorder"
)

type Focus int

const (
	FocusControls Focus = iota
	FocusInput
)

type action int

const (
	actionStart action = iota
	actionStop
	actionSave
	actionClear
	actionOpen
)

type button struct {
	label  string
	action action
}

var buttons = []button{
	{"Start Recording", actionStart},
	{"Stop Recording", actionStop},
	{"Save Log", actionSave},
	{"Clear", actionClear},
	{"Open Log File", actionOpen},
}

type Model struct {
	width    int
	height   int
	keys     KeyMap
	help     help.Model
	quitting bool

	cfg     config.Config
	session *recorder.Session

	focus        Focus
	buttonCursor int

	input inputSurface
	panel viewport.Model

	dialog dialog
	viewer viewer

	onShutdown func()
}

type ModelOption func(*Model)

// WithSession supplies the recording session. Without it NewModel creates
// one sized from the display config.
func WithSession(s *recorder.Session) ModelOption {
	return func(m *Model) { m.session = s }
}

func WithOnShutdown(fn func()) ModelOption {
	return func(m *Model) { m.onShutdown = fn }
}

// WithFocus sets which area has focus at startup.
func WithFocus(f Focus) ModelOption {
	return func(m *Model) { m.focus = f }
}

func NewModel(cfg config.Config, opts ...ModelOption) Model {
	m := Model{
		keys:  DefaultKeyMap(),
		help:  help.New(),
		cfg:   cfg,
		focus: FocusInput,
		input: newInputSurface(cfg.Display.InputHeight),
		panel: viewport.New(80, cfg.Display.PanelHeight),
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.session == nil {
		m.session = recorder.New(cfg.Display.ScrollbackLines)
	}
	m.input.Subscribe(m.session)

	if m.focus == FocusInput {
		m.input.Focus()
	}
	m.syncPanel()

	return m
}

func (m Model) Init() tea.Cmd {
	if m.focus == FocusInput {
		return m.input.Focus()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case fileChangedMsg:
		return m.handleFileChanged(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.dialog.kind == dialogPrompt {
		var cmd tea.Cmd
		m.dialog.input, cmd = m.dialog.input.Update(msg)
		return m, cmd
	}
	return m, m.input.Update(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog.active() {
		return m.handleDialogKey(msg)
	}

	if m.viewer.open {
		return m.handleViewerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.requestClose()
	case key.Matches(msg, m.keys.Start):
		return m.run(actionStart)
	case key.Matches(msg, m.keys.Stop):
		return m.run(actionStop)
	case key.Matches(msg, m.keys.Save):
		return m.run(actionSave)
	case key.Matches(msg, m.keys.Clear):
		return m.run(actionClear)
	case key.Matches(msg, m.keys.Open):
		return m.run(actionOpen)
	}

	if m.focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleControlsKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.FocusControls) {
		m.focus = FocusControls
		m.input.Blur()
		return m, nil
	}

	cmd := m.input.HandleKey(msg)
	m.syncPanel()
	return m, cmd
}

func (m Model) handleControlsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusInput):
		m.focus = FocusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Left):
		if m.buttonCursor > 0 {
			m.buttonCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.buttonCursor < len(buttons)-1 {
			m.buttonCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Press):
		return m.run(buttons[m.buttonCursor].action)

	case key.Matches(msg, m.keys.HotStart):
		return m.run(actionStart)
	case key.Matches(msg, m.keys.HotStop):
		return m.run(actionStop)
	case key.Matches(msg, m.keys.HotSave):
		return m.run(actionSave)
	case key.Matches(msg, m.keys.HotClear):
		return m.run(actionClear)
	case key.Matches(msg, m.keys.HotOpen):
		return m.run(actionOpen)
	case key.Matches(msg, m.keys.HotQuit):
		return m.requestClose()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	}

	return m, nil
}

// buttonEnabled reports whether the control for a is currently usable.
func (m Model) buttonEnabled(a action) bool {
	switch a {
	case actionStart:
		return m.session.CanStart()
	case actionStop:
		return m.session.CanStop()
	}
	return true
}

func (m Model) run(a action) (tea.Model, tea.Cmd) {
	if !m.buttonEnabled(a) {
		return m, nil
	}

	switch a {
	case actionStart:
		m.session.Start()
	case actionStop:
		m.session.Stop()
	case actionSave:
		return m.beginSave()
	case actionClear:
		return m.beginClear()
	case actionOpen:
		return m.beginOpen()
	}

	m.syncPanel()
	return m, nil
}

func (m Model) beginClear() (tea.Model, tea.Cmd) {
	if !m.session.NeedsClearConfirmation() {
		return m, nil
	}
	m.dialog = newConfirmDialog("Clear", "Clear recorded events and display?", confirmClear)
	return m, nil
}

// requestClose asks for confirmation before discarding recorded events.
func (m Model) requestClose() (tea.Model, tea.Cmd) {
	if m.session.HasUnsaved() {
		m.dialog = newConfirmDialog("Exit", "There are unsaved recorded events. Exit without saving?", confirmExit)
		return m, nil
	}
	return m.shutdown()
}

func (m Model) shutdown() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeViewer()
	m.session.Close()
	if m.onShutdown != nil {
		m.onShutdown()
	}
	return m, tea.Quit
}

// syncPanel mirrors the session's panel into the viewport and scrolls to
// the newest line.
func (m *Model) syncPanel() {
	lines := m.session.PanelLines()
	rendered := make([]string, len(lines))
	for i, l := range lines {
		if l.Kind == display.KindInfo {
			rendered[i] = infoLineStyle.Render(l.Text)
		} else {
			rendered[i] = l.Text
		}
	}
	m.panel.SetContent(strings.Join(rendered, "\n"))
	m.panel.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var output string
	switch {
	case m.viewer.open:
		output = m.renderViewer()
	default:
		output = m.renderMain()
	}

	if m.dialog.active() {
		output = m.overlayDialog(output)
	}

	if m.height > 0 {
		lines := strings.Split(output, "\n")
		if len(lines) > m.height {
			lines = lines[:m.height]
			output = strings.Join(lines, "\n")
		}
	}

	return output
}
