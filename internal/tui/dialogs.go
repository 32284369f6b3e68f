package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/keyrec/internal/logfile"
	"github.com/nixlim/keyrec/internal/recorder"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogMessage
	dialogConfirm
	dialogPrompt
)

type confirmAction int

const (
	confirmClear confirmAction = iota
	confirmExit
)

type promptAction int

const (
	promptSave promptAction = iota
	promptOpen
)

// dialog is the single modal overlay. Only one can be open at a time.
type dialog struct {
	kind    dialogKind
	title   string
	body    string
	isError bool

	confirm confirmAction
	prompt  promptAction
	input   textinput.Model
}

func (d dialog) active() bool {
	return d.kind != dialogNone
}

func newMessageDialog(title, body string, isError bool) dialog {
	return dialog{kind: dialogMessage, title: title, body: body, isError: isError}
}

func newConfirmDialog(title, body string, a confirmAction) dialog {
	return dialog{kind: dialogConfirm, title: title, body: body, confirm: a}
}

func newPromptDialog(title string, a promptAction, initial string) dialog {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = 48
	ti.SetValue(initial)
	ti.CursorEnd()
	return dialog{kind: dialogPrompt, title: title, prompt: a, input: ti}
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog.kind {
	case dialogMessage:
		if key.Matches(msg, m.keys.Accept) || key.Matches(msg, m.keys.Escape) {
			m.dialog = dialog{}
		}
		return m, nil

	case dialogConfirm:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			a := m.dialog.confirm
			m.dialog = dialog{}
			return m.confirmed(a)
		case key.Matches(msg, m.keys.Deny), key.Matches(msg, m.keys.Escape):
			m.dialog = dialog{}
		}
		return m, nil

	case dialogPrompt:
		switch {
		case key.Matches(msg, m.keys.Accept):
			a := m.dialog.prompt
			value := m.dialog.input.Value()
			m.dialog = dialog{}
			return m.prompted(a, value)
		case key.Matches(msg, m.keys.Escape):
			m.dialog = dialog{}
			return m, nil
		}
		var cmd tea.Cmd
		m.dialog.input, cmd = m.dialog.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) confirmed(a confirmAction) (tea.Model, tea.Cmd) {
	switch a {
	case confirmClear:
		m.session.Clear()
		m.syncPanel()
		return m, nil
	case confirmExit:
		return m.shutdown()
	}
	return m, nil
}

func (m Model) prompted(a promptAction, value string) (tea.Model, tea.Cmd) {
	switch a {
	case promptSave:
		return m.completeSave(value)
	case promptOpen:
		return m.completeOpen(value)
	}
	return m, nil
}

func (m Model) beginSave() (tea.Model, tea.Cmd) {
	if m.session.EventCount() == 0 {
		m.dialog = newMessageDialog("Save Log", "No recorded events to save.", false)
		return m, nil
	}
	m.dialog = newPromptDialog("Save key event log as...", promptSave, m.cfg.Save.DefaultFilename)
	return m, m.dialog.input.Focus()
}

func (m Model) completeSave(value string) (tea.Model, tea.Cmd) {
	path, err := logfile.ResolveSavePath(value, m.cfg.Save.Directory, m.cfg.Save.DefaultExtension)
	if errors.Is(err, logfile.ErrCancelled) {
		return m, nil
	}

	n, err := m.session.Save(path)
	switch {
	case errors.Is(err, recorder.ErrNothingToSave):
		m.dialog = newMessageDialog("Save Log", "No recorded events to save.", false)
	case err != nil:
		m.dialog = newMessageDialog("Save Log", "Failed to save file:\n"+err.Error(), true)
	default:
		m.dialog = newMessageDialog("Save Log", fmt.Sprintf("Saved %s to:\n%s", recorder.CountEvents(n), path), false)
		m.syncPanel()
	}
	return m, nil
}

func (m Model) beginOpen() (tea.Model, tea.Cmd) {
	m.dialog = newPromptDialog("Open log file...", promptOpen, "")
	return m, m.dialog.input.Focus()
}

func (m Model) completeOpen(value string) (tea.Model, tea.Cmd) {
	path, err := logfile.ResolveOpenPath(value)
	if errors.Is(err, logfile.ErrCancelled) {
		return m, nil
	}

	content, err := m.session.Open(path)
	if err != nil {
		m.dialog = newMessageDialog("Open Log", "Failed to open file:\n"+err.Error(), true)
		return m, nil
	}

	cmd := m.openViewer(path, content)
	return m, cmd
}
