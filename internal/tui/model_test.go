package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/keyrec/internal/config"
	"github.com/nixlim/keyrec/internal/recorder"
)

func testClock() func() time.Time {
	t := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(250 * time.Millisecond)
		return t
	}
}

func newTestModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Save.Directory = t.TempDir()
	session := recorder.New(cfg.Display.ScrollbackLines, recorder.WithClock(testClock()))
	opts = append([]ModelOption{WithSession(session)}, opts...)
	m := NewModel(cfg, opts...)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	return result.(Model)
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		m = update(t, m, msg)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyF2    = tea.KeyMsg{Type: tea.KeyF2}
	keyF3    = tea.KeyMsg{Type: tea.KeyF3}
	keyF4    = tea.KeyMsg{Type: tea.KeyF4}
	keyF5    = tea.KeyMsg{Type: tea.KeyF5}
	keyF6    = tea.KeyMsg{Type: tea.KeyF6}
	keyF10   = tea.KeyMsg{Type: tea.KeyF10}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func TestModel_StartsIdleWithInputFocused(t *testing.T) {
	m := newTestModel(t)

	if m.session.Recording() {
		t.Error("session should start idle")
	}
	if m.focus != FocusInput || !m.input.Focused() {
		t.Error("input surface should have focus at startup")
	}
	view := m.View()
	if !strings.Contains(view, "Recording: No") {
		t.Error("view should show 'Recording: No'")
	}
	for _, b := range buttons {
		if !strings.Contains(view, b.label) {
			t.Errorf("view should show button %q", b.label)
		}
	}
}

func TestModel_KeysIgnoredWhileIdle(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("a"), runes("b"), keyEnter)

	if m.session.EventCount() != 0 {
		t.Errorf("EventCount = %d, want 0 while idle", m.session.EventCount())
	}
	if len(m.session.PanelLines()) != 0 {
		t.Error("panel should stay empty while idle")
	}
	if m.input.area.Value() == "" {
		t.Error("textarea should still receive typed text while idle")
	}
}

func TestModel_RecordsWhileRecording(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, keyF2)
	if !m.session.Recording() {
		t.Fatal("F2 should start recording")
	}
	if !strings.Contains(m.View(), "Recording: Yes") {
		t.Error("view should show 'Recording: Yes'")
	}

	m = press(t, m, runes("a"), keyEnter)

	events := m.session.Events()
	if len(events) != 2 {
		t.Fatalf("EventCount = %d, want 2", len(events))
	}
	if events[0].KeySymbol != "a" || events[0].CharRepr != "a" {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].KeySymbol != "Return" || events[1].CharRepr != "<non-printable>" {
		t.Errorf("event 1 = %+v", events[1])
	}

	// start info line plus one line per event
	if got := len(m.session.PanelLines()); got != 3 {
		t.Errorf("panel lines = %d, want 3", got)
	}
	if !strings.Contains(m.panel.View(), events[1].DisplayLine()) {
		t.Errorf("panel viewport should show the newest line, got:\n%s", m.panel.View())
	}
}

func TestModel_StartTwiceIsIdempotent(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, keyF2)
	lines := len(m.session.PanelLines())
	m = press(t, m, keyF2)

	if !m.session.Recording() {
		t.Error("still recording after second start")
	}
	if len(m.session.PanelLines()) != lines {
		t.Error("second start should not append a message")
	}
	if m.buttonEnabled(actionStart) || !m.buttonEnabled(actionStop) {
		t.Error("Start should be disabled and Stop enabled while recording")
	}
}

func TestModel_StopRestoresControls(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF2, keyF3)

	if m.session.Recording() {
		t.Error("F3 should stop recording")
	}
	if !m.buttonEnabled(actionStart) || m.buttonEnabled(actionStop) {
		t.Error("Start should be enabled and Stop disabled when idle")
	}
	lines := m.session.PanelLines()
	if !strings.HasSuffix(lines[len(lines)-1].Text, "Recording stopped.") {
		t.Errorf("last panel line = %q", lines[len(lines)-1].Text)
	}
}

func TestModel_ControlBarDoesNotCapture(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, keyF2, keyEsc)
	if m.focus != FocusControls || m.input.Focused() {
		t.Fatal("Esc should move focus to the control bar")
	}

	m = press(t, m, runes("x"), runes("y"))
	if m.session.EventCount() != 0 {
		t.Errorf("keys on the control bar were recorded: %d", m.session.EventCount())
	}

	m = press(t, m, keyTab, runes("z"))
	if m.focus != FocusInput {
		t.Fatal("Tab should focus the input area")
	}
	if m.session.EventCount() != 1 {
		t.Errorf("EventCount = %d, want 1 after typing in the input", m.session.EventCount())
	}
}

func TestModel_ControlBarButtons(t *testing.T) {
	m := newTestModel(t, WithFocus(FocusControls))

	// cursor starts on Start Recording
	m = press(t, m, keyEnter)
	if !m.session.Recording() {
		t.Fatal("pressing Start Recording should start")
	}

	m = press(t, m, keyRight, keyEnter)
	if m.session.Recording() {
		t.Fatal("pressing Stop Recording should stop")
	}

	m = press(t, m, runes("s"))
	if !m.session.Recording() {
		t.Error("'s' hotkey should start recording")
	}
	m = press(t, m, runes("t"))
	if m.session.Recording() {
		t.Error("'t' hotkey should stop recording")
	}
}

func TestModel_DisabledButtonDoesNothing(t *testing.T) {
	m := newTestModel(t, WithFocus(FocusControls))
	m = press(t, m, keyRight, keyEnter)

	if m.session.Recording() {
		t.Error("Stop while idle should do nothing")
	}
	if len(m.session.PanelLines()) != 0 {
		t.Error("disabled Stop should not append a message")
	}
}

func TestModel_ClearNoopWhenEmpty(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF5)

	if m.dialog.active() {
		t.Error("Clear with nothing to clear should not prompt")
	}
}

func TestModel_ClearConfirmed(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF2, runes("a"), runes("b"), keyF5)

	if m.dialog.kind != dialogConfirm || m.dialog.body != "Clear recorded events and display?" {
		t.Fatalf("expected clear confirmation, got %+v", m.dialog)
	}

	m = press(t, m, runes("y"))
	if m.dialog.active() {
		t.Error("dialog should close after confirming")
	}
	if m.session.EventCount() != 0 {
		t.Errorf("EventCount = %d after clear", m.session.EventCount())
	}
	lines := m.session.PanelLines()
	if len(lines) != 1 || !strings.HasSuffix(lines[0].Text, "Cleared recorded events.") {
		t.Errorf("panel after clear = %+v", lines)
	}
	if !m.session.Recording() {
		t.Error("clear should keep the recording state")
	}
}

func TestModel_ClearDeclined(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF2, runes("a"), keyF5, runes("n"))

	if m.dialog.active() {
		t.Error("dialog should close after declining")
	}
	if m.session.EventCount() != 1 {
		t.Errorf("EventCount = %d, want 1 after declined clear", m.session.EventCount())
	}
}

func TestModel_DialogSwallowsKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF2, runes("a"), keyF5)

	// 'q' is neither yes nor no; it must not reach the input surface.
	m = press(t, m, runes("q"))
	if !m.dialog.active() {
		t.Error("unrelated key should leave the dialog open")
	}
	if m.session.EventCount() != 1 {
		t.Error("keys pressed while a dialog is open must not be recorded")
	}
}

func TestModel_CloseWithEmptyLogQuits(t *testing.T) {
	called := false
	m := newTestModel(t, WithOnShutdown(func() { called = true }))

	result, cmd := m.Update(keyF10)
	m = result.(Model)

	if !m.quitting {
		t.Error("close with empty log should quit immediately")
	}
	if !called {
		t.Error("shutdown hook should run")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "Shutting down...\n" {
		t.Errorf("View after quit = %q", m.View())
	}
}

func TestModel_CloseWithUnsavedDeclined(t *testing.T) {
	called := false
	m := newTestModel(t, WithOnShutdown(func() { called = true }))
	m = press(t, m, keyF2, runes("a"), keyF10)

	if m.dialog.kind != dialogConfirm || m.dialog.confirm != confirmExit {
		t.Fatalf("expected exit confirmation, got %+v", m.dialog)
	}

	m = press(t, m, keyEsc)
	if m.quitting || called {
		t.Error("declining exit must keep the program running")
	}
	if m.session.EventCount() != 1 {
		t.Error("declining exit must leave the log unchanged")
	}
}

func TestModel_CloseWithUnsavedConfirmed(t *testing.T) {
	called := false
	m := newTestModel(t, WithOnShutdown(func() { called = true }))
	m = press(t, m, keyF2, runes("a"), tea.KeyMsg{Type: tea.KeyCtrlC})

	result, cmd := m.Update(runes("y"))
	m = result.(Model)
	if !m.quitting || !called {
		t.Error("confirming exit should shut down")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_ResizeFitsTerminal(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 18})

	view := m.View()
	if n := len(strings.Split(view, "\n")); n > 18 {
		t.Errorf("view has %d lines, want at most 18", n)
	}
	inputH, panelH := m.layoutHeights()
	if inputH < 1 || panelH < 1 {
		t.Errorf("layout heights = %d, %d", inputH, panelH)
	}
}

func TestModel_PanelScrollsToNewest(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF2)
	for i := 0; i < 30; i++ {
		m = press(t, m, runes("k"))
	}

	if !m.panel.AtBottom() {
		t.Error("panel should be scrolled to the newest line")
	}
}

func TestModel_SaveWritesDefaultFile(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyF2, runes("a"), keyF4)

	if m.dialog.kind != dialogPrompt {
		t.Fatalf("expected save prompt, got %+v", m.dialog)
	}
	if got := m.dialog.input.Value(); got != "key_events_log.txt" {
		t.Errorf("prompt default = %q, want key_events_log.txt", got)
	}

	m = press(t, m, keyEnter)
	path := filepath.Join(m.cfg.Save.Directory, "key_events_log.txt")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
	if m.dialog.kind != dialogMessage || !strings.Contains(m.dialog.body, "Saved 1 event to:") {
		t.Errorf("expected save confirmation, got %+v", m.dialog)
	}
}
