package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nixlim/keyrec/internal/logfile"
)

// viewer is the read-only secondary window opened by Open Log File. It
// never touches the recording session.
type viewer struct {
	open    bool
	path    string
	title   string
	size    string
	status  string
	vp      viewport.Model
	watcher *logfile.Watcher
}

// fileChangedMsg reports that the viewed file changed on disk.
type fileChangedMsg struct {
	path string
}

func (m *Model) openViewer(path, content string) tea.Cmd {
	m.closeViewer()

	w, h := m.viewerSize()
	m.viewer = viewer{
		open:  true,
		path:  path,
		title: "Viewing: " + filepath.Base(path),
		vp:    viewport.New(w, h),
	}
	m.viewer.setContent(content)

	// Live reload is best effort; the viewer works without it.
	watcher, err := logfile.Watch(path)
	if err != nil {
		m.viewer.status = "live reload unavailable"
		return nil
	}
	m.viewer.watcher = watcher
	return waitForChange(watcher)
}

func (v *viewer) setContent(content string) {
	v.vp.SetContent(content)
	v.size = humanize.Bytes(uint64(len(content)))
}

func (m *Model) closeViewer() {
	if m.viewer.watcher != nil {
		_ = m.viewer.watcher.Close()
	}
	m.viewer = viewer{}
}

func waitForChange(w *logfile.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return fileChangedMsg{path: w.Path()}
	}
}

func (m Model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	if !m.viewer.open || m.viewer.watcher == nil || m.viewer.watcher.Path() != msg.path {
		return m, nil
	}

	content, err := logfile.ReadText(m.viewer.path)
	if err != nil {
		m.viewer.status = "reload failed: " + err.Error()
	} else {
		m.viewer.status = ""
		m.viewer.setContent(content)
	}
	return m, waitForChange(m.viewer.watcher)
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.HotQuit):
		m.closeViewer()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m.requestClose()
	}

	var cmd tea.Cmd
	m.viewer.vp, cmd = m.viewer.vp.Update(msg)
	return m, cmd
}

func (m Model) viewerSize() (int, int) {
	w := m.width - 4
	if w < 20 {
		w = 76
	}
	h := m.height - 5
	if h < 3 {
		h = 20
	}
	return w, h
}
