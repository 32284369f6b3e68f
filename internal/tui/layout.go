package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 40
	minHeight = 16

	headerHeight      = 1
	controlsHeight    = 1
	instructionsLines = 2
	panelLabelHeight  = 1
	helpHeight        = 1
	borderRows        = 2
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusBorderColor = lipgloss.Color("63")

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("238"))

	buttonCursorStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62"))

	buttonDisabledStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("243")).
				Background(lipgloss.Color("235"))

	recordingYesStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("82"))

	recordingNoStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	infoLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3)

	errorDialogStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(1, 3)
)

// layoutHeights returns the input and panel content heights that fit the
// terminal. The panel keeps its configured height; the input area absorbs
// the remainder down to a single row.
func (m Model) layoutHeights() (inputH, panelH int) {
	panelH = m.cfg.Display.PanelHeight
	inputH = m.cfg.Display.InputHeight

	h := m.height
	if h < minHeight {
		h = minHeight
	}
	fixed := headerHeight + controlsHeight + instructionsLines + panelLabelHeight + helpHeight + 2*borderRows
	avail := h - fixed
	if panelH > avail-1 {
		panelH = avail - 1
	}
	if panelH < 1 {
		panelH = 1
	}
	if inputH > avail-panelH {
		inputH = avail - panelH
	}
	if inputH < 1 {
		inputH = 1
	}
	return inputH, panelH
}

func (m *Model) resize() {
	w := m.width
	if w < minWidth {
		w = minWidth
	}
	inputH, panelH := m.layoutHeights()

	m.input.SetSize(w-4, inputH)
	m.panel.Width = w - 4
	m.panel.Height = panelH
	m.panel.GotoBottom()
	m.help.Width = w

	if m.viewer.open {
		vw, vh := m.viewerSize()
		m.viewer.vp.Width = vw
		m.viewer.vp.Height = vh
	}
}

func (m Model) renderMain() string {
	w := m.width
	if w < minWidth {
		w = minWidth
	}

	header := m.renderHeader(w)
	controls := m.renderControls(w)
	instructions := dimStyle.Render(
		"Instructions: press Start Recording (F2), then focus the input area below (Tab) and type.\n" +
			"Only keys typed while this program and its input area are focused are recorded. Esc returns to the controls.")

	inputBorder := panelBorderStyle
	if m.focus == FocusInput {
		inputBorder = inputBorder.BorderForeground(focusBorderColor)
	}
	input := inputBorder.Width(w - 2).Render(m.input.View())

	label := panelTitleStyle.Render("Recorded events (most recent at bottom):")
	panel := panelBorderStyle.Width(w - 2).Render(m.panel.View())

	footer := m.help.View(focusHelp{keys: m.keys, focus: m.focus})

	return lipgloss.JoinVertical(lipgloss.Left, header, controls, instructions, input, label, panel, footer)
}

func (m Model) renderHeader(w int) string {
	title := " keyrec - Safe Key Recorder"
	status := m.recordingStatus() + " "
	padding := w - lipgloss.Width(title) - lipgloss.Width(status)
	if padding < 1 {
		padding = 1
	}
	return headerStyle.Width(w).Render(title + strings.Repeat(" ", padding) + status)
}

func (m Model) recordingStatus() string {
	if m.session.Recording() {
		return "Recording: Yes"
	}
	return "Recording: No"
}

func (m Model) renderControls(w int) string {
	var parts []string
	for i, b := range buttons {
		style := buttonStyle
		switch {
		case !m.buttonEnabled(b.action):
			style = buttonDisabledStyle
		case m.focus == FocusControls && i == m.buttonCursor:
			style = buttonCursorStyle
		}
		parts = append(parts, style.Render(b.label))
	}
	bar := strings.Join(parts, " ")

	indicator := recordingNoStyle.Render(m.recordingStatus())
	if m.session.Recording() {
		indicator = recordingYesStyle.Render(m.recordingStatus())
	}

	padding := w - lipgloss.Width(bar) - lipgloss.Width(indicator) - 1
	if padding < 1 {
		padding = 1
	}
	return bar + strings.Repeat(" ", padding) + indicator
}

func (m Model) renderViewer() string {
	w := m.width
	if w < minWidth {
		w = minWidth
	}

	header := headerStyle.Width(w).Render(" " + m.viewer.title)
	body := panelBorderStyle.Width(w - 2).Render(m.viewer.vp.View())

	footer := "Esc: Close  Up/Down PgUp/PgDn: Scroll  " + m.viewer.size
	if m.viewer.status != "" {
		footer += "  [" + m.viewer.status + "]"
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, dimStyle.Render(footer))
}

func (m Model) overlayDialog(base string) string {
	var content string
	switch m.dialog.kind {
	case dialogMessage:
		content = panelTitleStyle.Render(m.dialog.title) + "\n\n" +
			m.dialog.body + "\n\n" +
			dimStyle.Render("[Enter] OK")
	case dialogConfirm:
		content = panelTitleStyle.Render(m.dialog.title) + "\n\n" +
			m.dialog.body + "\n\n" +
			"[y] Yes  [n/Esc] No"
	case dialogPrompt:
		content = panelTitleStyle.Render(m.dialog.title) + "\n\n" +
			m.dialog.input.View() + "\n\n" +
			dimStyle.Render("Enter: OK  Esc: Cancel")
	}

	style := dialogStyle
	if m.dialog.isError {
		style = errorDialogStyle
	}
	return placeOverlay(style.Render(content), base)
}

// placeOverlay centres fg over the area occupied by bg.
func placeOverlay(fg, bg string) string {
	return lipgloss.Place(
		lipgloss.Width(bg),
		lipgloss.Height(bg),
		lipgloss.Center,
		lipgloss.Center,
		fg,
		lipgloss.WithWhitespaceChars(" "),
	)
}
