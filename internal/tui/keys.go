package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the UI reacts to. Function keys work whatever
// has focus; the letter hotkeys only apply while the control bar has focus
// so they never steal keys from the input area.
type KeyMap struct {
	Start key.Binding
	Stop  key.Binding
	Save  key.Binding
	Clear key.Binding
	Open  key.Binding
	Quit  key.Binding

	HotStart key.Binding
	HotStop  key.Binding
	HotSave  key.Binding
	HotClear key.Binding
	HotOpen  key.Binding
	HotQuit  key.Binding

	FocusInput    key.Binding
	FocusControls key.Binding

	Left  key.Binding
	Right key.Binding
	Press key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding

	Confirm key.Binding
	Deny    key.Binding
	Accept  key.Binding
	Escape  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "start")),
		Stop:  key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "stop")),
		Save:  key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "save")),
		Clear: key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "clear")),
		Open:  key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "open")),
		Quit:  key.NewBinding(key.WithKeys("f10", "ctrl+c"), key.WithHelp("F10", "quit")),

		HotStart: key.NewBinding(key.WithKeys("s")),
		HotStop:  key.NewBinding(key.WithKeys("t")),
		HotSave:  key.NewBinding(key.WithKeys("v")),
		HotClear: key.NewBinding(key.WithKeys("c")),
		HotOpen:  key.NewBinding(key.WithKeys("o")),
		HotQuit:  key.NewBinding(key.WithKeys("q")),

		FocusInput:    key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("Tab", "focus input")),
		FocusControls: key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "controls")),

		Left:  key.NewBinding(key.WithKeys("left", "h", "shift+tab")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		Press: key.NewBinding(key.WithKeys("enter", " ")),

		ScrollUp:   key.NewBinding(key.WithKeys("up", "pgup"), key.WithHelp("↑/PgUp", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "pgdown")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y")),
		Deny:    key.NewBinding(key.WithKeys("n", "N")),
		Accept:  key.NewBinding(key.WithKeys("enter")),
		Escape:  key.NewBinding(key.WithKeys("esc")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Save, k.Clear, k.Open, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Save, k.Clear, k.Open, k.Quit},
		{k.FocusInput, k.FocusControls, k.ScrollUp},
	}
}

// focusHelp is the short help shown for the current focus.
type focusHelp struct {
	keys  KeyMap
	focus Focus
}

func (h focusHelp) ShortHelp() []key.Binding {
	b := h.keys.ShortHelp()
	if h.focus == FocusInput {
		return append(b, h.keys.FocusControls)
	}
	return append(b, h.keys.FocusInput, h.keys.ScrollUp)
}

func (h focusHelp) FullHelp() [][]key.Binding {
	return h.keys.FullHelp()
}
