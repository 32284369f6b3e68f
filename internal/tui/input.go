package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/keyrec/internal/recorder"
)

// KeyObserver receives every key delivered to the focused input surface.
type KeyObserver interface {
	ObserveKey(k recorder.KeyStroke) bool
}

// inputSurface is the only place key events are observed. It notifies its
// single subscriber of keys it receives while focused, then lets the
// textarea handle them as ordinary editing.
type inputSurface struct {
	area     textarea.Model
	observer KeyObserver
}

func newInputSurface(height int) inputSurface {
	ta := textarea.New()
	ta.Placeholder = "Type here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(height)
	return inputSurface{area: ta}
}

// Subscribe registers the key observer. Only one subscriber is allowed.
func (s *inputSurface) Subscribe(o KeyObserver) {
	if s.observer != nil {
		panic("tui: input surface already has a key subscriber")
	}
	s.observer = o
}

func (s *inputSurface) Focus() tea.Cmd {
	return s.area.Focus()
}

func (s *inputSurface) Blur() {
	s.area.Blur()
}

func (s inputSurface) Focused() bool {
	return s.area.Focused()
}

func (s *inputSurface) SetSize(w, h int) {
	s.area.SetWidth(w)
	s.area.SetHeight(h)
}

// HandleKey delivers a key to the surface. Unfocused surfaces ignore keys
// entirely, so the observer never sees them.
func (s *inputSurface) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !s.area.Focused() {
		return nil
	}
	if s.observer != nil {
		s.observer.ObserveKey(translateKey(msg))
	}
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	return cmd
}

// Update forwards non-key messages such as cursor blinks.
func (s *inputSurface) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	return cmd
}

func (s inputSurface) View() string {
	return s.area.View()
}

// keySymbols maps special keys to X11-style key names.
var keySymbols = map[tea.KeyType]string{
	tea.KeyEnter:     "Return",
	tea.KeyBackspace: "BackSpace",
	tea.KeyTab:       "Tab",
	tea.KeyShiftTab:  "ISO_Left_Tab",
	tea.KeyEsc:       "Escape",
	tea.KeyUp:        "Up",
	tea.KeyDown:      "Down",
	tea.KeyLeft:      "Left",
	tea.KeyRight:     "Right",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "Prior",
	tea.KeyPgDown:    "Next",
	tea.KeyDelete:    "Delete",
	tea.KeyInsert:    "Insert",
	tea.KeyF1:        "F1",
	tea.KeyF2:        "F2",
	tea.KeyF3:        "F3",
	tea.KeyF4:        "F4",
	tea.KeyF5:        "F5",
	tea.KeyF6:        "F6",
	tea.KeyF7:        "F7",
	tea.KeyF8:        "F8",
	tea.KeyF9:        "F9",
	tea.KeyF10:       "F10",
	tea.KeyF11:       "F11",
	tea.KeyF12:       "F12",
}

// translateKey converts a terminal key message into a logical key symbol
// and the text the key would insert.
func translateKey(msg tea.KeyMsg) recorder.KeyStroke {
	var k recorder.KeyStroke

	switch {
	case msg.Type == tea.KeyRunes:
		k.Text = string(msg.Runes)
		if msg.Paste || len(msg.Runes) != 1 {
			k.Symbol = "Paste"
		} else {
			k.Symbol = k.Text
		}
	case msg.Type == tea.KeySpace:
		k.Symbol = "space"
		k.Text = " "
	case msg.Type == tea.KeyCtrlJ:
		k.Symbol = "Control-j"
		k.Text = "\n"
	default:
		if name, ok := keySymbols[msg.Type]; ok {
			k.Symbol = name
		} else {
			name := strings.TrimPrefix(msg.String(), "alt+")
			if rest, ok := strings.CutPrefix(name, "ctrl+"); ok {
				name = "Control-" + rest
			}
			k.Symbol = name
		}
	}

	if msg.Alt {
		k.Symbol = "Alt-" + k.Symbol
	}
	return k
}
