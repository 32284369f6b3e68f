// Package recorder owns the state of one recording session: the capture
// gate, the event log and the display panel.
package recorder

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jinzhu/inflection"

	"github.com/nixlim/keyrec/internal/debuglog"
	"github.com/nixlim/keyrec/internal/display"
	"github.com/nixlim/keyrec/internal/keylog"
	"github.com/nixlim/keyrec/internal/logfile"
)

// ErrNothingToSave is returned by Save when the event log is empty.
var ErrNothingToSave = errors.New("no recorded events to save")

const (
	msgStarted = "Recording started. Focus the input area and type..."
	msgStopped = "Recording stopped."
	msgCleared = "Cleared recorded events."
)

// KeyStroke is a key observed on the input surface, already translated to
// a logical key symbol and the text it would insert (empty if none).
type KeyStroke struct {
	Symbol string
	Text   string
}

// Session is created once at startup and driven from the UI goroutine
// only. It is not safe for concurrent use.
type Session struct {
	log       keylog.Log
	panel     *display.Panel
	recording bool
	now       func() time.Time
	logger    debuglog.Logger
	closed    bool
}

type Option func(*Session)

// WithClock overrides the time source used for record and info timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l debuglog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithLog(l keylog.Log) Option {
	return func(s *Session) { s.log = l }
}

// New returns an idle session whose panel keeps at most scrollback lines.
func New(scrollback int, opts ...Option) *Session {
	s := &Session{
		log:    keylog.NewMemoryLog(),
		panel:  display.NewPanel(scrollback),
		now:    time.Now,
		logger: debuglog.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Recording() bool { return s.recording }

// CanStart reports whether the Start control is enabled.
func (s *Session) CanStart() bool { return !s.recording }

// CanStop reports whether the Stop control is enabled.
func (s *Session) CanStop() bool { return s.recording }

// Start opens the capture gate. It returns false and changes nothing when
// recording is already active.
func (s *Session) Start() bool {
	if s.recording {
		return false
	}
	s.recording = true
	s.panel.AppendInfo(s.now(), msgStarted)
	s.logger.Log("start", nil)
	return true
}

// Stop closes the capture gate. It returns false and changes nothing when
// recording is not active.
func (s *Session) Stop() bool {
	if !s.recording {
		return false
	}
	s.recording = false
	s.panel.AppendInfo(s.now(), msgStopped)
	s.logger.Log("stop", map[string]string{"events": strconv.Itoa(s.log.Len())})
	return true
}

// ObserveKey is the input surface subscriber. While recording it appends
// exactly one record to the log and one line to the panel; otherwise the
// key is dropped.
func (s *Session) ObserveKey(k KeyStroke) bool {
	if !s.recording {
		return false
	}
	r := keylog.NewRecord(s.now(), k.Symbol, k.Text)
	s.log.Append(r)
	s.panel.AppendRecord(r)
	return true
}

// Events returns a copy of the recorded events in capture order.
func (s *Session) Events() []keylog.Record {
	return s.log.Snapshot()
}

func (s *Session) EventCount() int {
	return s.log.Len()
}

// PanelLines returns the display panel content oldest first.
func (s *Session) PanelLines() []display.Line {
	return s.panel.Lines()
}

// HasUnsaved reports whether exiting would discard recorded events. Events
// stay in the log after a save, so this is simply a non-empty log.
func (s *Session) HasUnsaved() bool {
	return s.log.Len() > 0
}

// Save appends every recorded event to path as one block and reports how
// many were written. The log is left intact so later saves accumulate.
func (s *Session) Save(path string) (int, error) {
	records := s.log.Snapshot()
	if len(records) == 0 {
		return 0, ErrNothingToSave
	}

	if err := logfile.AppendBlock(path, records, s.now()); err != nil {
		s.logger.Log("save_failed", map[string]string{"path": path, "error": err.Error()})
		return 0, err
	}

	n := len(records)
	s.panel.AppendInfo(s.now(), fmt.Sprintf("Saved %s to %s", CountEvents(n), filepath.Base(path)))
	s.logger.Log("save", map[string]string{"path": path, "events": strconv.Itoa(n)})
	return n, nil
}

// Open reads a previously saved file for viewing. Session state is not
// touched.
func (s *Session) Open(path string) (string, error) {
	content, err := logfile.ReadText(path)
	if err != nil {
		s.logger.Log("open_failed", map[string]string{"path": path, "error": err.Error()})
		return "", err
	}
	s.logger.Log("open", map[string]string{"path": path})
	return content, nil
}

// NeedsClearConfirmation is false only when there is nothing to clear.
func (s *Session) NeedsClearConfirmation() bool {
	return s.log.Len() > 0 || !s.panel.Empty()
}

// Clear empties the log and the panel, then notes the clear on the panel.
func (s *Session) Clear() {
	n := s.log.Len()
	s.log.Clear()
	s.panel.Clear()
	s.panel.AppendInfo(s.now(), msgCleared)
	s.logger.Log("clear", map[string]string{"events": strconv.Itoa(n)})
}

// Close records the end of the session. Only the first call logs.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.logger.Log("exit", map[string]string{"events": strconv.Itoa(s.log.Len())})
}

// CountEvents renders n with a correctly pluralised noun, e.g. "1 event".
func CountEvents(n int) string {
	noun := "event"
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return strconv.Itoa(n) + " " + noun
}
