// Package debuglog writes optional JSONL diagnostics about session actions.
// Key content is never passed to a Logger.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger records session actions such as recording start/stop, saves and
// clears. Implementations must be safe for concurrent use.
type Logger interface {
	// Log records an action with optional string attributes.
	Log(action string, attrs map[string]string)
}

// NopLogger discards all log output. This is the default when no debug log
// path is configured.
type NopLogger struct{}

// Log is a no-op.
func (NopLogger) Log(string, map[string]string) {}

// logEntry is the JSON structure written by FileLogger.
type logEntry struct {
	Timestamp  string            `json:"ts"`
	SessionID  string            `json:"session"`
	Action     string            `json:"action"`
	Attributes map[string]string `json:"attrs,omitempty"`
}

// FileLogger writes one JSON object per line to an io.Writer.
type FileLogger struct {
	w         io.Writer
	sessionID string
	now       func() time.Time
	mu        sync.Mutex
}

// NewFileLogger creates a FileLogger that writes to w. Every line carries a
// fresh random session ID so runs appending to the same file can be told
// apart.
func NewFileLogger(w io.Writer) *FileLogger {
	return &FileLogger{
		w:         w,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

// SessionID returns the ID stamped on every line.
func (l *FileLogger) SessionID() string {
	return l.sessionID
}

// Log writes a JSON line for action.
func (l *FileLogger) Log(action string, attrs map[string]string) {
	entry := logEntry{
		Timestamp:  l.now().UTC().Format(time.RFC3339Nano),
		SessionID:  l.sessionID,
		Action:     action,
		Attributes: attrs,
	}

	l.write(entry)
}

// write serialises a logEntry as JSON and writes it as a single line.
// Serialisation errors are silently dropped so diagnostics never disrupt
// the UI.
func (l *FileLogger) write(entry logEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s\n", data)
}
