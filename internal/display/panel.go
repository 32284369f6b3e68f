// Package display implements the read-only, append-only panel that mirrors
// captured key events and informational messages.
package display

import (
	"time"

	"github.com/nixlim/keyrec/internal/keylog"
)

// Kind distinguishes the two producers of panel lines.
type Kind int

const (
	KindEvent Kind = iota
	KindInfo
)

// Line is one rendered panel line.
type Line struct {
	Kind Kind
	Text string
}

// Panel is a bounded ring of display lines. Storage grows with use up to
// the capacity; once full the oldest line is evicted. The event log itself
// is never affected. Panel is not safe for concurrent use.
type Panel struct {
	items []Line
	cap   int
	head  int // index of the oldest line
	count int
}

// NewPanel creates a panel that keeps at most capacity lines. Capacity is
// clamped to at least 1.
func NewPanel(capacity int) *Panel {
	if capacity < 1 {
		capacity = 1
	}
	return &Panel{cap: capacity}
}

// AppendRecord adds the display line for r.
func (p *Panel) AppendRecord(r keylog.Record) {
	p.add(Line{Kind: KindEvent, Text: r.DisplayLine()})
}

// AppendInfo adds an informational line stamped with t. Info lines are
// never part of the event log.
func (p *Panel) AppendInfo(t time.Time, msg string) {
	p.add(Line{Kind: KindInfo, Text: FormatInfo(t, msg)})
}

// FormatInfo renders an informational message line.
func FormatInfo(t time.Time, msg string) string {
	return "[INFO] " + keylog.FormatTimestamp(t) + " | " + msg
}

func (p *Panel) add(l Line) {
	if p.count == p.cap {
		p.items[p.head] = l
		p.head = (p.head + 1) % p.cap
		return
	}
	// head stays at 0 until the ring first fills, so the next slot is
	// always the end of items.
	p.items = append(p.items, l)
	p.count++
}

// Lines returns the panel content oldest first.
func (p *Panel) Lines() []Line {
	if p.count == 0 {
		return nil
	}
	result := make([]Line, p.count)
	for i := 0; i < p.count; i++ {
		result[i] = p.items[(p.head+i)%p.cap]
	}
	return result
}

func (p *Panel) Len() int {
	return p.count
}

func (p *Panel) Cap() int {
	return p.cap
}

func (p *Panel) Empty() bool {
	return p.count == 0
}

// Clear removes every line.
func (p *Panel) Clear() {
	p.items = nil
	p.head = 0
	p.count = 0
}
