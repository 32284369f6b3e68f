package keylog

// Log is the ordered, append-only sequence of records owned by a session.
// Its length only grows until Clear is called.
type Log interface {
	Append(r Record)
	// Snapshot returns a copy of the records in capture order.
	Snapshot() []Record
	Clear()
	Len() int
}

// MemoryLog is the in-memory Log used by a running session. It is not safe
// for concurrent use; the UI dispatch goroutine is its only caller.
type MemoryLog struct {
	records []Record
}

// NewMemoryLog returns an empty log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(r Record) {
	l.records = append(l.records, r)
}

func (l *MemoryLog) Snapshot() []Record {
	if len(l.records) == 0 {
		return nil
	}
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *MemoryLog) Clear() {
	l.records = nil
}

func (l *MemoryLog) Len() int {
	return len(l.records)
}
