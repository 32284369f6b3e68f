package keylog

import (
	"fmt"
	"testing"
)

func TestMemoryLog_AppendPreservesOrder(t *testing.T) {
	l := NewMemoryLog()
	for i := 0; i < 5; i++ {
		l.Append(Record{Timestamp: fmt.Sprintf("t%d", i), KeySymbol: "a", CharRepr: "a"})
	}

	if l.Len() != 5 {
		t.Fatalf("Len = %d, want 5", l.Len())
	}
	snap := l.Snapshot()
	for i, r := range snap {
		if want := fmt.Sprintf("t%d", i); r.Timestamp != want {
			t.Errorf("position %d: Timestamp = %q, want %q", i, r.Timestamp, want)
		}
	}
}

func TestMemoryLog_DuplicatesAllowed(t *testing.T) {
	l := NewMemoryLog()
	r := Record{Timestamp: "t", KeySymbol: "a", CharRepr: "a"}
	l.Append(r)
	l.Append(r)
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}

func TestMemoryLog_SnapshotIsCopy(t *testing.T) {
	l := NewMemoryLog()
	l.Append(Record{Timestamp: "t1", KeySymbol: "a", CharRepr: "a"})

	snap := l.Snapshot()
	snap[0].KeySymbol = "mutated"

	again := l.Snapshot()
	if len(again) != 1 {
		t.Fatalf("log length changed through snapshot: %d", len(again))
	}
	if again[0].KeySymbol != "a" {
		t.Errorf("log record mutated through snapshot: %q", again[0].KeySymbol)
	}
}

func TestMemoryLog_Clear(t *testing.T) {
	l := NewMemoryLog()
	l.Append(Record{Timestamp: "t1"})
	l.Append(Record{Timestamp: "t2"})
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", l.Len())
	}
	if snap := l.Snapshot(); len(snap) != 0 {
		t.Errorf("Snapshot after Clear = %v, want empty", snap)
	}

	l.Append(Record{Timestamp: "t3"})
	if l.Len() != 1 {
		t.Errorf("Len after re-append = %d, want 1", l.Len())
	}
}

func TestMemoryLog_ImplementsLog(t *testing.T) {
	var _ Log = NewMemoryLog()
}
