// FILE: logship/src/internal/buffer/buffer.go
package buffer

import (
	"sync"

	"logship/src/internal/core"
)

// Buffer is an ordered, mutex-guarded collection of pending log entries.
// Insertion order is chronological order. Entries leave the buffer only through Drain.
type Buffer struct {
	mu       sync.Mutex
	entries  []core.LogEntry
	maxLevel core.Level
	hasMax   bool
}

// New creates an empty buffer with room for sizeHint entries.
func New(sizeHint int) *Buffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Buffer{
		entries: make([]core.LogEntry, 0, sizeHint),
	}
}

// Append adds an entry at the end and returns the new length.
func (b *Buffer) Append(entry core.LogEntry) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entry)
	if !b.hasMax || entry.Level > b.maxLevel {
		b.maxLevel = entry.Level
		b.hasMax = true
	}
	return len(b.entries)
}

// Drain removes and returns the whole content, leaving the buffer empty.
// It returns nil when the buffer is empty.
func (b *Buffer) Drain() []core.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return nil
	}

	batch := b.entries
	b.entries = make([]core.LogEntry, 0, cap(batch))
	b.hasMax = false
	return batch
}

// Restore puts a previously drained batch back in front of any entries
// appended since the drain, keeping the failed (older) entries first.
func (b *Buffer) Restore(batch []core.LogEntry) {
	if len(batch) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	merged := make([]core.LogEntry, 0, len(batch)+len(b.entries))
	merged = append(merged, batch...)
	merged = append(merged, b.entries...)
	b.entries = merged

	b.hasMax = false
	for _, entry := range b.entries {
		if !b.hasMax || entry.Level > b.maxLevel {
			b.maxLevel = entry.Level
			b.hasMax = true
		}
	}
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// MaxLevel returns the highest level currently buffered.
// The second result is false when the buffer is empty.
func (b *Buffer) MaxLevel() (core.Level, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxLevel, b.hasMax
}
