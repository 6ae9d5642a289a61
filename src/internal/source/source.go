// FILE: logship/src/internal/source/source.go
package source

import (
	"context"
	"time"

	"logship/src/internal/core"
)

// Sink receives entries read by a source.
type Sink interface {
	WriteEntry(entry core.LogEntry)
}

// Source is an input line stream feeding a sink.
type Source interface {
	// Begins reading in the background
	Start(ctx context.Context) error

	// Closed when the input is exhausted or the source stopped
	Done() <-chan struct{}

	// Gracefully shuts down the source
	Stop()

	// Returns source statistics
	GetStats() SourceStats
}

// Contains statistics about a source
type SourceStats struct {
	Type          string
	TotalEntries  uint64
	StartTime     time.Time
	LastEntryTime time.Time
	Details       map[string]any
}

// lineEntry converts a raw input line, detecting its level from text markers.
func lineEntry(line, tag string) core.LogEntry {
	return core.LogEntry{
		Time:    time.Now(),
		Source:  tag,
		Level:   core.DetectLevel(line),
		Message: line,
	}
}
