// FILE: logship/src/internal/core/entry.go
package core

import (
	"encoding/json"
	"time"
)

// LogEntry is a single log record written to a destination.
// Entries are passed by value and never modified once created.
type LogEntry struct {
	Time    time.Time       `json:"time"`
	Level   Level           `json:"level"`
	Source  string          `json:"source,omitempty"`
	Message string          `json:"message"`
	Fields  json.RawMessage `json:"fields,omitempty"`
}

// NewEntry creates an entry, stamping the current time when ts is zero.
func NewEntry(message string, level Level, ts time.Time, fields json.RawMessage) LogEntry {
	if ts.IsZero() {
		ts = time.Now()
	}
	return LogEntry{
		Time:    ts,
		Level:   level,
		Message: message,
		Fields:  fields,
	}
}
