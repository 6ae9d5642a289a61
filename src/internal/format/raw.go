// FILE: logship/src/internal/format/raw.go
package format

import (
	"bytes"

	"logship/src/internal/core"

	"github.com/lixenwraith/log"
)

// Outputs log messages as-is, one per line
type RawEncoder struct {
	logger *log.Logger
}

// Creates a new raw encoder
func NewRawEncoder(logger *log.Logger) (*RawEncoder, error) {
	return &RawEncoder{
		logger: logger,
	}, nil
}

// Returns the messages joined by newlines, with a trailing newline
func (e *RawEncoder) Encode(entries []core.LogEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	var buf bytes.Buffer
	for _, entry := range entries {
		buf.WriteString(entry.Message)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Returns the encoder name
func (e *RawEncoder) Name() string {
	return "raw"
}

func (e *RawEncoder) ContentType() string {
	return "text/plain; charset=utf-8"
}
