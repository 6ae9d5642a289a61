// FILE: logship/src/internal/format/format.go
package format

import (
	"errors"
	"fmt"

	"logship/src/internal/config"
	"logship/src/internal/core"

	"github.com/lixenwraith/log"
)

// ErrEmptyBatch is returned when an encoder is asked to encode zero entries.
var ErrEmptyBatch = errors.New("empty batch")

// Encoder transforms a batch of entries into one wire payload.
// Implementations are stateless and safe for concurrent use.
type Encoder interface {
	// Encode serializes the whole batch. A single bad entry fails the batch.
	Encode(entries []core.LogEntry) ([]byte, error)

	// Name returns the encoder type name
	Name() string

	// ContentType returns the MIME type of the payload
	ContentType() string
}

// New creates an Encoder based on the provided configuration.
func New(name string, cfg *config.FormatConfig, logger *log.Logger) (Encoder, error) {
	// Default to json if no format specified
	if name == "" {
		name = "json"
	}
	if cfg == nil {
		cfg = &config.FormatConfig{Type: name}
	}

	switch name {
	case "json":
		return NewJSONEncoder(cfg.JSON, logger)
	case "syslog":
		return NewSyslogEncoder(cfg.Syslog, logger)
	case "txt":
		return NewTxtEncoder(cfg.Txt, logger)
	case "raw":
		return NewRawEncoder(logger)
	default:
		return nil, fmt.Errorf("unknown encoder type: %s", name)
	}
}
