// FILE: logship/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"logship/src/internal/config"
	"logship/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONEncoder produces a JSON array of structured objects.
type JSONEncoder struct {
	config *config.JSONFormatOptions
	logger *log.Logger
}

// NewJSONEncoder creates a new JSON encoder from configuration options.
func NewJSONEncoder(opts *config.JSONFormatOptions, logger *log.Logger) (*JSONEncoder, error) {
	resolved := config.JSONFormatOptions{
		TimestampField: "timestamp",
		LevelField:     "level",
		SourceField:    "source",
		MessageField:   "message",
	}
	if opts != nil {
		resolved.Pretty = opts.Pretty
		if opts.TimestampField != "" {
			resolved.TimestampField = opts.TimestampField
		}
		if opts.LevelField != "" {
			resolved.LevelField = opts.LevelField
		}
		if opts.SourceField != "" {
			resolved.SourceField = opts.SourceField
		}
		if opts.MessageField != "" {
			resolved.MessageField = opts.MessageField
		}
	}

	return &JSONEncoder{
		config: &resolved,
		logger: logger,
	}, nil
}

// object builds the map for a single entry.
func (e *JSONEncoder) object(entry core.LogEntry) (map[string]any, error) {
	output := make(map[string]any)

	// Metadata first, it always wins over merged keys
	output[e.config.TimestampField] = entry.Time.Format(time.RFC3339Nano)
	output[e.config.LevelField] = entry.Level.String()
	output[e.config.SourceField] = entry.Source

	isMeta := func(k string) bool {
		return k == e.config.TimestampField || k == e.config.LevelField || k == e.config.SourceField
	}

	// Try to parse the message as a JSON object
	var msgData map[string]any
	if err := json.Unmarshal([]byte(entry.Message), &msgData); err == nil && msgData != nil {
		for k, v := range msgData {
			if !isMeta(k) {
				output[k] = v
			}
		}

		if _, hasTime := msgData[e.config.TimestampField]; hasTime {
			e.logger.Debug("msg", "Overriding timestamp from JSON message",
				"component", "json_encoder",
				"original", msgData[e.config.TimestampField],
				"logship", output[e.config.TimestampField])
		}
	} else {
		output[e.config.MessageField] = entry.Message
	}

	if len(entry.Fields) > 0 {
		var fields map[string]any
		if err := json.Unmarshal(entry.Fields, &fields); err != nil {
			return nil, fmt.Errorf("invalid fields: %w", err)
		}
		if fields == nil {
			return nil, fmt.Errorf("invalid fields: not a JSON object")
		}
		// Merge additional fields, but don't override existing
		for k, v := range fields {
			if _, exists := output[k]; !exists {
				output[k] = v
			}
		}
	}

	return output, nil
}

// Encode transforms the batch into a single JSON array.
func (e *JSONEncoder) Encode(entries []core.LogEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	batch := make([]map[string]any, 0, len(entries))
	for i, entry := range entries {
		obj, err := e.object(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		batch = append(batch, obj)
	}

	var result []byte
	var err error
	if e.config.Pretty {
		result, err = json.MarshalIndent(batch, "", "  ")
	} else {
		result, err = json.Marshal(batch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return result, nil
}

// Name returns the encoder's type name.
func (e *JSONEncoder) Name() string {
	return "json"
}

// ContentType returns the payload MIME type.
func (e *JSONEncoder) ContentType() string {
	return "application/json"
}
