// FILE: logship/src/internal/format/txt.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"logship/src/internal/config"
	"logship/src/internal/core"

	"github.com/lixenwraith/log"
)

// Produces human-readable text logs using templates
type TxtEncoder struct {
	config   *config.TxtFormatOptions
	template *template.Template
	logger   *log.Logger
}

// Creates a new text encoder
func NewTxtEncoder(opts *config.TxtFormatOptions, logger *log.Logger) (*TxtEncoder, error) {
	resolved := config.TxtFormatOptions{
		Template:        config.DefaultTxtTemplate,
		TimestampFormat: config.DefaultTxtTimestampFormat,
	}
	if opts != nil {
		if opts.Template != "" {
			resolved.Template = opts.Template
		}
		if opts.TimestampFormat != "" {
			resolved.TimestampFormat = opts.TimestampFormat
		}
	}

	e := &TxtEncoder{
		config: &resolved,
		logger: logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(e.config.TimestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("log").Funcs(funcMap).Option("missingkey=error").Parse(e.config.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	e.template = tmpl
	return e, nil
}

// Renders every entry with the template, one line each
func (e *TxtEncoder) Encode(entries []core.LogEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	var buf bytes.Buffer
	for i, entry := range entries {
		data := map[string]any{
			"Timestamp": entry.Time,
			"Level":     entry.Level.String(),
			"Source":    entry.Source,
			"Message":   entry.Message,
			"Fields":    "",
		}
		if len(entry.Fields) > 0 {
			data["Fields"] = string(entry.Fields)
		}

		if err := e.template.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("entry %d: template execution failed: %w", i, err)
		}

		// Ensure newline at end of each entry
		if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes(), nil
}

// Returns the encoder name
func (e *TxtEncoder) Name() string {
	return "txt"
}

func (e *TxtEncoder) ContentType() string {
	return "text/plain; charset=utf-8"
}
