// FILE: logship/src/internal/format/syslog.go
package format

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"logship/src/internal/config"
	"logship/src/internal/core"

	"github.com/lixenwraith/log"
)

const defaultSyslogFacility = 1 // user-level messages

// SyslogEncoder produces BSD-style syslog lines with RFC 3339 timestamps:
// <PRI>TIMESTAMP HOST APP: MESSAGE
type SyslogEncoder struct {
	facility int
	hostname string
	appName  string
	logger   *log.Logger
}

// NewSyslogEncoder creates a syslog encoder. Hostname defaults to os.Hostname().
func NewSyslogEncoder(opts *config.SyslogFormatOptions, logger *log.Logger) (*SyslogEncoder, error) {
	e := &SyslogEncoder{
		facility: defaultSyslogFacility,
		logger:   logger,
	}

	if opts != nil {
		if opts.Facility < 0 || opts.Facility > 23 {
			return nil, fmt.Errorf("syslog facility must be 0-23: %d", opts.Facility)
		}
		e.facility = int(opts.Facility)
		e.hostname = opts.Hostname
		e.appName = opts.AppName
	}

	if e.hostname == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "-"
		}
		e.hostname = host
	}

	return e, nil
}

// Encode writes one line per entry, each terminated by a newline.
func (e *SyslogEncoder) Encode(entries []core.LogEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	var buf bytes.Buffer
	for i, entry := range entries {
		if strings.ContainsAny(entry.Message, "\r\n") {
			return nil, fmt.Errorf("entry %d: message contains a line break", i)
		}

		app := e.appName
		if app == "" {
			app = entry.Source
		}
		if app == "" {
			app = core.DefaultSource
		}

		pri := e.facility*8 + entry.Level.Syslog()

		buf.WriteByte('<')
		buf.WriteString(strconv.Itoa(pri))
		buf.WriteByte('>')
		buf.WriteString(entry.Time.Format(time.RFC3339))
		buf.WriteByte(' ')
		buf.WriteString(e.hostname)
		buf.WriteByte(' ')
		buf.WriteString(app)
		buf.WriteString(": ")
		buf.WriteString(entry.Message)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func (e *SyslogEncoder) Name() string {
	return "syslog"
}

func (e *SyslogEncoder) ContentType() string {
	return "text/plain; charset=utf-8"
}
