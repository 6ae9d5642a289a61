// FILE: logship/src/internal/core/level.go
package core

import (
	"fmt"
	"strings"
)

// Level is the ordered severity of a log entry.
type Level int

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError

	// LevelNone disables severity-based behavior. It sorts above every real level.
	LevelNone
)

var levelNames = map[Level]string{
	LevelVerbose: "VERBOSE",
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelError:   "ERROR",
	LevelNone:    "NONE",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= LevelVerbose && l <= LevelNone
}

// Syslog returns the RFC 5424 severity for the level.
func (l Level) Syslog() int {
	switch l {
	case LevelError:
		return 3
	case LevelWarning:
		return 4
	case LevelInfo:
		return 6
	default:
		return 7
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name to a Level. An empty name means LevelNone.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "verbose", "trace":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error", "fatal":
		return LevelError, nil
	case "none", "off", "disabled", "":
		return LevelNone, nil
	default:
		return LevelNone, fmt.Errorf("unknown log level: %s", name)
	}
}

// DetectLevel extracts a level from common text markers in a raw log line.
// Lines without a recognizable marker are treated as info.
func DetectLevel(line string) Level {
	patterns := []struct {
		patterns []string
		level    Level
	}{
		{[]string{"[ERROR]", "ERROR:", " ERROR ", "ERR:", "[ERR]", "FATAL:", "[FATAL]"}, LevelError},
		{[]string{"[WARN]", "WARN:", " WARN ", "WARNING:", "[WARNING]"}, LevelWarning},
		{[]string{"[INFO]", "INFO:", " INFO ", "[INF]", "INF:"}, LevelInfo},
		{[]string{"[DEBUG]", "DEBUG:", " DEBUG ", "[DBG]", "DBG:"}, LevelDebug},
		{[]string{"[TRACE]", "TRACE:", " TRACE ", "[VERBOSE]", "VERBOSE:"}, LevelVerbose},
	}

	upperLine := strings.ToUpper(line)
	for _, group := range patterns {
		for _, pattern := range group.patterns {
			if strings.Contains(upperLine, pattern) {
				return group.level
			}
		}
	}

	return LevelInfo
}
