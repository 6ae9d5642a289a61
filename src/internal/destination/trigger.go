// FILE: logship/src/internal/destination/trigger.go
package destination

import "logship/src/internal/core"

// Reason names what caused a flush attempt.
type Reason string

const (
	ReasonSeverity  Reason = "severity"
	ReasonThreshold Reason = "threshold"
	ReasonLifecycle Reason = "lifecycle"
	ReasonInterval  Reason = "interval"
	ReasonManual    Reason = "manual"
	ReasonClose     Reason = "close"
)

// ShouldFlush decides, after an append, whether the buffer must be flushed.
// The severity override is checked before the size threshold; the first match wins.
// maxLevel is only meaningful when hasLevel is true.
func ShouldFlush(length, maxEntries int, maxLevel core.Level, hasLevel bool, minFlushLevel core.Level) (Reason, bool) {
	if minFlushLevel != core.LevelNone && hasLevel && maxLevel >= minFlushLevel {
		return ReasonSeverity, true
	}
	if length > maxEntries {
		return ReasonThreshold, true
	}
	return "", false
}
