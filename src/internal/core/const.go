// FILE: logship/src/internal/core/const.go
package core

// Destination defaults
const (
	DefaultMaxEntries    = 100
	DefaultSendTimeoutMS = 10000
	DefaultSource        = "logship"
)

// Input limits
const MaxLineLength = 1 * 1024 * 1024 // 1MB max per log line
