// FILE: logship/src/internal/core/level_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_Ordering(t *testing.T) {
	assert.Less(t, LevelVerbose, LevelDebug)
	assert.Less(t, LevelDebug, LevelInfo)
	assert.Less(t, LevelInfo, LevelWarning)
	assert.Less(t, LevelWarning, LevelError)
	assert.Less(t, LevelError, LevelNone)
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected Level
	}{
		{"verbose", LevelVerbose},
		{"TRACE", LevelVerbose},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarning},
		{"warning", LevelWarning},
		{"error", LevelError},
		{"fatal", LevelError},
		{"none", LevelNone},
		{"", LevelNone},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseLevel("loud")
		assert.Error(t, err)
	})
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	require.NoError(t, l.UnmarshalText([]byte("warning")))
	assert.Equal(t, LevelWarning, l)

	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "WARNING", string(text))
}

func TestLevel_Syslog(t *testing.T) {
	assert.Equal(t, 3, LevelError.Syslog())
	assert.Equal(t, 4, LevelWarning.Syslog())
	assert.Equal(t, 6, LevelInfo.Syslog())
	assert.Equal(t, 7, LevelDebug.Syslog())
	assert.Equal(t, 7, LevelVerbose.Syslog())
}

func TestDetectLevel(t *testing.T) {
	assert.Equal(t, LevelError, DetectLevel("2024-01-01 [ERROR] disk full"))
	assert.Equal(t, LevelWarning, DetectLevel("warning: low memory"))
	assert.Equal(t, LevelDebug, DetectLevel("DBG: cache miss"))
	assert.Equal(t, LevelInfo, DetectLevel("plain line"))
}
