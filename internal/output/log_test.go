package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// captureLog configures logging with cfg and returns the buffer it writes to.
func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetupLogging(cfg)
	SetLogWriter(&buf)
	t.Cleanup(func() {
		SetupLogging(LogConfig{})
		SetLogWriter(&bytes.Buffer{})
	})
	return &buf
}

var timestampPrefix = `^\d{2}:\d{2}:\d{2}`

func TestLogTimestamps(t *testing.T) {
	tests := []struct {
		name string
		cfg  LogConfig
		want bool
	}{
		{"default on", LogConfig{}, true},
		{"disabled", LogConfig{Timestamps: BoolPtr(false)}, false},
		{"verbose overrides", LogConfig{Verbose: true, Timestamps: BoolPtr(false)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t, tt.cfg)
			Warn("module stalled", "module", "app/main.js")
			line := strings.TrimSpace(buf.String())
			if tt.want {
				assert.Regexp(t, timestampPrefix, line)
			} else {
				assert.NotRegexp(t, timestampPrefix, line)
			}
			assert.Contains(t, line, "module stalled")
		})
	}
}

func TestLogLevels(t *testing.T) {
	buf := captureLog(t, LogConfig{Timestamps: BoolPtr(false)})
	Debug("hidden")
	Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	buf = captureLog(t, LogConfig{Verbose: true})
	Debug("resolving", "name", "./util")
	assert.Contains(t, buf.String(), "resolving")
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestSetLogWriterKeepsConfig(t *testing.T) {
	captureLog(t, LogConfig{Verbose: true})
	var other bytes.Buffer
	SetLogWriter(&other)
	Debug("still verbose")
	assert.Contains(t, other.String(), "still verbose")
}

func TestModuleLogger(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true})
	l := ModuleLogger("app/main.js")
	assert.Contains(t, StripANSI(l.GetPrefix()), "m:app/main.js")
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("factory done")
	assert.Contains(t, StripANSI(buf.String()), "m:app/main.js")
}
