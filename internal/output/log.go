// Package output provides terminal output utilities: the global logger,
// styles, trees, tables and machine-readable report encoding.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{})
	logCfg LogConfig
	logOut io.Writer = os.Stderr
)

// LogConfig controls logger setup.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and timestamps.
	Verbose bool

	// Timestamps overrides timestamp reporting when Verbose is off.
	// nil means on.
	Timestamps *bool
}

func (c LogConfig) options() log.Options {
	opts := log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: c.Timestamps == nil || *c.Timestamps,
		TimeFormat:      "15:04:05",
	}
	if c.Verbose {
		opts.Level = log.DebugLevel
		opts.ReportTimestamp = true
		opts.ReportCaller = true
	}
	return opts
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	logCfg = cfg
	logger = log.NewWithOptions(logOut, cfg.options())
}

// SetLogWriter redirects log output, keeping the current configuration.
func SetLogWriter(w io.Writer) {
	logOut = w
	SetupLogging(logCfg)
}

// ModuleLogger returns a child logger prefixed with a module name.
func ModuleLogger(name string) *log.Logger {
	return logger.WithPrefix(StyleNoun.Render("m:" + name))
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
}
