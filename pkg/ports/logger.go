// Package ports defines the interfaces between the recording core and the
// devices, codecs, files and terminals it talks to.
package ports

import "fmt"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for per-frame and per-element details.
	LevelDebug LogLevel = iota
	// LevelInfo is for session progress.
	LevelInfo
	// LevelWarn is for recoverable problems such as a skipped frame.
	LevelWarn
	// LevelError is for failures that end a session or a command.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel.
// Unknown names yield LevelInfo and an error.
func ParseLogLevel(s string) (LogLevel, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "quiet":
		return LevelQuiet, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger abstracts logging operations with multi-language support.
// The msg parameter is a format string that doubles as the translation key.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a new Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
