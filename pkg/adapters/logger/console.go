// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/camrecord/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// output is shared by a logger and all of its component children so that
// lines written from the two capture goroutines never interleave.
type output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// ConsoleLogger logs messages to the console with color support.
type ConsoleLogger struct {
	level      ports.LogLevel
	component  string
	color      bool
	timestamps bool
	out        *output
}

// NewConsole creates a new console logger with the specified level.
// Color output is automatically enabled when stdout is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	l := NewConsoleWithWriters(level, os.Stdout, os.Stderr)
	l.color = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return l
}

// NewConsoleWithWriters creates a console logger writing to the given streams
// without color. Warnings and errors go to stderr.
func NewConsoleWithWriters(level ports.LogLevel, stdout, stderr io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level: level,
		out:   &output{stdout: stdout, stderr: stderr},
	}
}

// WithTimestamps enables a wall-clock prefix on every line.
func (l *ConsoleLogger) WithTimestamps(on bool) *ConsoleLogger {
	l.timestamps = on
	return l
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.level > ports.LevelDebug {
		return
	}
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.level > ports.LevelInfo {
		return
	}
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.level > ports.LevelWarn {
		return
	}
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.level > ports.LevelError {
		return
	}
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a new logger with the specified component name.
// Nested components are joined with a slash.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	name := component
	if l.component != "" {
		name = l.component + "/" + component
	}
	return &ConsoleLogger{
		level:      l.level,
		component:  name,
		color:      l.color,
		timestamps: l.timestamps,
		out:        l.out,
	}
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	translated := l10n.F(msg, args...)

	var line string
	if l.component != "" {
		if l.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, translated)
		}
	} else {
		line = translated
	}

	if l.color {
		switch level {
		case ports.LevelDebug:
			line = colorGray + line + colorReset
		case ports.LevelWarn:
			line = colorYellow + line + colorReset
		case ports.LevelError:
			line = colorRed + line + colorReset
		}
	}

	if l.timestamps {
		line = time.Now().Format("15:04:05.000") + " " + line
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if level >= ports.LevelWarn {
		fmt.Fprintln(l.out.stderr, line)
	} else {
		fmt.Fprintln(l.out.stdout, line)
	}
}
