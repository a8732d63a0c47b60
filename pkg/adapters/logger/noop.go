package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/camrecord/pkg/ports"
)

// NoopLogger discards everything. Used for --quiet and as the default
// of every component that takes an optional logger.
type NoopLogger struct{}

// NewNoop creates a new no-op logger.
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...interface{}) {}
func (l *NoopLogger) Info(msg string, args ...interface{})  {}
func (l *NoopLogger) Warn(msg string, args ...interface{})  {}
func (l *NoopLogger) Error(msg string, args ...interface{}) {}

// WithComponent returns the same logger.
func (l *NoopLogger) WithComponent(component string) ports.Logger {
	return l
}

// Entry is one message kept by a MemoryLogger.
type Entry struct {
	Level     ports.LogLevel
	Component string
	// Key is the untranslated format string.
	Key     string
	Message string
}

// MemoryLogger keeps every message in memory. Components derived with
// WithComponent share the same buffer.
type MemoryLogger struct {
	component string
	buf       *memoryBuffer
}

type memoryBuffer struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty MemoryLogger.
func NewMemory() *MemoryLogger {
	return &MemoryLogger{buf: &memoryBuffer{}}
}

func (l *MemoryLogger) add(level ports.LogLevel, msg string, args []interface{}) {
	e := Entry{Level: level, Component: l.component, Key: msg, Message: fmt.Sprintf(msg, args...)}
	l.buf.mu.Lock()
	l.buf.entries = append(l.buf.entries, e)
	l.buf.mu.Unlock()
}

func (l *MemoryLogger) Debug(msg string, args ...interface{}) { l.add(ports.LevelDebug, msg, args) }
func (l *MemoryLogger) Info(msg string, args ...interface{})  { l.add(ports.LevelInfo, msg, args) }
func (l *MemoryLogger) Warn(msg string, args ...interface{})  { l.add(ports.LevelWarn, msg, args) }
func (l *MemoryLogger) Error(msg string, args ...interface{}) { l.add(ports.LevelError, msg, args) }

// WithComponent returns a logger writing to the same buffer.
func (l *MemoryLogger) WithComponent(component string) ports.Logger {
	name := component
	if l.component != "" {
		name = l.component + "/" + component
	}
	return &MemoryLogger{component: name, buf: l.buf}
}

// Entries returns a copy of everything logged so far.
func (l *MemoryLogger) Entries() []Entry {
	l.buf.mu.Lock()
	defer l.buf.mu.Unlock()
	out := make([]Entry, len(l.buf.entries))
	copy(out, l.buf.entries)
	return out
}

// Count returns how many entries used the given format key.
func (l *MemoryLogger) Count(key string) int {
	n := 0
	for _, e := range l.Entries() {
		if e.Key == key {
			n++
		}
	}
	return n
}

// Contains reports whether any formatted message contains substr.
func (l *MemoryLogger) Contains(substr string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
