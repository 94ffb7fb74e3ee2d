// Package jsonlog writes leveled log entries as JSON lines.
package jsonlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log entry.
type Level int8

const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
	LevelOff
)

// String translates the level numbers into a human-readable representation.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

// ParseLevel maps a config value (info, error, fatal, off) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "off", "":
		return LevelOff, nil
	default:
		return LevelOff, fmt.Errorf("unknown log level: %s", s)
	}
}

// Logger writes JSON log entries at or above a minimum level.
type Logger struct {
	mu       sync.Mutex // Ensures atomic writes.
	out      io.Writer
	minLevel Level
	now      func() time.Time
}

// New returns a Logger that writes entries at or above minLevel to out.
func New(out io.Writer, minLevel Level) *Logger {
	return &Logger{
		out:      out,
		minLevel: minLevel,
		now:      time.Now,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelOff)
}

// PrintInfo logs message at INFO with optional properties.
func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.print(LevelInfo, message, properties)
}

// PrintError logs err at ERROR with optional properties.
func (l *Logger) PrintError(err error, properties map[string]string) {
	l.print(LevelError, err.Error(), properties)
}

// PrintFatal logs err at FATAL and exits the process.
func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.print(LevelFatal, err.Error(), properties)
	os.Exit(1)
}

func (l *Logger) print(level Level, message string, properties map[string]string) (int, error) {
	if level < l.minLevel {
		return 0, nil
	}

	aux := struct {
		Level      string            `json:"level"`
		Time       string            `json:"time"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties,omitempty"`
		Trace      string            `json:"trace,omitempty"`
	}{
		Level:      level.String(),
		Time:       l.now().UTC().Format(time.RFC3339),
		Message:    message,
		Properties: properties,
	}

	// Only fatal entries carry a stack trace; errors in a CLI are expected.
	if level >= LevelFatal {
		aux.Trace = string(debug.Stack())
	}

	line, err := json.Marshal(aux)
	if err != nil {
		line = []byte(LevelError.String() + ": unable to marshal log message: " + err.Error())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Write(append(line, '\n'))
}

// Write satisfies io.Writer. Entries written this way are logged at ERROR.
func (l *Logger) Write(message []byte) (n int, err error) {
	return l.print(LevelError, strings.TrimRight(string(message), "\n"), nil)
}
