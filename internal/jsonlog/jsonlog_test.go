package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var entries []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e), "invalid JSON line %q", line)
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_PrintInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.PrintInfo("import finished", map[string]string{"inserted": "2"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "INFO", e.Level)
	assert.Equal(t, "import finished", e.Message)
	assert.Equal(t, "2026-01-02T03:04:05Z", e.Time)
	assert.Equal(t, "2", e.Properties["inserted"])
	assert.Empty(t, e.Trace, "INFO entry has a trace")
}

func TestLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)

	l.PrintInfo("dropped", nil)
	l.PrintError(errors.New("kept"), nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelOff)

	l.PrintInfo("a", nil)
	l.PrintError(errors.New("b"), nil)

	assert.Zero(t, buf.Len(), "wrote %q with LevelOff", buf.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()

	n, err := l.Write([]byte("ignored"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLogger_Write(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	_, err := l.Write([]byte("raw message\n"))
	require.NoError(t, err)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, "raw message", entries[0].Message)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"info", LevelInfo, false},
		{"ERROR", LevelError, false},
		{" fatal ", LevelFatal, false},
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"debug", LevelOff, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "ParseLevel(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "ParseLevel(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.input)
	}
}
