package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setHumanOutput sets the --human flag value for the duration of a test.
func setHumanOutput(t *testing.T, v bool) {
	t.Helper()
	old := humanOutput
	humanOutput = v
	t.Cleanup(func() { humanOutput = old })
}

func TestReportDeleted_JSON(t *testing.T) {
	setHumanOutput(t, false)

	tests := []struct {
		name string
		n    int64
		note string
	}{
		{"declined", 0, "Nothing deleted."},
		{"no match", 0, "No matching movies found."},
		{"deleted", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, reportDeleted(&buf, tt.n, tt.note))

			var resp CountResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp), "output is not JSON: %s", buf.String())
			require.NotNil(t, resp.Deleted)
			assert.Equal(t, tt.n, *resp.Deleted)
			assert.Nil(t, resp.Updated)
		})
	}
}

func TestReportDeleted_Human(t *testing.T) {
	setHumanOutput(t, true)

	var buf bytes.Buffer
	require.NoError(t, reportDeleted(&buf, 0, "Nothing deleted."))
	assert.Equal(t, "Nothing deleted.\n", buf.String())

	buf.Reset()
	require.NoError(t, reportDeleted(&buf, 2, ""))
	assert.Equal(t, "Deleted 2 movies\n", buf.String())
}

func TestConfirmDelete(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", "y\n", true, false},
		{"yes word uppercase", " YES \n", true, false},
		{"no", "n\n", false, false},
		{"anything else", "maybe\n", false, false},
		{"no trailing newline", "y", true, false},
		{"no input", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := confirmDelete(strings.NewReader(tt.input), &prompt, 4)
			if tt.wantErr {
				assert.ErrorIs(t, err, io.EOF)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete 4 movies? (y/n): ", prompt.String())
		})
	}
}
