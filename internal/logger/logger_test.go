package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatJSON, "info")

	l.Info("user logged in", slog.Int64("user_id", 7))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "user logged in", entry["msg"])
	require.Equal(t, "INFO", entry["level"])
	require.EqualValues(t, 7, entry["user_id"])
}

func TestNew_TextOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "TEXT", "warn")

	l.Info("dropped")
	require.Zero(t, buf.Len())

	l.Warn("kept")
	require.True(t, strings.Contains(buf.String(), "msg=kept"))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
