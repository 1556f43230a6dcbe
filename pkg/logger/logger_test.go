package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "info", Format: "json"})

	log.Warn("film rejected", map[string]any{"reason": "description too long", "film_id": 3})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "film rejected", entry["msg"])
	require.Equal(t, "description too long", entry["reason"])
	require.EqualValues(t, 3, entry["film_id"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "error", Format: "text"})

	log.Info("skipped", nil)
	log.Debug("skipped too", nil)
	require.Zero(t, buf.Len())

	log.Error("kept", map[string]any{"err": "boom"})
	require.Contains(t, buf.String(), "kept")
	require.Contains(t, buf.String(), "err=boom")
}
