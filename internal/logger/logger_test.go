package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"uns-resolution/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(config.LoggerConfig{Level: "debug", Encoding: "json"}, &buf)
	require.NoError(t, err)

	l.Named("UNSLayer").Debug("resolved")
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "UNSLayer", entry["logger"])
	assert.Equal(t, "resolved", entry["msg"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(config.LoggerConfig{Level: "loud"}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")
	require.NoError(t, l.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSink(t *testing.T) {
	assert.Equal(t, os.Stderr, sink("stderr"))
	assert.Equal(t, io.Discard, sink("discard"))
	assert.Equal(t, os.Stdout, sink(""))
}
