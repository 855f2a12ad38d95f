package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLogger_WithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"component": "card-grid"}).With("listings", 12).Info("rendered")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "rendered", entry["message"])
	require.Equal(t, "card-grid", entry["component"])
	require.Equal(t, float64(12), entry["listings"])
	require.Equal(t, "info", entry["level"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "WARN", Writer: buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Debug("hidden")
	require.Equal(t, "", strings.TrimSpace(buf.String()))

	_, err = New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.Error(errors.New("boom"), "query failed")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "query failed", entry["message"])
}

func TestLogger_NilAndContext(t *testing.T) {
	t.Parallel()

	var nilLog *Logger
	require.NotPanics(t, func() {
		nilLog.Info("x")
		nilLog.Error(nil, "x")
		require.Nil(t, nilLog.With("a", 1))
	})

	require.NotNil(t, FromContext(context.Background()))

	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)
	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("from ctx")
	require.Contains(t, buf.String(), "from ctx")
}
