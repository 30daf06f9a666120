package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level slog.Level) (*ChanneledLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := NewChanneledLogger(&LoggerConfig{
		Output:       &buf,
		JSONFormat:   true,
		DefaultLevel: level,
	})
	require.NoError(t, err)
	return logger, &buf
}

func TestChannelAttributeIsAttached(t *testing.T) {
	logger, buf := newBufferLogger(t, slog.LevelInfo)

	logger.Leads().Info("lead stored", "id", "01H")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "leads", entry["channel"])
	assert.Equal(t, "lead stored", entry["msg"])
}

func TestWithContextAddsRequestID(t *testing.T) {
	logger, buf := newBufferLogger(t, slog.LevelInfo)
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")

	logger.WithContext(ChannelHTTP, ctx).Info("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["requestId"])
	assert.Equal(t, "http", entry["channel"])
}

func TestSetChannelLevel(t *testing.T) {
	logger, buf := newBufferLogger(t, slog.LevelInfo)

	logger.Database().Debug("hidden")
	assert.Zero(t, buf.Len())

	require.NoError(t, logger.SetChannelLevel(ChannelDatabase, slog.LevelDebug))
	logger.Database().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, "DEBUG", logger.GetChannelLevels()["database"])
	assert.Equal(t, "INFO", logger.GetChannelLevels()["auth"])

	assert.Error(t, logger.SetChannelLevel(Channel("nope"), slog.LevelDebug))
}

func TestMaskIdentifier(t *testing.T) {
	assert.Equal(t, "****", MaskIdentifier("abc"))
	assert.Equal(t, "ad****om", MaskIdentifier("admin@example.com"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
