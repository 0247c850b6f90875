package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerAdapter_RejectsUnknownLevel(t *testing.T) {
	_, err := NewLoggerAdapter(Config{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func TestNewLoggerAdapter_Development(t *testing.T) {
	log, err := NewLoggerAdapter(Config{Level: "debug", Development: true, OutputPaths: []string{"stdout"}})
	require.NoError(t, err)
	log.Debug("hello", "k", "v")
}

func TestLoggerAdapter_FieldsAreAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.WithField("request_id", "r-1").
		WithFields(map[string]any{"service": "social-post"}).
		Warn("Service returned validation error", "field", "keyword")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "r-1", ctx["request_id"])
	assert.Equal(t, "social-post", ctx["service"])
	assert.Equal(t, "keyword", ctx["field"])
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("discarded")
	assert.NoError(t, log.Close())
}
