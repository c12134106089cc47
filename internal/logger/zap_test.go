package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "debug", Format: "json", Output: path, Service: "storefront", Env: "test"}, SentryConfig{})
	require.NoError(t, err)

	log.Info("listing created", zap.String("listing_id", "abc"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"listing created"`)
	assert.Contains(t, string(data), `"service":"storefront"`)
	assert.Contains(t, string(data), `"listing_id":"abc"`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud", Format: "json", Output: "stderr"}, SentryConfig{})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestFieldsToMap(t *testing.T) {
	m := fieldsToMap([]zapcore.Field{
		zap.String("feed", "catalog"),
		zap.Int("count", 3),
		zap.Float64("revenue", 12.5),
		zap.Bool("ok", true),
		zap.Duration("took", 2*time.Second),
		zap.Error(errors.New("boom")),
	})

	assert.Equal(t, "catalog", m["feed"])
	assert.Equal(t, int64(3), m["count"])
	assert.Equal(t, 12.5, m["revenue"])
	assert.Equal(t, true, m["ok"])
	assert.Equal(t, "2s", m["took"])
	assert.Equal(t, "boom", m["error"])
}

func TestZapLevelToSentry(t *testing.T) {
	assert.Equal(t, sentry.LevelError, zapLevelToSentry(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelWarning, zapLevelToSentry(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelFatal, zapLevelToSentry(zapcore.PanicLevel))
}
