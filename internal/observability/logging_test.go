package observability

import (
	"context"
	"testing"

	"aitutor/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_DisabledReturnsNoop(t *testing.T) {
	logger := NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
	require.NotNil(t, logger)

	// A no-op logger must not panic on any level
	ctx := context.Background()
	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error", assert.AnError)
}

func TestNewLogger_NilConfigReturnsNoop(t *testing.T) {
	logger := NewLogger(nil)
	require.NotNil(t, logger)
	logger.Info(context.Background(), "should not panic")
}

func TestLogger_MergeFields(t *testing.T) {
	logger := &Logger{Logger: zap.NewNop()}

	merged := logger.mergeFields(
		map[string]interface{}{"a": 1, "b": 2},
		nil,
		map[string]interface{}{"b": 3, "c": 4},
	)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 3, "c": 4}, merged)

	assert.Empty(t, logger.mergeFields())
	assert.Empty(t, logger.mergeFields(nil))
}

func TestLogger_ErrorIncludesErrorField(t *testing.T) {
	logger := &Logger{Logger: zap.NewNop()}
	fields := logger.mergeFields(map[string]interface{}{"user_id": "anonymous"})
	require.NotNil(t, fields)

	// Error path must not panic with a nil error either
	logger.Error(context.Background(), "failed", nil, fields)
	logger.Error(context.Background(), "failed", assert.AnError, fields)
}

func TestNewLoggerWithLevel_BuildsStdoutLogger(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		EnableLogging: true,
		ServiceName:   "ai-tutor-backend",
	}
	logger := NewLoggerWithLevel(cfg, zap.DebugLevel)
	require.NotNil(t, logger)
	logger.Debug(context.Background(), "visible at debug level")
}
