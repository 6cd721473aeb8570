package di

import (
	"context"
	"testing"

	"aitutor/internal/config"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceContainer_StatelessMode(t *testing.T) {
	cfg := &config.Config{IsTest: true}
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
	sc := NewServiceContainer(cfg, logger)

	require.NoError(t, sc.Initialize(context.Background()))

	assert.NotNil(t, sc.GetAIService())
	assert.Nil(t, sc.GetDatabase())
	assert.IsType(t, &services.NoopHistoryService{}, sc.GetHistoryService())

	chats, err := sc.GetHistoryService().GetUserChats(context.Background(), "anonymous", 10)
	require.NoError(t, err)
	assert.Empty(t, chats)

	assert.NoError(t, sc.Shutdown(context.Background()))
}

func TestServiceContainer_Accessors(t *testing.T) {
	cfg := &config.Config{IsTest: true}
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
	sc := NewServiceContainer(cfg, logger)

	assert.Same(t, cfg, sc.GetConfig())
	assert.Same(t, logger, sc.GetLogger())
}
