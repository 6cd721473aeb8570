package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	// Run from a directory with no config.yaml so only defaults apply
	t.Setenv("TUTOR_CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, DefaultAIModel, cfg.AI.Model)
	assert.Equal(t, DefaultAIBaseURL, cfg.AI.BaseURL)
	assert.Equal(t, DefaultAIMaxTokens, cfg.AI.MaxTokens)
	assert.InDelta(t, DefaultAITemperature, cfg.AI.Temperature, 0.001)
	assert.Equal(t, DatabaseConnMaxLifetime, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.IsProduction())
}

func TestNewConfig_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "8080"
  env: production
  cors_origins:
    - https://tutor.example.com
ai:
  model: gpt-4o-mini
  max_tokens: 2000
database:
  max_open_conns: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("TUTOR_CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://tutor.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 2000, cfg.AI.MaxTokens)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestNewConfig_MissingConfigFileIsNotFatal(t *testing.T) {
	t.Setenv("TUTOR_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := NewConfig()
	assert.Error(t, err, "explicit TUTOR_CONFIG_FILE must exist")

	t.Setenv("TUTOR_CONFIG_FILE", "")
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestNewConfig_ProcessEnvOverrides(t *testing.T) {
	t.Setenv("TUTOR_CONFIG_FILE", "")
	t.Setenv("PORT", "9999")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/tutor")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")
	t.Setenv("ENV", "production")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "postgres://localhost/tutor", cfg.Database.URL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestNewConfig_YAMLTagEnvOverride(t *testing.T) {
	t.Setenv("TUTOR_CONFIG_FILE", "")
	t.Setenv("SERVER_LOG_LEVEL", "debug")
	t.Setenv("AI_TEMPERATURE", "0.2")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 0.001)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 60*time.Second, DefaultHTTPTimeout)
	assert.Equal(t, 1500, QuizMaxTokens)
	assert.Equal(t, 50, DefaultChatHistoryLimit)
	assert.Equal(t, 20, DefaultQuizHistoryLimit)
	assert.Equal(t, "anonymous", DefaultUserID)
}
