package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aitutor/internal/config"
	"aitutor/internal/observability"
	contextutils "aitutor/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAIService(t *testing.T, apiKey, baseURL string) *AIService {
	t.Helper()
	cfg := &config.Config{}
	cfg.AI.APIKey = apiKey
	cfg.AI.BaseURL = baseURL
	cfg.AI.Model = config.DefaultAIModel
	cfg.AI.MaxTokens = config.DefaultAIMaxTokens
	cfg.AI.Temperature = config.DefaultAITemperature
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
	return NewAIService(cfg, logger)
}

// fakeProvider returns an httptest server that answers chat-completions
// requests with the given content and captures the last request body.
func fakeProvider(t *testing.T, content string, lastRequest *chatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if lastRequest != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(lastRequest))
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGenerateAnswer_NoProviderUsesFallback(t *testing.T) {
	svc := newTestAIService(t, "", "http://unused")

	answer := svc.GenerateAnswer(context.Background(), "What is gravity?", "")
	assert.Equal(t, SelectFallbackResponse("What is gravity?"), answer)
}

func TestGenerateAnswer_UsesProvider(t *testing.T) {
	var captured chatCompletionRequest
	server := fakeProvider(t, "Gravity is a force of attraction between masses.", &captured)
	defer server.Close()

	svc := newTestAIService(t, "test-key", server.URL)
	answer := svc.GenerateAnswer(context.Background(), "What is gravity?", "physics class")

	assert.Equal(t, "Gravity is a force of attraction between masses.", answer)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "You are an intelligent AI tutor designed to help students learn.\nYour responses should be:\n- Educational and informative")
	assert.Contains(t, captured.Messages[0].Content, "ages\n\nIf you don't know something")
	assert.NotContains(t, captured.Messages[0].Content, "...")
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "Context: physics class\nQuestion: What is gravity?", captured.Messages[1].Content)
	assert.Equal(t, config.DefaultAIMaxTokens, captured.MaxTokens)
	assert.InDelta(t, config.DefaultAITemperature, captured.Temperature, 0.001)
}

func TestGenerateAnswer_ProviderErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestAIService(t, "test-key", server.URL)
	answer := svc.GenerateAnswer(context.Background(), "help with algebra", "")
	assert.Equal(t, SelectFallbackResponse("help with algebra"), answer)
}

func TestGenerateQuiz_NoProviderReturnsError(t *testing.T) {
	svc := newTestAIService(t, "", "http://unused")

	quiz, err := svc.GenerateQuiz(context.Background(), "math", "medium", 5)
	assert.Nil(t, quiz)
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeAIProviderUnavailable, contextutils.GetErrorCode(err))
	var appErr *contextutils.AppError
	require.True(t, contextutils.AsError(err, &appErr))
	assert.Equal(t, "AI service not available", appErr.Message)
}

func TestGenerateQuiz_ParsesProviderJSON(t *testing.T) {
	quizJSON := `{"topic":"math","difficulty":"easy","questions":[{"question":"2+2?","options":["3","4","5","6"],"correct_answer":"4","explanation":"Basic addition"}]}`

	var captured chatCompletionRequest
	server := fakeProvider(t, quizJSON, &captured)
	defer server.Close()

	svc := newTestAIService(t, "test-key", server.URL)
	quiz, err := svc.GenerateQuiz(context.Background(), "math", "easy", 1)
	require.NoError(t, err)

	assert.Equal(t, "math", quiz.Topic)
	assert.Equal(t, "easy", quiz.Difficulty)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "4", quiz.Questions[0].CorrectAnswer)

	// Quiz generation uses its own token and temperature budget, and sends
	// the prompt as the sole user message with no system prompt
	assert.Equal(t, config.QuizMaxTokens, captured.MaxTokens)
	assert.InDelta(t, config.QuizTemperature, captured.Temperature, 0.001)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "Generate a easy level quiz about math with 1 questions.")
}

func TestGenerateQuiz_StripsMarkdownFences(t *testing.T) {
	quizJSON := "```json\n{\"topic\":\"science\",\"difficulty\":\"hard\",\"questions\":[]}\n```"
	server := fakeProvider(t, quizJSON, nil)
	defer server.Close()

	svc := newTestAIService(t, "test-key", server.URL)
	quiz, err := svc.GenerateQuiz(context.Background(), "science", "hard", 3)
	require.NoError(t, err)
	assert.Equal(t, "science", quiz.Topic)
}

func TestGenerateQuiz_InvalidJSONReturnsError(t *testing.T) {
	server := fakeProvider(t, "Sure! Here is your quiz: 1) What is...", nil)
	defer server.Close()

	svc := newTestAIService(t, "test-key", server.URL)
	quiz, err := svc.GenerateQuiz(context.Background(), "history", "medium", 5)
	assert.Nil(t, quiz)
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeAIResponseInvalid, contextutils.GetErrorCode(err))
}

func TestCallChatCompletions_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := newTestAIService(t, "test-key", server.URL)
	_, err := svc.callChatCompletions(context.Background(), "system", "user", 100, 0.5)
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeAIResponseInvalid, contextutils.GetErrorCode(err))
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.input))
		})
	}
}
