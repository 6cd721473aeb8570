package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"aitutor/internal/config"
	"aitutor/internal/models"
	"aitutor/internal/observability"
	contextutils "aitutor/internal/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tutorSystemPrompt frames every chat answer as supportive tutoring.
const tutorSystemPrompt = `You are an intelligent AI tutor designed to help students learn.
Your responses should be:
- Educational and informative
- Clear and easy to understand
- Encouraging and supportive
- Accurate and well-researched
- Suitable for students of various ages

If you don't know something, be honest about it and suggest where they might find more information.`

// quizUserPromptTemplate is filled with difficulty, topic and question count.
// It is sent as the sole user message with no system prompt.
const quizUserPromptTemplate = `Generate a %s level quiz about %s with %d questions.
Return the response as a JSON object with this structure:
{"topic": "...", "difficulty": "...", "questions": [{"question": "Question text", "options": ["A","B","C","D"], "correct_answer": "A", "explanation": "Why this is correct"}]}`

// AIService talks to an OpenAI-compatible chat-completions endpoint and
// degrades to canned fallback answers when the provider cannot be reached.
type AIService struct {
	httpClient *http.Client
	cfg        *config.Config
	logger     *observability.Logger
}

// NewAIService creates a new AI service with an instrumented HTTP client
func NewAIService(cfg *config.Config, logger *observability.Logger) *AIService {
	httpClient := &http.Client{
		Timeout: config.DefaultHTTPTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
		),
	}

	return &AIService{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
	}
}

// HasProvider reports whether a provider API key is configured
func (s *AIService) HasProvider() bool {
	return s.cfg.AI.APIKey != ""
}

// chatMessage is a single message in a chat-completions request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the request body for the chat-completions endpoint
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatCompletionResponse is the subset of the provider response we consume
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateAnswer produces a tutoring answer for a question. Provider errors
// are absorbed: the caller always gets a usable answer string.
func (s *AIService) GenerateAnswer(ctx context.Context, question, questionContext string) string {
	ctx, span := observability.TraceAIFunction(ctx, "GenerateAnswer",
		observability.AttributeModel(s.cfg.AI.Model),
		attribute.Int("question.length", len(question)),
	)
	defer span.End()

	if !s.HasProvider() {
		s.logger.Info(ctx, "No AI provider configured, using fallback response")
		span.SetAttributes(attribute.String("answer.source", "fallback"))
		return SelectFallbackResponse(question)
	}

	userMessage := question
	if questionContext != "" {
		userMessage = fmt.Sprintf("Context: %s\nQuestion: %s", questionContext, question)
	}

	answer, err := s.callChatCompletions(ctx, tutorSystemPrompt, userMessage, s.cfg.AI.MaxTokens, s.cfg.AI.Temperature)
	if err != nil {
		s.logger.Warn(ctx, "AI provider call failed, using fallback response", map[string]interface{}{
			"error": err.Error(),
		})
		span.SetAttributes(attribute.String("answer.source", "fallback"))
		return SelectFallbackResponse(question)
	}

	span.SetAttributes(attribute.String("answer.source", "provider"))
	return answer
}

// GenerateQuiz asks the provider for a structured quiz. Unlike GenerateAnswer
// there is no canned fallback; errors propagate to the caller.
func (s *AIService) GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) (result0 *models.QuizData, err error) {
	ctx, span := observability.TraceAIFunction(ctx, "GenerateQuiz",
		observability.AttributeTopic(topic),
		observability.AttributeDifficulty(difficulty),
		observability.AttributeQuestionCount(numQuestions),
	)
	defer observability.FinishSpan(span, &err)

	if !s.HasProvider() {
		err = contextutils.NewAppError(contextutils.ErrorCodeAIProviderUnavailable, contextutils.SeverityError, "AI service not available", "")
		return nil, err
	}

	prompt := fmt.Sprintf(quizUserPromptTemplate, difficulty, topic, numQuestions)

	raw, err := s.callChatCompletions(ctx, "", prompt, config.QuizMaxTokens, config.QuizTemperature)
	if err != nil {
		return nil, err
	}

	cleaned := stripCodeFences(raw)

	var quiz models.QuizData
	if err = json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		s.logger.Error(ctx, "Provider returned unparseable quiz JSON", err, map[string]interface{}{
			"response_length": len(raw),
		})
		err = contextutils.WrapError(contextutils.ErrAIResponseInvalid, "failed to parse quiz response")
		return nil, err
	}

	span.SetAttributes(attribute.Int("quiz.questions_returned", len(quiz.Questions)))
	return &quiz, nil
}

// callChatCompletions performs a single chat-completions request
func (s *AIService) callChatCompletions(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (result0 string, err error) {
	ctx, span := observability.TraceAIFunction(ctx, "callChatCompletions",
		observability.AttributeModel(s.cfg.AI.Model),
		attribute.Int("request.max_tokens", maxTokens),
	)
	defer observability.FinishSpan(span, &err)

	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	reqBody := chatCompletionRequest{
		Model:       s.cfg.AI.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to marshal chat completion request")
	}

	apiURL := strings.TrimSuffix(s.cfg.AI.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "request_creation_failed"))
		return "", contextutils.WrapError(err, "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.AI.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "transport_error"))
		return "", contextutils.WrapErrorf(contextutils.ErrAIRequestFailed, "provider request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close provider response body", map[string]interface{}{"error": closeErr.Error()})
		}
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to read provider response")
	}

	if resp.StatusCode != http.StatusOK {
		span.SetAttributes(attribute.String("call.result", "non_200"))
		return "", contextutils.WrapErrorf(contextutils.ErrAIRequestFailed, "provider returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err = json.Unmarshal(body, &completion); err != nil {
		return "", contextutils.WrapError(contextutils.ErrAIResponseInvalid, "failed to decode provider response")
	}

	if len(completion.Choices) == 0 {
		err = contextutils.WrapError(contextutils.ErrAIResponseInvalid, "provider returned no choices")
		return "", err
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	span.SetAttributes(attribute.Int("response.length", len(content)))
	return content, nil
}

// stripCodeFences removes a surrounding markdown code fence from a provider
// response. Models frequently wrap JSON in ```json ... ``` despite being told
// not to.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop a language tag such as "json" on the opening fence line
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
