package handlers

import (
	"net/http"

	"aitutor/internal/config"
	"aitutor/internal/models"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// QuizHandler serves the /api/quiz/generate and /api/quiz/history endpoints
type QuizHandler struct {
	aiService      *services.AIService
	historyService services.HistoryServiceInterface
	cfg            *config.Config
	logger         *observability.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(aiService *services.AIService, historyService services.HistoryServiceInterface, cfg *config.Config, logger *observability.Logger) *QuizHandler {
	return &QuizHandler{
		aiService:      aiService,
		historyService: historyService,
		cfg:            cfg,
		logger:         logger,
	}
}

// GenerateQuizRequest is the request body for POST /api/quiz/generate
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
	UserID       string `json:"user_id"`
}

// GenerateQuiz asks the provider for a quiz and returns the quiz payload
// directly. Unlike /api/ask there is no fallback: failures surface as 500.
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "generate_quiz")
	defer span.End()

	var req GenerateQuizRequest
	// An absent or malformed body falls through to the defaults
	_ = c.ShouldBindJSON(&req)

	if req.Topic == "" {
		req.Topic = config.DefaultQuizTopic
	}
	if req.Difficulty == "" {
		req.Difficulty = config.DefaultDifficulty
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = config.DefaultQuizQuestions
	}
	userID := req.UserID
	if userID == "" {
		userID = config.DefaultUserID
	}

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("quiz.topic", req.Topic),
		attribute.String("quiz.difficulty", req.Difficulty),
		attribute.Int("quiz.question_count", req.NumQuestions),
	)

	quiz, err := h.aiService.GenerateQuiz(ctx, req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	// Best-effort persistence of non-empty quizzes only
	if len(quiz.Questions) > 0 {
		if saveErr := h.historyService.SaveQuiz(ctx, userID, quiz); saveErr != nil {
			h.logger.Error(ctx, "Failed to save quiz history", saveErr, map[string]interface{}{
				"user_id": userID,
				"topic":   req.Topic,
			})
		}
	}

	c.JSON(http.StatusOK, quiz)
}

// GetQuizHistory returns the most recent quizzes for a user, newest first.
// Store failures degrade to an empty list rather than an error response.
func (h *QuizHandler) GetQuizHistory(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_quiz_history")
	defer span.End()

	userID := c.DefaultQuery("user_id", config.DefaultUserID)
	limit := parseLimit(c.Query("limit"), config.DefaultQuizHistoryLimit)
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("limit", limit),
	)

	quizzes, err := h.historyService.GetUserQuizzes(ctx, userID, limit)
	if err != nil {
		h.logger.Error(ctx, "Failed to load quiz history", err, map[string]interface{}{
			"user_id": userID,
		})
		quizzes = []models.QuizRecord{}
	}
	if quizzes == nil {
		quizzes = []models.QuizRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}
