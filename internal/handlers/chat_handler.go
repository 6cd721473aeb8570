package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"aitutor/internal/config"
	"aitutor/internal/models"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// ChatHandler serves the /api/ask and /api/chat/history endpoints
type ChatHandler struct {
	aiService      *services.AIService
	historyService services.HistoryServiceInterface
	cfg            *config.Config
	logger         *observability.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(aiService *services.AIService, historyService services.HistoryServiceInterface, cfg *config.Config, logger *observability.Logger) *ChatHandler {
	return &ChatHandler{
		aiService:      aiService,
		historyService: historyService,
		cfg:            cfg,
		logger:         logger,
	}
}

// AskRequest is the request body for POST /api/ask
type AskRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	UserID   string `json:"user_id"`
}

// AskResponse is the success body for POST /api/ask
type AskResponse struct {
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
}

// Ask answers a student question, falling back to a canned response when the
// provider is unavailable. History write failures never fail the request.
func (h *ChatHandler) Ask(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "ask")
	defer span.End()

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Question is required")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		RespondWithError(c, http.StatusBadRequest, "Question is required")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = config.DefaultUserID
	}
	span.SetAttributes(attribute.String("user.id", userID))

	answer := h.aiService.GenerateAnswer(ctx, req.Question, req.Context)

	// Best-effort persistence: a failed save must not fail the request
	if err := h.historyService.SaveChat(ctx, userID, req.Question, answer, req.Context); err != nil {
		h.logger.Error(ctx, "Failed to save chat history", err, map[string]interface{}{
			"user_id": userID,
		})
	}

	c.JSON(http.StatusOK, AskResponse{
		Answer:    answer,
		Timestamp: time.Now().Format(time.RFC3339),
		UserID:    userID,
	})
}

// GetChatHistory returns the most recent chats for a user, newest first.
// Store failures degrade to an empty list rather than an error response.
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_chat_history")
	defer span.End()

	userID := c.DefaultQuery("user_id", config.DefaultUserID)
	limit := parseLimit(c.Query("limit"), config.DefaultChatHistoryLimit)
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("limit", limit),
	)

	chats, err := h.historyService.GetUserChats(ctx, userID, limit)
	if err != nil {
		h.logger.Error(ctx, "Failed to load chat history", err, map[string]interface{}{
			"user_id": userID,
		})
		chats = []models.ChatRecord{}
	}
	if chats == nil {
		chats = []models.ChatRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// parseLimit parses a limit query parameter, falling back to def on absent or
// invalid values
func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
