package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"aitutor/internal/models"
	"aitutor/internal/observability"
	contextutils "aitutor/internal/utils"

	"github.com/google/uuid"
)

// HistoryServiceInterface persists and retrieves chat and quiz history
type HistoryServiceInterface interface {
	SaveChat(ctx context.Context, userID, question, answer, questionContext string) error
	SaveQuiz(ctx context.Context, userID string, quiz *models.QuizData) error
	GetUserChats(ctx context.Context, userID string, limit int) ([]models.ChatRecord, error)
	GetUserQuizzes(ctx context.Context, userID string, limit int) ([]models.QuizRecord, error)
}

var (
	_ HistoryServiceInterface = (*HistoryService)(nil)
	_ HistoryServiceInterface = (*NoopHistoryService)(nil)
)

// HistoryService is the PostgreSQL-backed history store
type HistoryService struct {
	db     *sql.DB
	logger *observability.Logger
}

// NewHistoryService creates a new history service backed by the given database
func NewHistoryService(db *sql.DB, logger *observability.Logger) *HistoryService {
	return &HistoryService{
		db:     db,
		logger: logger,
	}
}

// SaveChat persists a question/answer exchange
func (s *HistoryService) SaveChat(ctx context.Context, userID, question, answer, questionContext string) (err error) {
	ctx, span := observability.TraceHistoryFunction(ctx, "SaveChat",
		observability.AttributeUserID(userID),
	)
	defer observability.FinishSpan(span, &err)

	query := `
		INSERT INTO chats (id, user_id, question, answer, context, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err = s.db.ExecContext(ctx, query, uuid.New().String(), userID, question, answer, questionContext); err != nil {
		err = contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to save chat for user %s: %w", userID, err)
		return err
	}

	s.logger.Debug(ctx, "Chat saved", map[string]interface{}{"user_id": userID})
	return nil
}

// SaveQuiz persists a generated quiz
func (s *HistoryService) SaveQuiz(ctx context.Context, userID string, quiz *models.QuizData) (err error) {
	ctx, span := observability.TraceHistoryFunction(ctx, "SaveQuiz",
		observability.AttributeUserID(userID),
		observability.AttributeTopic(quiz.Topic),
	)
	defer observability.FinishSpan(span, &err)

	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		err = contextutils.WrapError(err, "failed to marshal quiz questions")
		return err
	}

	query := `
		INSERT INTO quizzes (id, user_id, topic, difficulty, questions, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err = s.db.ExecContext(ctx, query, uuid.New().String(), userID, quiz.Topic, quiz.Difficulty, questionsJSON); err != nil {
		err = contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to save quiz for user %s: %w", userID, err)
		return err
	}

	s.logger.Debug(ctx, "Quiz saved", map[string]interface{}{
		"user_id": userID,
		"topic":   quiz.Topic,
	})
	return nil
}

// GetUserChats returns the most recent chats for a user, newest first
func (s *HistoryService) GetUserChats(ctx context.Context, userID string, limit int) (result0 []models.ChatRecord, err error) {
	ctx, span := observability.TraceHistoryFunction(ctx, "GetUserChats",
		observability.AttributeUserID(userID),
		observability.AttributeLimit(limit),
	)
	defer observability.FinishSpan(span, &err)

	query := `
		SELECT id, user_id, question, answer, context, created_at
		FROM chats
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		err = contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to query chats for user %s: %w", userID, err)
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close chat rows", map[string]interface{}{"error": closeErr.Error()})
		}
	}()

	chats := []models.ChatRecord{}
	for rows.Next() {
		var chat models.ChatRecord
		if err = rows.Scan(&chat.ID, &chat.UserID, &chat.Question, &chat.Answer, &chat.Context, &chat.CreatedAt); err != nil {
			err = contextutils.WrapError(contextutils.ErrDatabaseQuery, "failed to scan chat row")
			return nil, err
		}
		chats = append(chats, chat)
	}
	if err = rows.Err(); err != nil {
		err = contextutils.WrapError(contextutils.ErrDatabaseQuery, "chat rows iteration failed")
		return nil, err
	}

	return chats, nil
}

// GetUserQuizzes returns the most recent quizzes for a user, newest first
func (s *HistoryService) GetUserQuizzes(ctx context.Context, userID string, limit int) (result0 []models.QuizRecord, err error) {
	ctx, span := observability.TraceHistoryFunction(ctx, "GetUserQuizzes",
		observability.AttributeUserID(userID),
		observability.AttributeLimit(limit),
	)
	defer observability.FinishSpan(span, &err)

	query := `
		SELECT id, user_id, topic, difficulty, questions, created_at
		FROM quizzes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		err = contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to query quizzes for user %s: %w", userID, err)
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close quiz rows", map[string]interface{}{"error": closeErr.Error()})
		}
	}()

	quizzes := []models.QuizRecord{}
	for rows.Next() {
		var quiz models.QuizRecord
		var questionsJSON []byte
		if err = rows.Scan(&quiz.ID, &quiz.UserID, &quiz.Topic, &quiz.Difficulty, &questionsJSON, &quiz.CreatedAt); err != nil {
			err = contextutils.WrapError(contextutils.ErrDatabaseQuery, "failed to scan quiz row")
			return nil, err
		}
		if err = json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
			err = contextutils.WrapError(err, "failed to unmarshal quiz questions")
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	if err = rows.Err(); err != nil {
		err = contextutils.WrapError(contextutils.ErrDatabaseQuery, "quiz rows iteration failed")
		return nil, err
	}

	return quizzes, nil
}

// NoopHistoryService is used when no database is configured. Writes are
// discarded and reads return empty history.
type NoopHistoryService struct{}

// NewNoopHistoryService creates a history service that stores nothing
func NewNoopHistoryService() *NoopHistoryService {
	return &NoopHistoryService{}
}

// SaveChat discards the chat
func (s *NoopHistoryService) SaveChat(_ context.Context, _, _, _, _ string) error {
	return nil
}

// SaveQuiz discards the quiz
func (s *NoopHistoryService) SaveQuiz(_ context.Context, _ string, _ *models.QuizData) error {
	return nil
}

// GetUserChats returns an empty chat history
func (s *NoopHistoryService) GetUserChats(_ context.Context, _ string, _ int) ([]models.ChatRecord, error) {
	return []models.ChatRecord{}, nil
}

// GetUserQuizzes returns an empty quiz history
func (s *NoopHistoryService) GetUserQuizzes(_ context.Context, _ string, _ int) ([]models.QuizRecord, error) {
	return []models.QuizRecord{}, nil
}
