//go:build integration

package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"aitutor/internal/config"
	"aitutor/internal/database"
	"aitutor/internal/models"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// HistoryServiceIntegrationTestSuite exercises the SQL-backed history store
// against a real database
type HistoryServiceIntegrationTestSuite struct {
	suite.Suite
	DB             *sql.DB
	HistoryService *services.HistoryService
}

func TestHistoryServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceIntegrationTestSuite))
}

func (suite *HistoryServiceIntegrationTestSuite) SetupSuite() {
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})

	dbCfg := database.DefaultDatabaseConfig()
	require.NotEmpty(suite.T(), dbCfg.URL, "TEST_DATABASE_URL or DATABASE_URL must be set")

	db, err := database.NewManager(logger).InitDBWithConfig(dbCfg)
	require.NoError(suite.T(), err)
	suite.DB = db

	suite.HistoryService = services.NewHistoryService(db, logger)
}

func (suite *HistoryServiceIntegrationTestSuite) TearDownSuite() {
	if suite.DB != nil {
		_ = suite.DB.Close()
	}
}

func (suite *HistoryServiceIntegrationTestSuite) SetupTest() {
	_, err := suite.DB.Exec("TRUNCATE chats, quizzes")
	require.NoError(suite.T(), err)
}

// saveChats stores n chats for userID and spreads their timestamps one minute
// apart so ordering assertions do not depend on sub-millisecond clock ticks.
// Higher-numbered questions are newer.
func (suite *HistoryServiceIntegrationTestSuite) saveChats(ctx context.Context, userID string, n int) {
	for i := 1; i <= n; i++ {
		question := fmt.Sprintf("question-%d", i)
		require.NoError(suite.T(), suite.HistoryService.SaveChat(ctx, userID, question, "answer", "algebra"))
		_, err := suite.DB.ExecContext(ctx,
			"UPDATE chats SET created_at = NOW() - make_interval(mins => $1) WHERE question = $2 AND user_id = $3",
			n-i, question, userID)
		require.NoError(suite.T(), err)
	}
}

func (suite *HistoryServiceIntegrationTestSuite) TestGetUserChats_LimitAndOrdering() {
	ctx := context.Background()
	suite.saveChats(ctx, "student-1", 5)

	chats, err := suite.HistoryService.GetUserChats(ctx, "student-1", 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), chats, 2, "limit 2 over 5 stored chats must return at most 2")

	assert.Equal(suite.T(), "question-5", chats[0].Question, "newest chat first")
	assert.Equal(suite.T(), "question-4", chats[1].Question)
	assert.True(suite.T(), chats[0].CreatedAt.After(chats[1].CreatedAt))
}

func (suite *HistoryServiceIntegrationTestSuite) TestGetUserChats_FiltersByUser() {
	ctx := context.Background()
	suite.saveChats(ctx, "student-1", 3)
	require.NoError(suite.T(), suite.HistoryService.SaveChat(ctx, "student-2", "other question", "other answer", ""))

	chats, err := suite.HistoryService.GetUserChats(ctx, "student-2", 50)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), chats, 1)
	assert.Equal(suite.T(), "other question", chats[0].Question)
	assert.Equal(suite.T(), "student-2", chats[0].UserID)
}

func (suite *HistoryServiceIntegrationTestSuite) TestSaveChat_RoundTripsContext() {
	ctx := context.Background()
	require.NoError(suite.T(), suite.HistoryService.SaveChat(ctx, "student-1", "What is gravity?", "A force.", "physics class"))

	chats, err := suite.HistoryService.GetUserChats(ctx, "student-1", 50)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), chats, 1)
	assert.Equal(suite.T(), "physics class", chats[0].Context)
	assert.Equal(suite.T(), "A force.", chats[0].Answer)
	assert.NotEmpty(suite.T(), chats[0].ID)
}

func (suite *HistoryServiceIntegrationTestSuite) TestGetUserQuizzes_LimitAndOrdering() {
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		topic := fmt.Sprintf("topic-%d", i)
		quiz := &models.QuizData{
			Topic:      topic,
			Difficulty: "easy",
			Questions: []models.QuizQuestion{
				{
					Question:      "2+2?",
					Options:       []string{"3", "4", "5", "6"},
					CorrectAnswer: "B",
					Explanation:   "Basic addition",
				},
			},
		}
		require.NoError(suite.T(), suite.HistoryService.SaveQuiz(ctx, "student-1", quiz))
		_, err := suite.DB.ExecContext(ctx,
			"UPDATE quizzes SET created_at = NOW() - make_interval(mins => $1) WHERE topic = $2",
			3-i, topic)
		require.NoError(suite.T(), err)
	}

	quizzes, err := suite.HistoryService.GetUserQuizzes(ctx, "student-1", 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), quizzes, 2)

	assert.Equal(suite.T(), "topic-3", quizzes[0].Topic, "newest quiz first")
	assert.Equal(suite.T(), "topic-2", quizzes[1].Topic)

	// Questions survive the JSONB round trip
	require.Len(suite.T(), quizzes[0].Questions, 1)
	assert.Equal(suite.T(), "B", quizzes[0].Questions[0].CorrectAnswer)
	assert.Equal(suite.T(), []string{"3", "4", "5", "6"}, quizzes[0].Questions[0].Options)
}
