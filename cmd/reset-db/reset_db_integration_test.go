//go:build integration

package main

import (
	"context"
	"database/sql"
	"testing"

	"aitutor/internal/config"
	"aitutor/internal/database"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ResetDBIntegrationTestSuite exercises the reset flow against a real database
type ResetDBIntegrationTestSuite struct {
	suite.Suite
	DB             *sql.DB
	DBManager      *database.Manager
	DatabaseURL    string
	HistoryService *services.HistoryService
	Logger         *observability.Logger
}

func TestResetDBIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ResetDBIntegrationTestSuite))
}

func (suite *ResetDBIntegrationTestSuite) SetupSuite() {
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
	suite.Logger = logger

	suite.DBManager = database.NewManager(logger)

	dbCfg := database.DefaultDatabaseConfig()
	require.NotEmpty(suite.T(), dbCfg.URL, "TEST_DATABASE_URL or DATABASE_URL must be set")
	suite.DatabaseURL = dbCfg.URL

	db, err := suite.DBManager.InitDBWithConfig(dbCfg)
	require.NoError(suite.T(), err)
	suite.DB = db

	suite.HistoryService = services.NewHistoryService(db, logger)
}

func (suite *ResetDBIntegrationTestSuite) TearDownSuite() {
	if suite.DB != nil {
		_ = suite.DB.Close()
	}
}

func (suite *ResetDBIntegrationTestSuite) SetupTest() {
	_, err := suite.DB.Exec("TRUNCATE chats, quizzes")
	require.NoError(suite.T(), err)
}

func (suite *ResetDBIntegrationTestSuite) TestDropAndMigrate() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.HistoryService.SaveChat(ctx, "student-1", "What is 2+2?", "4", ""))

	for _, table := range []string{"quizzes", "chats", "schema_migrations"} {
		_, err := suite.DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(suite.T(), err)
	}

	require.NoError(suite.T(), suite.DBManager.RunMigrations(suite.DB, suite.DatabaseURL))

	var chatCount int64
	require.NoError(suite.T(), suite.DB.QueryRow("SELECT COUNT(*) FROM chats").Scan(&chatCount))
	assert.Equal(suite.T(), int64(0), chatCount, "reset should leave an empty chats table")

	// The recreated schema accepts writes again
	require.NoError(suite.T(), suite.HistoryService.SaveChat(ctx, "student-1", "What is 3+3?", "6", ""))

	chats, err := suite.HistoryService.GetUserChats(ctx, "student-1", 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), chats, 1)
	assert.Equal(suite.T(), "What is 3+3?", chats[0].Question)
}

func (suite *ResetDBIntegrationTestSuite) TestMigrationsAreIdempotent() {
	require.NoError(suite.T(), suite.DBManager.RunMigrations(suite.DB, suite.DatabaseURL))
	require.NoError(suite.T(), suite.DBManager.RunMigrations(suite.DB, suite.DatabaseURL))
}
