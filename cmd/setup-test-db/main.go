// Package main provides a utility to set up the test database with initial data.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"aitutor/internal/config"
	"aitutor/internal/database"
	"aitutor/internal/models"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

// TestChat represents a chat entry in the seed data file
type TestChat struct {
	UserID   string `yaml:"user_id"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Context  string `yaml:"context"`
}

// TestQuiz represents a quiz entry in the seed data file
type TestQuiz struct {
	UserID     string                `yaml:"user_id"`
	Topic      string                `yaml:"topic"`
	Difficulty string                `yaml:"difficulty"`
	Questions  []models.QuizQuestion `yaml:"questions"`
}

// SeedData is the top-level structure of the seed data file
type SeedData struct {
	Chats   []TestChat `yaml:"chats"`
	Quizzes []TestQuiz `yaml:"quizzes"`
}

func main() {
	seedFile := flag.String("seed", "", "Optional YAML file with chat and quiz seed data")
	flag.Parse()

	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// No OTLP export for a one-shot setup tool
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	_, _, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "setup-test-db")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	dbCfg := database.DefaultDatabaseConfig()
	if dbCfg.URL == "" {
		logger.Error(ctx, "TEST_DATABASE_URL or DATABASE_URL must be set", nil, nil)
		os.Exit(1)
	}

	if err := ensureDatabaseExists(ctx, logger, dbCfg.URL); err != nil {
		logger.Error(ctx, "Failed to ensure test database exists", err, nil)
		os.Exit(1)
	}

	dbManager := database.NewManager(logger)
	db, err := dbManager.InitDBWithConfig(dbCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize test database", err, nil)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	logger.Info(ctx, "Test database ready", map[string]interface{}{"db_url": dbCfg.URL})

	if *seedFile != "" {
		if err := seedFromFile(ctx, logger, db, *seedFile); err != nil {
			logger.Error(ctx, "Failed to seed test data", err, map[string]interface{}{"file": *seedFile})
			os.Exit(1)
		}
	}

	fmt.Println("✅ Test database setup complete")
}

// ensureDatabaseExists connects to the postgres maintenance database and
// creates the target database if it is missing.
func ensureDatabaseExists(ctx context.Context, logger *observability.Logger, databaseURL string) error {
	dbName := databaseNameFromURL(databaseURL)
	if dbName == "" {
		return fmt.Errorf("could not determine database name from URL")
	}

	adminURL := strings.Replace(databaseURL, "/"+dbName, "/postgres", 1)
	adminDB, err := sql.Open("postgres", adminURL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer func() { _ = adminDB.Close() }()

	var exists bool
	err = adminDB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	logger.Info(ctx, "Creating test database", map[string]interface{}{"database": dbName})
	if _, err := adminDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %q", dbName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return nil
}

func databaseNameFromURL(databaseURL string) string {
	idx := strings.LastIndex(databaseURL, "/")
	if idx < 0 || idx == len(databaseURL)-1 {
		return ""
	}
	name := databaseURL[idx+1:]
	if q := strings.Index(name, "?"); q >= 0 {
		name = name[:q]
	}
	return name
}

// seedFromFile loads chat and quiz records from a YAML file and writes them
// through the history service.
func seedFromFile(ctx context.Context, logger *observability.Logger, db *sql.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedData
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	historyService := services.NewHistoryService(db, logger)

	for _, chat := range seed.Chats {
		if err := historyService.SaveChat(ctx, chat.UserID, chat.Question, chat.Answer, chat.Context); err != nil {
			return fmt.Errorf("failed to seed chat for %s: %w", chat.UserID, err)
		}
	}

	for _, quiz := range seed.Quizzes {
		data := &models.QuizData{
			Topic:      quiz.Topic,
			Difficulty: quiz.Difficulty,
			Questions:  quiz.Questions,
		}
		if err := historyService.SaveQuiz(ctx, quiz.UserID, data); err != nil {
			return fmt.Errorf("failed to seed quiz for %s: %w", quiz.UserID, err)
		}
	}

	summary, _ := json.Marshal(map[string]int{"chats": len(seed.Chats), "quizzes": len(seed.Quizzes)})
	logger.Info(ctx, "Seeded test data", map[string]interface{}{"summary": string(summary)})
	return nil
}
