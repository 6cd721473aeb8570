package config

import "time"

// Timeout constants
const (
	// HTTP timeouts
	DefaultHTTPTimeout    = 60 * time.Second
	ServerShutdownTimeout = 30 * time.Second
	TestTimeout           = 100 * time.Millisecond

	// Database timeouts
	DatabaseConnMaxLifetime = 5 * time.Minute
)

// Server defaults
const (
	DefaultPort      = "5000"
	DefaultSecretKey = "dev-secret-key-change-in-production"

	DefaultMaxOpenConns = 25
	DefaultMaxIdleConns = 5
)

// AI provider defaults
const (
	DefaultAIBaseURL     = "https://api.openai.com/v1"
	DefaultAIModel       = "gpt-3.5-turbo"
	DefaultAIMaxTokens   = 1000
	DefaultAITemperature = 0.7

	// Quiz generation uses a larger budget than chat answers
	QuizMaxTokens   = 1500
	QuizTemperature = 0.7
)

// Request defaults
const (
	DefaultUserID        = "anonymous"
	DefaultQuizTopic     = "general"
	DefaultDifficulty    = "medium"
	DefaultQuizQuestions = 5

	DefaultChatHistoryLimit = 50
	DefaultQuizHistoryLimit = 20
)

// Security configuration constants
const (
	// Content Security Policy
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:;"
)
