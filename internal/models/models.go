// Package models defines data structures used throughout the tutor application.
package models

import (
	"time"
)

// ChatRecord represents a saved question/answer exchange
type ChatRecord struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	Question  string    `json:"question" yaml:"question"`
	Answer    string    `json:"answer" yaml:"answer"`
	Context   string    `json:"context" yaml:"context"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// QuizQuestion represents a single multiple-choice question within a quiz
type QuizQuestion struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// QuizData is the provider-generated quiz payload
type QuizData struct {
	Topic      string         `json:"topic" yaml:"topic"`
	Difficulty string         `json:"difficulty" yaml:"difficulty"`
	Questions  []QuizQuestion `json:"questions" yaml:"questions"`
}

// QuizRecord represents a saved generated quiz
type QuizRecord struct {
	ID         string         `json:"id" yaml:"id"`
	UserID     string         `json:"user_id" yaml:"user_id"`
	Topic      string         `json:"topic" yaml:"topic"`
	Difficulty string         `json:"difficulty" yaml:"difficulty"`
	Questions  []QuizQuestion `json:"questions" yaml:"questions"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
}

// Topic represents a study subject offered by the tutor
type Topic struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Subtopics []string `json:"subtopics" yaml:"subtopics"`
}
