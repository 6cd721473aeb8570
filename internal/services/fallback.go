package services

import "strings"

// fallbackRule pairs a keyword set with the canned response returned when the
// provider is unavailable. Rules are checked in order; first match wins.
type fallbackRule struct {
	keywords []string
	response string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"math", "algebra", "calculus", "equation", "solve"},
		response: "I'd be happy to help you with math! Could you provide more specific details about what you're working on?",
	},
	{
		keywords: []string{"science", "physics", "chemistry", "biology", "experiment", "gravity"},
		response: "Science is fascinating! What specific topic or concept would you like to explore?",
	},
	{
		keywords: []string{"history", "historical", "war", "ancient", "medieval"},
		response: "History is full of amazing stories! What period or event are you studying?",
	},
	{
		keywords: []string{"english", "grammar", "writing", "essay", "literature"},
		response: "I can help with English, literature, and writing! What would you like to work on?",
	},
}

// defaultFallbackResponse is used when no subject keyword matches.
const defaultFallbackResponse = "I'm here to help you learn! Please ask me any question about your studies, and I'll do my best to assist you."

// SelectFallbackResponse returns a canned, subject-aware answer for a question.
// Matching is case-insensitive substring matching against the question text.
func SelectFallbackResponse(question string) string {
	lower := strings.ToLower(question)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.response
			}
		}
	}
	return defaultFallbackResponse
}
