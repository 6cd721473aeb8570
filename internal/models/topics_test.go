package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyTopics(t *testing.T) {
	topics := StudyTopics()
	require.Len(t, topics, 5)

	ids := make([]string, 0, len(topics))
	for _, topic := range topics {
		ids = append(ids, topic.ID)
		assert.NotEmpty(t, topic.Name)
		assert.NotEmpty(t, topic.Subtopics)
	}
	assert.Equal(t, []string{"math", "science", "history", "english", "computer_science"}, ids)
}

func TestStudyTopics_ReturnsCopy(t *testing.T) {
	first := StudyTopics()
	first[0].Name = "mutated"
	first[0].Subtopics[0] = "mutated"

	second := StudyTopics()
	assert.Equal(t, "Mathematics", second[0].Name)
	assert.Equal(t, "Algebra", second[0].Subtopics[0])
}
