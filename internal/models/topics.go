package models

// studyTopics is the fixed catalog of subjects the tutor can help with.
var studyTopics = []Topic{
	{
		ID:        "math",
		Name:      "Mathematics",
		Subtopics: []string{"Algebra", "Calculus", "Geometry", "Statistics"},
	},
	{
		ID:        "science",
		Name:      "Science",
		Subtopics: []string{"Physics", "Chemistry", "Biology", "Earth Science"},
	},
	{
		ID:        "history",
		Name:      "History",
		Subtopics: []string{"World History", "American History", "Ancient Civilizations"},
	},
	{
		ID:        "english",
		Name:      "English",
		Subtopics: []string{"Grammar", "Literature", "Writing", "Vocabulary"},
	},
	{
		ID:        "computer_science",
		Name:      "Computer Science",
		Subtopics: []string{"Programming", "Algorithms", "Data Structures"},
	},
}

// StudyTopics returns the catalog of study subjects. The returned slice is a
// copy; callers may modify it freely.
func StudyTopics() []Topic {
	out := make([]Topic, len(studyTopics))
	for i, t := range studyTopics {
		subtopics := make([]string, len(t.Subtopics))
		copy(subtopics, t.Subtopics)
		out[i] = Topic{ID: t.ID, Name: t.Name, Subtopics: subtopics}
	}
	return out
}
