package cli

import "trivia-quiz/internal/domain"

// The offline set keeps `--offline` playable without network access; it is
// deliberately small.
func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 22, Name: "Geography"},
	}
}

func sampleQuestions() map[int][]domain.Question {
	return map[int][]domain.Question{
		9: {
			{Text: "What is 2 + 2?", Difficulty: "easy", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5", "22"}},
			{Text: "How many days are in a leap year?", Difficulty: "easy", CorrectAnswer: "366", IncorrectAnswers: []string{"365", "364", "360"}},
			{Text: "Which element has the chemical symbol \"Fe\"?", Difficulty: "medium", CorrectAnswer: "Iron", IncorrectAnswers: []string{"Fluorine", "Lead", "Tin"}},
			{Text: "In what year did the Berlin Wall fall?", Difficulty: "medium", CorrectAnswer: "1989", IncorrectAnswers: []string{"1991", "1987", "1979"}},
			{Text: "What is the smallest prime number greater than 100?", Difficulty: "hard", CorrectAnswer: "101", IncorrectAnswers: []string{"103", "107", "109"}},
		},
		22: {
			{Text: "What is the capital of France?", Difficulty: "easy", CorrectAnswer: "Paris", IncorrectAnswers: []string{"Lyon", "Marseille", "Nice"}},
			{Text: "Which river flows through Cairo?", Difficulty: "easy", CorrectAnswer: "Nile", IncorrectAnswers: []string{"Amazon", "Danube", "Tigris"}},
			{Text: "What is the capital of Australia?", Difficulty: "medium", CorrectAnswer: "Canberra", IncorrectAnswers: []string{"Sydney", "Melbourne", "Perth"}},
			{Text: "Which country has the most time zones?", Difficulty: "hard", CorrectAnswer: "France", IncorrectAnswers: []string{"Russia", "United States", "China"}},
		},
	}
}
