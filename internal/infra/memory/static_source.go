package memory

import (
	"context"

	"trivia-quiz/internal/domain"
)

// StaticSource is a TriviaSource backed by in-memory data (useful for tests and offline play).
type StaticSource struct {
	categories []domain.Category
	// questions keyed by category id; difficulty is matched against Question.Difficulty
	questions map[int][]domain.Question
}

func NewStaticSource(categories []domain.Category, questions map[int][]domain.Question) *StaticSource {
	return &StaticSource{categories: categories, questions: questions}
}

func (s *StaticSource) ListCategories(context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *StaticSource) FetchQuestions(_ context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error) {
	var out []domain.Question
	for _, q := range s.questions[categoryID] {
		if difficulty != domain.DifficultyAny && q.Difficulty != string(difficulty) {
			continue
		}
		out = append(out, q)
		if amount > 0 && len(out) == amount {
			break
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNoResults
	}
	return out, nil
}
