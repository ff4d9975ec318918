package domain

import (
	"fmt"
	"time"
)

// Difficulty is a coarse question-hardness tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	// DifficultyAny is the wildcard used only for the fallback fetch.
	DifficultyAny Difficulty = "any"
)

// Difficulties lists the tiers a user may pick, in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts only user-selectable tiers.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(raw)
	if !d.Selectable() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, raw)
	}
	return d, nil
}

// Selectable reports whether d can be chosen on the selection screen.
func (d Difficulty) Selectable() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Category is a thematic grouping of questions.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question is a multiple-choice question with plain-text fields.
type Question struct {
	Text             string   `json:"question"`
	Category         string   `json:"category,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Answers returns the incorrect answers followed by the correct one, unshuffled.
func (q Question) Answers() []string {
	out := make([]string, 0, len(q.IncorrectAnswers)+1)
	out = append(out, q.IncorrectAnswers...)
	return append(out, q.CorrectAnswer)
}

// Screen is the single presentation state a session is in.
type Screen string

const (
	ScreenSelecting Screen = "selecting"
	ScreenLoading   Screen = "loading"
	ScreenActive    Screen = "active"
	ScreenCompleted Screen = "completed"
)

// QuestionView is the render-ready current question.
type QuestionView struct {
	Text       string   `json:"text"`
	AllAnswers []string `json:"allAnswers"`
	// Correct is only populated once an answer has been selected.
	Correct string `json:"correct,omitempty"`
}

// View is a snapshot of a session for the presentation layer.
type View struct {
	Screen              Screen        `json:"screen"`
	Categories          []Category    `json:"categories"`
	CategoryName        string        `json:"categoryName,omitempty"`
	RequestedDifficulty Difficulty    `json:"requestedDifficulty,omitempty"`
	ActualDifficulty    Difficulty    `json:"actualDifficulty,omitempty"`
	QuestionNumber      int           `json:"questionNumber,omitempty"`
	TotalQuestions      int           `json:"totalQuestions,omitempty"`
	Score               int           `json:"score"`
	Question            *QuestionView `json:"question,omitempty"`
	SelectedAnswer      *string       `json:"selectedAnswer,omitempty"`
	IsCorrect           *bool         `json:"isCorrect,omitempty"`
}

// AnswerResult summarizes the outcome of one submission.
type AnswerResult struct {
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Score         int    `json:"score"`
	Last          bool   `json:"last"`
}

// Result is the summary of a completed session.
type Result struct {
	PlayerID            string     `json:"playerId"`
	CategoryName        string     `json:"categoryName"`
	RequestedDifficulty Difficulty `json:"requestedDifficulty"`
	ActualDifficulty    Difficulty `json:"actualDifficulty"`
	Score               int        `json:"score"`
	Total               int        `json:"total"`
	CompletedAt         time.Time  `json:"completedAt"`
}
