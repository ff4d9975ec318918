package domain

import "errors"

var (
	// ErrNoResults is returned when the trivia API has no questions for the request.
	ErrNoResults = errors.New("no questions returned")
	// ErrQuestionsUnavailable is returned once the fallback fetch has also failed.
	ErrQuestionsUnavailable = errors.New("questions unavailable")
	// ErrDifficultyNotSelected is returned when a quiz is started before a difficulty is chosen.
	ErrDifficultyNotSelected = errors.New("difficulty not selected")
	// ErrInvalidDifficulty indicates an unknown or non-selectable difficulty.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrQuizInProgress is returned when a start is requested outside the selection screen.
	ErrQuizInProgress = errors.New("quiz already in progress")
	// ErrNoActiveQuestion indicates an answer was submitted with no question on screen.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrAnswerAlreadySelected is returned for a second answer on the same question; the call is ignored.
	ErrAnswerAlreadySelected = errors.New("answer already selected")
	// ErrSessionNotFound is returned when a player session has not been opened.
	ErrSessionNotFound = errors.New("quiz session not found")
)
