package app

import "trivia-quiz/internal/domain"

// State is the full session state. Values are copied by Reduce; the
// Questions and Categories slices are treated as immutable once set.
type State struct {
	Categories          []domain.Category
	CategoryID          int
	CategoryName        string
	RequestedDifficulty domain.Difficulty
	ActualDifficulty    domain.Difficulty
	Questions           []domain.Question
	CurrentIndex        int
	Score               int
	SelectedAnswer      *string
	IsCorrect           *bool
	Started             bool
	Completed           bool
	Loading             bool
}

// Screen derives the one screen the state renders as.
func (s State) Screen() domain.Screen {
	switch {
	case s.Loading:
		return domain.ScreenLoading
	case s.Completed:
		return domain.ScreenCompleted
	case s.Started:
		return domain.ScreenActive
	default:
		return domain.ScreenSelecting
	}
}

// CurrentQuestion returns the question on screen, if any.
func (s State) CurrentQuestion() (domain.Question, bool) {
	if s.Screen() != domain.ScreenActive || s.CurrentIndex >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Answered reports how many questions have received an answer.
func (s State) Answered() int {
	switch {
	case !s.Started:
		return 0
	case s.Completed:
		return len(s.Questions)
	case s.SelectedAnswer != nil:
		return s.CurrentIndex + 1
	default:
		return s.CurrentIndex
	}
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// CategoriesLoaded replaces the category list.
type CategoriesLoaded struct{ Categories []domain.Category }

// DifficultySelected records the user's tier on the selection screen.
type DifficultySelected struct{ Difficulty domain.Difficulty }

// QuizRequested moves Selecting to Loading.
type QuizRequested struct {
	CategoryID   int
	CategoryName string
}

// QuestionsLoaded moves Loading to Active.
type QuestionsLoaded struct {
	Questions  []domain.Question
	Difficulty domain.Difficulty
}

// QuestionsFailed moves Loading back to Selecting.
type QuestionsFailed struct{}

// AnswerSubmitted records an answer for the current question.
type AnswerSubmitted struct{ Answer string }

// Advanced is the deferred transition after an answer.
type Advanced struct{}

// ResetRequested returns a completed session to Selecting.
type ResetRequested struct{}

func (CategoriesLoaded) isEvent()   {}
func (DifficultySelected) isEvent() {}
func (QuizRequested) isEvent()      {}
func (QuestionsLoaded) isEvent()    {}
func (QuestionsFailed) isEvent()    {}
func (AnswerSubmitted) isEvent()    {}
func (Advanced) isEvent()           {}
func (ResetRequested) isEvent()     {}

// Reduce applies ev to s. Events that do not apply to the current screen
// return s unchanged.
func Reduce(s State, ev Event) State {
	screen := s.Screen()
	switch e := ev.(type) {
	case CategoriesLoaded:
		s.Categories = e.Categories
	case DifficultySelected:
		if screen != domain.ScreenSelecting || !e.Difficulty.Selectable() {
			return s
		}
		s.RequestedDifficulty = e.Difficulty
	case QuizRequested:
		if screen != domain.ScreenSelecting || s.RequestedDifficulty == "" {
			return s
		}
		s.CategoryID = e.CategoryID
		s.CategoryName = e.CategoryName
		s.Loading = true
	case QuestionsLoaded:
		if screen != domain.ScreenLoading || len(e.Questions) == 0 {
			return s
		}
		s.Questions = e.Questions
		s.ActualDifficulty = e.Difficulty
		s.CurrentIndex = 0
		s.Score = 0
		s.SelectedAnswer = nil
		s.IsCorrect = nil
		s.Started = true
		s.Completed = false
		s.Loading = false
	case QuestionsFailed:
		if screen != domain.ScreenLoading {
			return s
		}
		s.Loading = false
	case AnswerSubmitted:
		if screen != domain.ScreenActive || s.SelectedAnswer != nil {
			return s
		}
		answer := e.Answer
		correct := answer == s.Questions[s.CurrentIndex].CorrectAnswer
		s.SelectedAnswer = &answer
		s.IsCorrect = &correct
		if correct {
			s.Score++
		}
	case Advanced:
		if screen != domain.ScreenActive || s.SelectedAnswer == nil {
			return s
		}
		if s.CurrentIndex < len(s.Questions)-1 {
			s.CurrentIndex++
			s.SelectedAnswer = nil
			s.IsCorrect = nil
		} else {
			s.Completed = true
			s.SelectedAnswer = nil
			s.IsCorrect = nil
		}
	case ResetRequested:
		if screen != domain.ScreenCompleted {
			return s
		}
		return State{Categories: s.Categories}
	}
	return s
}
