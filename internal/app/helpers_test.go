package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

type fakeGateway struct {
	mu         sync.Mutex
	categories []domain.Category
	catErr     error
	// questions by difficulty; a missing entry yields ErrNoResults
	questions map[domain.Difficulty][]domain.Question
	requested []domain.Difficulty
	catCalls  int
}

func (g *fakeGateway) ListCategories(context.Context) ([]domain.Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.catCalls++
	if g.catErr != nil {
		return nil, g.catErr
	}
	return g.categories, nil
}

func (g *fakeGateway) FetchQuestions(_ context.Context, _ int, difficulty domain.Difficulty, _ int) ([]domain.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requested = append(g.requested, difficulty)
	qs, ok := g.questions[difficulty]
	if !ok {
		return nil, errors.New("request failed")
	}
	return qs, nil
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	active := !t.stopped
	t.stopped = true
	return active
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) app.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every timer that has not been stopped.
func (s *manualScheduler) fire() int {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()

	fired := 0
	for _, t := range timers {
		if t.Stop() {
			t.f()
			fired++
		}
	}
	return fired
}

func (s *manualScheduler) armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		t.mu.Lock()
		if !t.stopped {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

type memoryRecorder struct {
	mu      sync.Mutex
	results []domain.Result
}

func (r *memoryRecorder) RecordResult(_ context.Context, result domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

func identityShuffler(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func twoQuestions() []domain.Question {
	return []domain.Question{
		{Text: "Capital of France?", CorrectAnswer: "Paris", IncorrectAnswers: []string{"Lyon", "Nice", "Lille"}},
		{Text: "Answer to everything?", CorrectAnswer: "42", IncorrectAnswers: []string{"7", "13", "0"}},
	}
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 22, Name: "Geography"},
	}
}

func newStartedController(t *testing.T, gw *fakeGateway, sched *manualScheduler, opts ...app.Option) *app.Controller {
	t.Helper()
	opts = append([]app.Option{app.WithScheduler(sched), app.WithShuffler(identityShuffler)}, opts...)
	c := app.NewController("p1", gw, opts...)
	c.LoadCategories(context.Background())
	if err := c.SelectDifficulty(domain.DifficultyEasy); err != nil {
		t.Fatalf("select difficulty: %v", err)
	}
	if err := c.StartQuiz(context.Background(), 22, nil); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	return c
}
