package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"trivia-quiz/internal/domain"
)

const (
	// DefaultQuestionCount is the fixed batch size of a quiz.
	DefaultQuestionCount = 10
	// DefaultAdvanceDelay leaves answer feedback on screen before moving on.
	DefaultAdvanceDelay = 1500 * time.Millisecond

	fallbackCategoryName = "General Knowledge"
	recordTimeout        = 5 * time.Second
)

// Gateway is the read-only trivia data source.
type Gateway interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FetchQuestions(ctx context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error)
}

// Notifier shows a blocking message to the user. Notify returns once the
// user has acknowledged it or ctx is done.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string) error

func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}

// ResultRecorder stores completed sessions.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result domain.Result) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the timer used for the deferred advance.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithAdvanceDelay sets how long answer feedback stays before the next question.
func WithAdvanceDelay(d time.Duration) Option {
	return func(c *Controller) { c.advanceDelay = d }
}

// WithShuffler replaces the answer shuffler.
func WithShuffler(s Shuffler) Option {
	return func(c *Controller) { c.shuffle = s }
}

// WithQuestionCount overrides the batch size requested from the gateway.
func WithQuestionCount(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.amount = n
		}
	}
}

// WithRecorder stores results of completed sessions.
func WithRecorder(r ResultRecorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithClock overrides the clock that stamps completed results.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller drives one quiz session. All transitions go through Reduce;
// the controller adds the gateway calls, the deferred advance and
// subscriber fan-out.
type Controller struct {
	id           string
	gateway      Gateway
	recorder     ResultRecorder
	scheduler    Scheduler
	shuffle      Shuffler
	now          func() time.Time
	amount       int
	advanceDelay time.Duration

	mu          sync.Mutex
	state       State
	pending     Timer
	generation  uint64
	subscribers map[chan domain.View]struct{}
}

func NewController(id string, gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		id:           id,
		gateway:      gateway,
		scheduler:    realScheduler{},
		shuffle:      defaultShuffler(),
		now:          time.Now,
		amount:       DefaultQuestionCount,
		advanceDelay: DefaultAdvanceDelay,
		subscribers:  make(map[chan domain.View]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the player id the controller was created for.
func (c *Controller) ID() string {
	return c.id
}

// LoadCategories populates the category list. Failures are logged and leave
// the list as it was.
func (c *Controller) LoadCategories(ctx context.Context) {
	categories, err := c.gateway.ListCategories(ctx)
	if err != nil {
		log.Printf("session %s: fetch categories: %v", c.id, err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(CategoriesLoaded{Categories: categories})
}

// SelectDifficulty records the difficulty for the next quiz.
func (c *Controller) SelectDifficulty(d domain.Difficulty) error {
	if !d.Selectable() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDifficulty, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Screen() != domain.ScreenSelecting {
		return domain.ErrQuizInProgress
	}
	c.applyLocked(DifficultySelected{Difficulty: d})
	return nil
}

// StartQuiz fetches a question batch for categoryID at the selected
// difficulty. When that fetch fails, notify is shown and the fetch is
// retried once with DifficultyAny. notify may be nil.
func (c *Controller) StartQuiz(ctx context.Context, categoryID int, notify Notifier) error {
	c.mu.Lock()
	if c.state.Screen() != domain.ScreenSelecting {
		c.mu.Unlock()
		return domain.ErrQuizInProgress
	}
	difficulty := c.state.RequestedDifficulty
	if difficulty == "" {
		c.mu.Unlock()
		return domain.ErrDifficultyNotSelected
	}
	c.applyLocked(QuizRequested{
		CategoryID:   categoryID,
		CategoryName: categoryName(c.state.Categories, categoryID),
	})
	c.mu.Unlock()

	questions, used, err := c.fetchWithFallback(ctx, categoryID, difficulty, notify)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Printf("session %s: fetch questions category=%d: %v", c.id, categoryID, err)
		c.applyLocked(QuestionsFailed{})
		return fmt.Errorf("%w: %v", domain.ErrQuestionsUnavailable, err)
	}
	c.applyLocked(QuestionsLoaded{Questions: questions, Difficulty: used})
	return nil
}

func (c *Controller) fetchWithFallback(ctx context.Context, categoryID int, difficulty domain.Difficulty, notify Notifier) ([]domain.Question, domain.Difficulty, error) {
	questions, err := c.fetch(ctx, categoryID, difficulty)
	if err == nil {
		return questions, difficulty, nil
	}
	if difficulty == domain.DifficultyAny {
		return nil, "", err
	}
	log.Printf("session %s: no %s questions for category=%d: %v", c.id, difficulty, categoryID, err)

	if notify != nil {
		msg := fmt.Sprintf("No questions found for %s difficulty. Trying with any difficulty...", difficulty)
		if nerr := notify.Notify(ctx, msg); nerr != nil {
			log.Printf("session %s: notify fallback: %v", c.id, nerr)
		}
	}

	questions, err = c.fetch(ctx, categoryID, domain.DifficultyAny)
	if err != nil {
		return nil, "", err
	}
	return questions, domain.DifficultyAny, nil
}

func (c *Controller) fetch(ctx context.Context, categoryID int, difficulty domain.Difficulty) ([]domain.Question, error) {
	questions, err := c.gateway.FetchQuestions(ctx, categoryID, difficulty, c.amount)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoResults
	}
	return questions, nil
}

// SubmitAnswer scores answer against the current question and arms the
// deferred advance. A second answer on the same question returns
// ErrAnswerAlreadySelected and changes nothing.
func (c *Controller) SubmitAnswer(answer string) (domain.AnswerResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	question, ok := c.state.CurrentQuestion()
	if !ok {
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}
	if c.state.SelectedAnswer != nil {
		return domain.AnswerResult{}, domain.ErrAnswerAlreadySelected
	}

	c.applyLocked(AnswerSubmitted{Answer: answer})

	c.generation++
	gen := c.generation
	c.pending = c.scheduler.AfterFunc(c.advanceDelay, func() {
		c.advance(gen)
	})

	return domain.AnswerResult{
		Answer:        answer,
		CorrectAnswer: question.CorrectAnswer,
		Correct:       *c.state.IsCorrect,
		Score:         c.state.Score,
		Last:          c.state.CurrentIndex == len(c.state.Questions)-1,
	}, nil
}

// AdvanceNow runs the pending deferred advance immediately. It reports
// whether an advance was pending.
func (c *Controller) AdvanceNow() bool {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return false
	}
	result := c.advanceLocked()
	c.mu.Unlock()

	c.record(result)
	return true
}

func (c *Controller) advance(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.pending == nil {
		c.mu.Unlock()
		return
	}
	result := c.advanceLocked()
	c.mu.Unlock()

	c.record(result)
}

func (c *Controller) advanceLocked() *domain.Result {
	c.stopPendingLocked()
	wasCompleted := c.state.Completed
	c.applyLocked(Advanced{})
	if wasCompleted || !c.state.Completed {
		return nil
	}
	return &domain.Result{
		PlayerID:            c.id,
		CategoryName:        c.state.CategoryName,
		RequestedDifficulty: c.state.RequestedDifficulty,
		ActualDifficulty:    c.state.ActualDifficulty,
		Score:               c.state.Score,
		Total:               len(c.state.Questions),
		CompletedAt:         c.now(),
	}
}

func (c *Controller) record(result *domain.Result) {
	if result == nil || c.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := c.recorder.RecordResult(ctx, *result); err != nil {
		log.Printf("session %s: record result: %v", c.id, err)
	}
}

// Reset returns a completed session to the selection screen. The category
// list is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Screen() != domain.ScreenCompleted {
		return
	}
	c.stopPendingLocked()
	c.applyLocked(ResetRequested{})
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.generation++
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View renders the current state. The answer order of the current question
// is reshuffled on every call.
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() domain.View {
	s := c.state
	view := domain.View{
		Screen:              s.Screen(),
		Categories:          s.Categories,
		CategoryName:        s.CategoryName,
		RequestedDifficulty: s.RequestedDifficulty,
		ActualDifficulty:    s.ActualDifficulty,
		Score:               s.Score,
		SelectedAnswer:      s.SelectedAnswer,
		IsCorrect:           s.IsCorrect,
	}
	if view.Screen == domain.ScreenActive || view.Screen == domain.ScreenCompleted {
		view.TotalQuestions = len(s.Questions)
	}
	if q, ok := s.CurrentQuestion(); ok {
		view.QuestionNumber = s.CurrentIndex + 1
		qv := &domain.QuestionView{
			Text:       q.Text,
			AllAnswers: c.shuffle(q.Answers()),
		}
		if s.SelectedAnswer != nil {
			qv.Correct = q.CorrectAnswer
		}
		view.Question = qv
	}
	return view
}

// Subscribe returns a channel receiving a View after every transition,
// starting with the current one. The caller must invoke cancel.
func (c *Controller) Subscribe() (<-chan domain.View, func()) {
	ch := make(chan domain.View, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	ch <- c.viewLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// IsIdle reports whether nobody is subscribed to the session.
func (c *Controller) IsIdle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscribers) == 0
}

func (c *Controller) applyLocked(ev Event) {
	c.state = Reduce(c.state, ev)
	if len(c.subscribers) == 0 {
		return
	}
	view := c.viewLocked()
	for ch := range c.subscribers {
		select {
		case ch <- view:
		default:
			// slow subscriber: drop the oldest view
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

func categoryName(categories []domain.Category, id int) string {
	for _, cat := range categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return fallbackCategoryName
}
