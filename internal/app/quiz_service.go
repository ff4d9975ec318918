package app

import (
	"context"

	"trivia-quiz/internal/domain"
)

// SessionRepository abstracts where player sessions live (in-memory, Redis, etc).
type SessionRepository interface {
	// GetOrCreate returns the session for playerID, building it with create
	// when absent. The bool reports whether it was created.
	GetOrCreate(playerID string, create func() *Controller) (*Controller, bool)
	Get(playerID string) (*Controller, bool)
	DeleteIfIdle(playerID string)
}

// QuizService hands out one Controller per player.
type QuizService struct {
	sessions SessionRepository
	gateway  Gateway
	opts     []Option
}

func NewQuizService(store SessionRepository, gateway Gateway, opts ...Option) *QuizService {
	return &QuizService{sessions: store, gateway: gateway, opts: opts}
}

// Open returns the player's session, creating it and loading categories on
// first use.
func (s *QuizService) Open(ctx context.Context, playerID string) *Controller {
	session, created := s.sessions.GetOrCreate(playerID, func() *Controller {
		return NewController(playerID, s.gateway, s.opts...)
	})
	if created {
		session.LoadCategories(ctx)
	}
	return session
}

// Session looks up an opened session.
func (s *QuizService) Session(playerID string) (*Controller, error) {
	session, ok := s.sessions.Get(playerID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Close drops the session once nobody is watching it.
func (s *QuizService) Close(playerID string) {
	s.sessions.DeleteIfIdle(playerID)
}
