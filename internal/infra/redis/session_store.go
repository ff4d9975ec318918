package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Controllers hold timers and subscriber channels, so they stay in a local
// map; Redis only carries a per-player liveness marker that other instances
// (and operators) can inspect.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Controller
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Controller),
	}
}

func (s *SessionStore) GetOrCreate(playerID string, create func() *app.Controller) (*app.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[playerID]; ok {
		// best-effort liveness refresh
		_ = s.client.Expire(context.Background(), s.key(playerID), s.ttl).Err()
		return session, false
	}
	session := create()
	s.sessions[playerID] = session
	_ = s.client.Set(context.Background(), s.key(playerID), "1", s.ttl).Err()
	return session, true
}

func (s *SessionStore) Get(playerID string) (*app.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[playerID]
	return session, ok
}

func (s *SessionStore) DeleteIfIdle(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[playerID]
	if !ok {
		return
	}
	if session.IsIdle() {
		delete(s.sessions, playerID)
		_ = s.client.Del(context.Background(), s.key(playerID)).Err()
	}
}

func (s *SessionStore) key(playerID string) string {
	return "trivia:session:" + playerID
}
