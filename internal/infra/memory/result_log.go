package memory

import (
	"context"
	"sync"

	"trivia-quiz/internal/domain"
)

// ResultLog keeps completed results in process memory, newest last.
type ResultLog struct {
	mu      sync.RWMutex
	results []domain.Result
}

func NewResultLog() *ResultLog {
	return &ResultLog{}
}

func (l *ResultLog) RecordResult(_ context.Context, result domain.Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
	return nil
}

// Recent returns up to limit results, newest first.
func (l *ResultLog) Recent(_ context.Context, limit int) ([]domain.Result, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > len(l.results) {
		limit = len(l.results)
	}
	out := make([]domain.Result, 0, limit)
	for i := len(l.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.results[i])
	}
	return out, nil
}
