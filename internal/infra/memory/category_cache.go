package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/domain"
)

// TriviaSource is the upstream gateway (e.g., the HTTP trivia API).
type TriviaSource interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FetchQuestions(ctx context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error)
}

// CategoryCache keeps the category list with a TTL so every new session does
// not hit the API. Question fetches are never cached.
type CategoryCache struct {
	source TriviaSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Category
	expiresAt time.Time
}

func NewCategoryCache(source TriviaSource, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CategoryCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if categories, ok := c.lookup(c.clock()); ok {
		return categories, nil
	}

	result, err, _ := c.sf.Do("categories", func() (interface{}, error) {
		if categories, ok := c.lookup(c.clock()); ok {
			return categories, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

// Refresh reloads the list regardless of expiry.
func (c *CategoryCache) Refresh(ctx context.Context) error {
	_, err, _ := c.sf.Do("categories", func() (interface{}, error) {
		return c.load(ctx)
	})
	return err
}

func (c *CategoryCache) FetchQuestions(ctx context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error) {
	return c.source.FetchQuestions(ctx, categoryID, difficulty, amount)
}

func (c *CategoryCache) lookup(now time.Time) ([]domain.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cached == nil || !c.expiresAt.After(now) {
		return nil, false
	}
	return c.cached, true
}

func (c *CategoryCache) load(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.source.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	expiresAt := c.clock().Add(c.ttlWithJitter())
	c.mu.Lock()
	c.cached = categories
	c.expiresAt = expiresAt
	c.mu.Unlock()
	return categories, nil
}

// ttlWithJitter is only called from inside the singleflight group, which
// serializes access to rnd.
func (c *CategoryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
