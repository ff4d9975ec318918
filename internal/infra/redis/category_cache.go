package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/domain"
)

// TriviaSource is the upstream gateway (e.g., the HTTP trivia API).
type TriviaSource interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FetchQuestions(ctx context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error)
}

// CategoryCache shares the category list between instances through Redis
// and falls back to the source on cache miss.
// Categories are stored in API order as a JSON array under trivia:categories.
type CategoryCache struct {
	client *redis.Client
	source TriviaSource
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewCategoryCache(client *redis.Client, source TriviaSource, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const categoriesKey = "trivia:categories"

func (c *CategoryCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := c.cached(ctx); ok {
		return cached, nil
	}

	result, err, _ := c.sf.Do(categoriesKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cached, ok := c.cached(ctx); ok {
			return cached, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

// Refresh reloads the list from the source and overwrites the cached copy.
func (c *CategoryCache) Refresh(ctx context.Context) error {
	_, err, _ := c.sf.Do(categoriesKey, func() (interface{}, error) {
		return c.load(ctx)
	})
	return err
}

func (c *CategoryCache) FetchQuestions(ctx context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error) {
	return c.source.FetchQuestions(ctx, categoryID, difficulty, amount)
}

func (c *CategoryCache) load(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.source.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}

	payload, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}
	// a failed write only costs a cache miss
	_ = c.client.Set(ctx, categoriesKey, payload, c.ttlWithJitter()).Err()

	return categories, nil
}

func (c *CategoryCache) cached(ctx context.Context) ([]domain.Category, bool) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("category cache read: %v", err)
		}
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil || len(categories) == 0 {
		return nil, false
	}
	return categories, true
}

func (c *CategoryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
