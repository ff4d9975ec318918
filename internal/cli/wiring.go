package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/opentdb"
	pgstore "trivia-quiz/internal/infra/postgres"
	rediscache "trivia-quiz/internal/infra/redis"
)

type cachedGateway interface {
	app.Gateway
	Refresh(ctx context.Context) error
}

type resultHistory interface {
	app.ResultRecorder
	Recent(ctx context.Context, limit int) ([]domain.Result, error)
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// buildGateway picks the trivia source and wraps it in a category cache,
// shared through Redis when a client is given.
func buildGateway(cfg config.Config, opts rootOptions, redisClient *redis.Client) cachedGateway {
	var source memory.TriviaSource
	if opts.offline {
		source = memory.NewStaticSource(sampleCategories(), sampleQuestions())
	} else {
		baseURL := opts.baseURL
		if baseURL == "" {
			baseURL = cfg.Trivia.BaseURL
		}
		source = opentdb.NewClient(baseURL, config.TTLDuration(cfg.Trivia.Timeout, 10*time.Second))
	}

	ttl := config.TTLDuration(cfg.Trivia.CategoriesTTL, time.Hour)
	if redisClient != nil {
		return rediscache.NewCategoryCache(redisClient, source, ttl)
	}
	return memory.NewCategoryCache(source, ttl)
}

// openHistory connects the Postgres result store, or an in-memory log when
// Postgres is not configured. close releases the pool.
func openHistory(ctx context.Context, cfg config.Config) (resultHistory, func(), error) {
	if cfg.Postgres.URL == "" {
		return memory.NewResultLog(), func() {}, nil
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pgstore.NewResultRecorder(pool), pool.Close, nil
}

func controllerOptions(cfg config.Config, recorder app.ResultRecorder) []app.Option {
	return []app.Option{
		app.WithAdvanceDelay(config.TTLDuration(cfg.Trivia.AdvanceDelay, app.DefaultAdvanceDelay)),
		app.WithQuestionCount(cfg.Trivia.Amount),
		app.WithRecorder(recorder),
	}
}
