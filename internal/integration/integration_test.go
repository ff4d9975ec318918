package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
	pgstore "trivia-quiz/internal/infra/postgres"
	pgmigrations "trivia-quiz/internal/infra/postgres/migrations"
	infraredis "trivia-quiz/internal/infra/redis"
)

func TestCompletedQuizIsRecorded(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateSchema(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()
	recorder := pgstore.NewResultRecorder(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	gateway := infraredis.NewCategoryCache(redisClient, sampleSource(), 5*time.Minute)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	service := app.NewQuizService(sessionStore, gateway, app.WithRecorder(recorder))

	session := service.Open(ctx, "u1")
	if len(session.View().Categories) != 1 {
		t.Fatalf("expected categories from cache, got %+v", session.View().Categories)
	}
	if err := session.SelectDifficulty(domain.DifficultyHard); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.StartQuiz(ctx, 22, nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, answer := range []string{"Paris", "Danube"} {
		if _, err := session.SubmitAnswer(answer); err != nil {
			t.Fatalf("submit %s: %v", answer, err)
		}
		session.AdvanceNow()
	}

	results, err := recorder.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one recorded result, got %d", len(results))
	}
	got := results[0]
	if got.PlayerID != "u1" || got.Score != 1 || got.Total != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.RequestedDifficulty != domain.DifficultyHard || got.ActualDifficulty != domain.DifficultyAny {
		t.Fatalf("expected hard/any, got %s/%s", got.RequestedDifficulty, got.ActualDifficulty)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateSchema(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

// sampleSource has no hard questions, so starting at hard exercises the fallback.
func sampleSource() *memory.StaticSource {
	return memory.NewStaticSource(
		[]domain.Category{{ID: 22, Name: "Geography"}},
		map[int][]domain.Question{
			22: {
				{Text: "Capital of France?", Difficulty: "easy", CorrectAnswer: "Paris", IncorrectAnswers: []string{"Lyon", "Nice", "Lille"}},
				{Text: "Longest river in Europe?", Difficulty: "medium", CorrectAnswer: "Volga", IncorrectAnswers: []string{"Danube", "Rhine", "Loire"}},
			},
		},
	)
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
