package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func TestCategoryCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	source := &countingSource{TriviaSource: sampleSource()}
	cache := NewCategoryCache(client, source, time.Minute)

	first, err := cache.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}
	if !mr.Exists(categoriesKey) {
		t.Fatalf("expected categories cached in redis")
	}

	// Second call should hit cache, source not incremented.
	second, _ := cache.ListCategories(context.Background())
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.calls)
	}
	if len(second) != len(first) || second[0] != first[0] || second[1] != first[1] {
		t.Fatalf("cached list differs: %+v vs %+v", second, first)
	}

	// Another instance sharing the same redis does not reload either.
	other := NewCategoryCache(client, source, time.Minute)
	if _, err := other.ListCategories(context.Background()); err != nil {
		t.Fatalf("list from second instance: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected shared cache hit, source calls=%d", source.calls)
	}
}

func TestCategoryCacheExpiresAndRefreshes(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{TriviaSource: sampleSource()}
	cache := NewCategoryCache(newClient(mr), source, time.Minute)

	_, _ = cache.ListCategories(context.Background())
	mr.FastForward(2 * time.Minute)
	_, _ = cache.ListCategories(context.Background())
	if source.calls != 2 {
		t.Fatalf("expected reload after ttl, got %d", source.calls)
	}

	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source.calls != 3 {
		t.Fatalf("expected refresh to hit source, got %d", source.calls)
	}
}

func TestCategoryCacheKeepsSourceOrder(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := memory.NewStaticSource(
		[]domain.Category{{ID: 22, Name: "Geography"}, {ID: 9, Name: "General Knowledge"}, {ID: 17, Name: "Science & Nature"}},
		nil,
	)
	cache := NewCategoryCache(newClient(mr), source, time.Minute)

	miss, err := cache.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	hit, err := cache.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list cached categories: %v", err)
	}
	want := []int{22, 9, 17}
	for name, got := range map[string][]domain.Category{"miss": miss, "hit": hit} {
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d categories, got %+v", name, len(want), got)
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Fatalf("%s: expected order %v, got %+v", name, want, got)
			}
		}
	}
	if hit[2].Name != "Science & Nature" {
		t.Fatalf("expected name kept, got %q", hit[2].Name)
	}
}

type countingSource struct {
	TriviaSource
	calls int
}

func (s *countingSource) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.calls++
	return s.TriviaSource.ListCategories(ctx)
}

func sampleSource() *memory.StaticSource {
	return memory.NewStaticSource(
		[]domain.Category{{ID: 9, Name: "General Knowledge"}, {ID: 22, Name: "Geography"}},
		nil,
	)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
