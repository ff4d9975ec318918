package app

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffle returns a uniformly permuted copy of items using rng.
func Shuffle(rng *rand.Rand, items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Shuffler permutes an answer set. Implementations must not mutate the input.
type Shuffler func(items []string) []string

// NewRandomShuffler returns a goroutine-safe Shuffler seeded with seed.
func NewRandomShuffler(seed int64) Shuffler {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func(items []string) []string {
		mu.Lock()
		defer mu.Unlock()
		return Shuffle(rng, items)
	}
}

func defaultShuffler() Shuffler {
	return NewRandomShuffler(time.Now().UnixNano())
}
