package memory

import (
	"context"
	"testing"

	"trivia-quiz/internal/domain"
)

func TestResultLogRecentNewestFirst(t *testing.T) {
	log := NewResultLog()
	for i := 1; i <= 3; i++ {
		_ = log.RecordResult(context.Background(), domain.Result{PlayerID: "p1", Score: i, Total: 10})
	}

	recent, err := log.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 3 || recent[1].Score != 2 {
		t.Fatalf("unexpected order: %+v", recent)
	}
}
