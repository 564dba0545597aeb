package memory

import (
	"context"
	"errors"
	"testing"

	domainerrors "evergreen/contexts/engagement/leaderboard-service/domain/errors"
	"evergreen/contexts/engagement/leaderboard-service/ports"
)

func seed(t *testing.T, store *Store, scores map[string]int64) {
	t.Helper()
	for userID, score := range scores {
		if _, err := store.IncrementScore(context.Background(), userID, score); err != nil {
			t.Fatalf("seed %s: %v", userID, err)
		}
	}
}

func TestIncrementScoreAccumulates(t *testing.T) {
	store := NewStore()

	if _, err := store.IncrementScore(context.Background(), "user-1", 30); err != nil {
		t.Fatalf("increment: %v", err)
	}
	total, err := store.IncrementScore(context.Background(), "user-1", 70)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if total != 100 {
		t.Fatalf("expected 100, got %d", total)
	}
}

func TestIncrementScoreAcceptsNegativeDeltas(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 40})

	total, err := store.IncrementScore(context.Background(), "user-1", -100)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if total != -60 {
		t.Fatalf("expected -60, got %d", total)
	}
}

func TestTopNOrdersByScoreThenUserID(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{
		"user-a": 300,
		"user-b": 100,
		"user-c": 300,
		"user-d": 200,
	})

	entries, err := store.TopN(context.Background(), 3)
	if err != nil {
		t.Fatalf("topn: %v", err)
	}
	want := []ports.ScoreEntry{
		{UserID: "user-c", Score: 300},
		{UserID: "user-a", Score: 300},
		{UserID: "user-d", Score: 200},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestTopNTruncatesToPopulation(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 10, "user-2": 20})

	entries, err := store.TopN(context.Background(), 50)
	if err != nil {
		t.Fatalf("topn: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestRankAndScoreForTrackedUser(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 100, "user-2": 250, "user-3": 175})

	rank, score, err := store.RankAndScore(context.Background(), "user-3")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 2 || score != 175 {
		t.Fatalf("expected rank 2 score 175, got rank %d score %d", rank, score)
	}
}

func TestRankAndScoreForUntrackedUser(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 100})

	rank, score, err := store.RankAndScore(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != ports.RankNotTracked || score != 0 {
		t.Fatalf("expected untracked sentinel, got rank %d score %d", rank, score)
	}
}

func TestRangeBounds(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{
		"user-1": 500,
		"user-2": 400,
		"user-3": 300,
		"user-4": 200,
		"user-5": 100,
	})

	entries, err := store.Range(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].UserID != "user-2" || entries[2].UserID != "user-4" {
		t.Fatalf("unexpected window: %+v", entries)
	}
}

func TestRangePastPopulationIsEmpty(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 100})

	entries, err := store.Range(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty window, got %+v", entries)
	}
}

func TestRangeClampsPartialWindow(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 300, "user-2": 200, "user-3": 100})

	entries, err := store.Range(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestRangeRejectsInvalidBounds(t *testing.T) {
	store := NewStore()

	if _, err := store.Range(context.Background(), 0, 5); !errors.Is(err, domainerrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for start 0, got %v", err)
	}
	if _, err := store.Range(context.Background(), 5, 2); !errors.Is(err, domainerrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for inverted bounds, got %v", err)
	}
}

func TestCountTracksDistinctUsers(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 100, "user-2": 200})

	if _, err := store.IncrementScore(context.Background(), "user-1", 50); err != nil {
		t.Fatalf("increment: %v", err)
	}
	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 tracked users, got %d", count)
	}
}

func TestResetRemovesUserFromRanking(t *testing.T) {
	store := NewStore()
	seed(t, store, map[string]int64{"user-1": 100, "user-2": 200})

	if err := store.Reset(context.Background(), "user-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	rank, _, err := store.RankAndScore(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != ports.RankNotTracked {
		t.Fatalf("expected untracked after reset, got rank %d", rank)
	}
	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 tracked user after reset, got %d", count)
	}
}
