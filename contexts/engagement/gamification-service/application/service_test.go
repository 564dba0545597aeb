package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"evergreen/contexts/engagement/gamification-service/adapters/memory"
	"evergreen/contexts/engagement/gamification-service/domain/badges"
	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/contexts/engagement/gamification-service/ports"
)

type failingMirror struct {
	calls int
}

func (m *failingMirror) IncrementScore(_ context.Context, _ string, _ int64) (int64, error) {
	m.calls++
	return 0, errors.New("ranking backend unreachable")
}

type recordingMirror struct {
	mu     sync.Mutex
	scores map[string]int64
}

func (m *recordingMirror) IncrementScore(_ context.Context, userID string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scores == nil {
		m.scores = make(map[string]int64)
	}
	m.scores[userID] += delta
	return m.scores[userID], nil
}

func newService(mirror ports.RankingMirror) Service {
	store := memory.NewStore()
	return Service{
		Repo:   store,
		Mirror: mirror,
		Clock:  store,
		IDGen:  store,
	}
}

func TestAddXPAccumulatesDeltas(t *testing.T) {
	service := newService(&recordingMirror{})
	ctx := context.Background()

	deltas := []int64{10, 25, 5, 60}
	var want int64
	var total int64
	for _, delta := range deltas {
		result, err := service.AddXP(ctx, "user-1", delta)
		if err != nil {
			t.Fatalf("add xp failed: %v", err)
		}
		want += delta
		total = result.Total
	}
	if total != want {
		t.Fatalf("expected total %d, got %d", want, total)
	}
}

func TestAddXPMirrorsDeltaToRanking(t *testing.T) {
	mirror := &recordingMirror{}
	service := newService(mirror)

	if _, err := service.AddXP(context.Background(), "user-1", 70); err != nil {
		t.Fatalf("add xp failed: %v", err)
	}
	if mirror.scores["user-1"] != 70 {
		t.Fatalf("expected mirrored score 70, got %d", mirror.scores["user-1"])
	}
}

func TestAddXPSucceedsWhenMirrorFails(t *testing.T) {
	mirror := &failingMirror{}
	service := newService(mirror)

	result, err := service.AddXP(context.Background(), "user-1", 30)
	if err != nil {
		t.Fatalf("ledger write must stand on mirror failure, got: %v", err)
	}
	if result.Total != 30 {
		t.Fatalf("expected total 30, got %d", result.Total)
	}
	if mirror.calls != 1 {
		t.Fatalf("expected a single mirror attempt, got %d", mirror.calls)
	}
}

func TestBadgeThresholdFlow(t *testing.T) {
	service := newService(&recordingMirror{})
	ctx := context.Background()

	if _, err := service.AddXP(ctx, "user-1", 190); err != nil {
		t.Fatalf("seed xp failed: %v", err)
	}

	result, err := service.AddXP(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("add xp failed: %v", err)
	}
	if result.Total != 240 {
		t.Fatalf("expected total 240, got %d", result.Total)
	}
	if len(result.NewBadges) != 1 || result.NewBadges[0] != badges.Trailblazer {
		t.Fatalf("expected trailblazer grant, got %v", result.NewBadges)
	}

	result, err = service.AddXP(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("add xp failed: %v", err)
	}
	if result.Total != 290 || len(result.NewBadges) != 0 {
		t.Fatalf("expected no new badge at 290, got %v", result.NewBadges)
	}

	result, err = service.AddXP(ctx, "user-1", 250)
	if err != nil {
		t.Fatalf("add xp failed: %v", err)
	}
	if result.Total != 540 {
		t.Fatalf("expected total 540, got %d", result.Total)
	}
	if len(result.NewBadges) != 1 || result.NewBadges[0] != badges.ImpactHero {
		t.Fatalf("expected impact hero grant, got %v", result.NewBadges)
	}

	summary, err := service.GetSummary(ctx, "user-1")
	if err != nil {
		t.Fatalf("get summary failed: %v", err)
	}
	if len(summary.Badges) != 2 {
		t.Fatalf("badges are additive, expected both held: %v", summary.Badges)
	}
}

func TestRepeatedCrossingsNeverDuplicateBadge(t *testing.T) {
	service := newService(&recordingMirror{})
	ctx := context.Background()

	if _, err := service.AddXP(ctx, "user-1", 210); err != nil {
		t.Fatalf("seed xp failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := service.AddXP(ctx, "user-1", 10); err != nil {
			t.Fatalf("add xp failed: %v", err)
		}
	}

	summary, err := service.GetSummary(ctx, "user-1")
	if err != nil {
		t.Fatalf("get summary failed: %v", err)
	}
	count := 0
	for _, badge := range summary.Badges {
		if badge == badges.Trailblazer {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected trailblazer exactly once, got %d", count)
	}
}

func TestConcurrentAddXPLosesNoUpdates(t *testing.T) {
	service := newService(&recordingMirror{})
	ctx := context.Background()

	const workers = 20
	const delta = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := service.AddXP(ctx, "user-1", delta); err != nil {
				t.Errorf("add xp failed: %v", err)
			}
		}()
	}
	wg.Wait()

	summary, err := service.GetSummary(ctx, "user-1")
	if err != nil {
		t.Fatalf("get summary failed: %v", err)
	}
	if summary.XP != workers*delta {
		t.Fatalf("lost updates: expected %d, got %d", workers*delta, summary.XP)
	}
}

func TestAddXPValidation(t *testing.T) {
	service := newService(&recordingMirror{})

	if _, err := service.AddXP(context.Background(), "  ", 10); !errors.Is(err, domainerrors.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestAddXPZeroDeltaLeavesTotalUnchanged(t *testing.T) {
	service := newService(&recordingMirror{})
	ctx := context.Background()

	if _, err := service.AddXP(ctx, "user-1", 100); err != nil {
		t.Fatalf("seed xp failed: %v", err)
	}
	result, err := service.AddXP(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("zero delta must not be an error, got %v", err)
	}
	if result.Total != 100 {
		t.Fatalf("expected unchanged total 100, got %d", result.Total)
	}
}
