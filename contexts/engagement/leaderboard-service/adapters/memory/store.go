package memory

import (
	"context"
	"sort"
	"sync"

	domainerrors "evergreen/contexts/engagement/leaderboard-service/domain/errors"
	"evergreen/contexts/engagement/leaderboard-service/ports"
)

// Store is the in-process ranking fallback used when no redis backend is
// configured. Process-lifetime only; it implements the same ordering rule
// as the redis adapter (score descending, ties by userID descending).
type Store struct {
	mu     sync.RWMutex
	scores map[string]int64
}

func NewStore() *Store {
	return &Store{scores: make(map[string]int64)}
}

func (s *Store) IncrementScore(_ context.Context, userID string, delta int64) (int64, error) {
	if userID == "" {
		return 0, domainerrors.ErrInvalidUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[userID] += delta
	return s.scores[userID], nil
}

func (s *Store) TopN(_ context.Context, limit int) ([]ports.ScoreEntry, error) {
	if limit <= 0 {
		return []ports.ScoreEntry{}, nil
	}
	entries := s.ordered()
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) RankAndScore(_ context.Context, userID string) (int64, int64, error) {
	if userID == "" {
		return 0, 0, domainerrors.ErrInvalidUserID
	}
	s.mu.RLock()
	_, tracked := s.scores[userID]
	s.mu.RUnlock()
	if !tracked {
		return ports.RankNotTracked, 0, nil
	}
	for i, entry := range s.ordered() {
		if entry.UserID == userID {
			return int64(i) + 1, entry.Score, nil
		}
	}
	return ports.RankNotTracked, 0, nil
}

func (s *Store) Range(_ context.Context, startRank, endRank int64) ([]ports.ScoreEntry, error) {
	if startRank < 1 || endRank < startRank {
		return nil, domainerrors.ErrInvalidRange
	}
	entries := s.ordered()
	if startRank > int64(len(entries)) {
		return []ports.ScoreEntry{}, nil
	}
	if endRank > int64(len(entries)) {
		endRank = int64(len(entries))
	}
	return entries[startRank-1 : endRank], nil
}

func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.scores)), nil
}

func (s *Store) Reset(_ context.Context, userID string) error {
	if userID == "" {
		return domainerrors.ErrInvalidUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, userID)
	return nil
}

func (s *Store) ordered() []ports.ScoreEntry {
	s.mu.RLock()
	entries := make([]ports.ScoreEntry, 0, len(s.scores))
	for userID, score := range s.scores {
		entries = append(entries, ports.ScoreEntry{UserID: userID, Score: score})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].UserID > entries[j].UserID
		}
		return entries[i].Score > entries[j].Score
	})
	return entries
}
