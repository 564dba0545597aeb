package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/contexts/engagement/gamification-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory ledger used in tests and local development. One
// mutex guards both the XP increment and the badge check-insert, which
// keeps the two storage-layer operations atomic under concurrent event
// handlers.
type Store struct {
	mu sync.RWMutex

	scores   map[string]ports.ScoreRecord
	badges   map[string]map[string]ports.BadgeGrant
	failures []ports.EventFailure
}

func NewStore() *Store {
	return &Store{
		scores: make(map[string]ports.ScoreRecord),
		badges: make(map[string]map[string]ports.BadgeGrant),
	}
}

func (s *Store) IncrementXP(_ context.Context, userID string, delta int64, updatedAt time.Time) (int64, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, domainerrors.ErrInvalidUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.scores[userID]
	record.UserID = userID
	record.XP += delta
	record.UpdatedAt = updatedAt.UTC()
	s.scores[userID] = record
	return record.XP, nil
}

func (s *Store) GetScore(_ context.Context, userID string) (ports.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID = strings.TrimSpace(userID)
	record := s.scores[userID]
	record.UserID = userID
	return record, nil
}

func (s *Store) GrantBadge(_ context.Context, grant ports.BadgeGrant) (bool, error) {
	userID := strings.TrimSpace(grant.UserID)
	badge := strings.TrimSpace(grant.Badge)
	if userID == "" || badge == "" {
		return false, domainerrors.ErrInvalidUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.badges[userID]; !ok {
		s.badges[userID] = make(map[string]ports.BadgeGrant)
	}
	if _, held := s.badges[userID][badge]; held {
		return false, nil
	}
	s.badges[userID][badge] = grant
	return true, nil
}

func (s *Store) ListBadges(_ context.Context, userID string) ([]ports.BadgeGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grants := make([]ports.BadgeGrant, 0, len(s.badges[strings.TrimSpace(userID)]))
	for _, grant := range s.badges[strings.TrimSpace(userID)] {
		grants = append(grants, grant)
	}
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].GrantedAt.Before(grants[j].GrantedAt)
	})
	return grants, nil
}

func (s *Store) AppendFailure(_ context.Context, failure ports.EventFailure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure)
	return nil
}

func (s *Store) ListFailures(_ context.Context, limit int) ([]ports.EventFailure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.failures) {
		limit = len(s.failures)
	}
	out := make([]ports.EventFailure, limit)
	copy(out, s.failures[:limit])
	return out, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
