package redisadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainerrors "evergreen/contexts/engagement/leaderboard-service/domain/errors"
	"evergreen/contexts/engagement/leaderboard-service/ports"
)

const defaultKey = "evergreen:leaderboard"

// Store backs the ranking contract with one redis sorted set. All ordering
// comes from ZREVRANGE semantics: score descending, ties by member
// descending.
type Store struct {
	client *redis.Client
	key    string
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, key: defaultKey}
}

func (s *Store) IncrementScore(ctx context.Context, userID string, delta int64) (int64, error) {
	if userID == "" {
		return 0, domainerrors.ErrInvalidUserID
	}
	score, err := s.client.ZIncrBy(ctx, s.key, float64(delta), userID).Result()
	if err != nil {
		return 0, fmt.Errorf("zincrby %s: %w", userID, err)
	}
	return int64(score), nil
}

func (s *Store) TopN(ctx context.Context, limit int) ([]ports.ScoreEntry, error) {
	if limit <= 0 {
		return []ports.ScoreEntry{}, nil
	}
	rows, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange top: %w", err)
	}
	return entriesFromRows(rows), nil
}

func (s *Store) RankAndScore(ctx context.Context, userID string) (int64, int64, error) {
	if userID == "" {
		return 0, 0, domainerrors.ErrInvalidUserID
	}
	rank, err := s.client.ZRevRank(ctx, s.key, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.RankNotTracked, 0, nil
		}
		return 0, 0, fmt.Errorf("zrevrank %s: %w", userID, err)
	}
	score, err := s.client.ZScore(ctx, s.key, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.RankNotTracked, 0, nil
		}
		return 0, 0, fmt.Errorf("zscore %s: %w", userID, err)
	}
	return rank + 1, int64(score), nil
}

func (s *Store) Range(ctx context.Context, startRank, endRank int64) ([]ports.ScoreEntry, error) {
	if startRank < 1 || endRank < startRank {
		return nil, domainerrors.ErrInvalidRange
	}
	rows, err := s.client.ZRevRangeWithScores(ctx, s.key, startRank-1, endRank-1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %d-%d: %w", startRank, endRank, err)
	}
	return entriesFromRows(rows), nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	total, err := s.client.ZCard(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard: %w", err)
	}
	return total, nil
}

func (s *Store) Reset(ctx context.Context, userID string) error {
	if userID == "" {
		return domainerrors.ErrInvalidUserID
	}
	if err := s.client.ZRem(ctx, s.key, userID).Err(); err != nil {
		return fmt.Errorf("zrem %s: %w", userID, err)
	}
	return nil
}

func entriesFromRows(rows []redis.Z) []ports.ScoreEntry {
	entries := make([]ports.ScoreEntry, 0, len(rows))
	for _, row := range rows {
		member, _ := row.Member.(string)
		entries = append(entries, ports.ScoreEntry{
			UserID: member,
			Score:  int64(row.Score),
		})
	}
	return entries
}
