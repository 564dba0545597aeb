package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "evergreen/contexts/engagement/leaderboard-service/domain/errors"
	"evergreen/contexts/engagement/leaderboard-service/ports"
)

// RankedEntry is a ranking-store entry with its computed 1-based rank.
type RankedEntry struct {
	UserID string
	Score  int64
	Rank   int64
}

// Service exposes ranked reads over whichever RankingStore backend
// bootstrap selected.
type Service struct {
	Ranking ports.RankingStore
	Logger  *slog.Logger
}

func (s Service) Top(ctx context.Context, limit int) ([]RankedEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.Ranking.TopN(ctx, limit)
	if err != nil {
		return nil, err
	}
	return withRanks(entries, 1), nil
}

func (s Service) RankAndScore(ctx context.Context, userID string) (RankedEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return RankedEntry{}, domainerrors.ErrInvalidUserID
	}
	rank, score, err := s.Ranking.RankAndScore(ctx, userID)
	if err != nil {
		return RankedEntry{}, err
	}
	return RankedEntry{UserID: userID, Score: score, Rank: rank}, nil
}

func (s Service) Range(ctx context.Context, startRank, endRank int64) ([]RankedEntry, error) {
	if startRank < 1 || endRank < startRank {
		return nil, domainerrors.ErrInvalidRange
	}
	entries, err := s.Ranking.Range(ctx, startRank, endRank)
	if err != nil {
		return nil, err
	}
	resolveLogger(s.Logger).Info("rank window served",
		"event", "leaderboard_range_served",
		"module", "engagement/leaderboard-service",
		"layer", "application",
		"start_rank", startRank,
		"end_rank", endRank,
		"entries", len(entries),
	)
	return withRanks(entries, startRank), nil
}

func (s Service) Count(ctx context.Context) (int64, error) {
	return s.Ranking.Count(ctx)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func withRanks(entries []ports.ScoreEntry, firstRank int64) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for i, entry := range entries {
		ranked = append(ranked, RankedEntry{
			UserID: entry.UserID,
			Score:  entry.Score,
			Rank:   firstRank + int64(i),
		})
	}
	return ranked
}
