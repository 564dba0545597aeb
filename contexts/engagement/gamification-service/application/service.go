package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"evergreen/contexts/engagement/gamification-service/domain/badges"
	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/contexts/engagement/gamification-service/ports"
)

// Service owns the score ledger flow: atomic XP increments, the
// best-effort ranking mirror, and badge evaluation after every change.
type Service struct {
	Repo   ports.ScoreRepository
	Mirror ports.RankingMirror
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type AddXPResult struct {
	UserID    string
	Total     int64
	NewBadges []string
}

type UserSummary struct {
	UserID    string
	XP        int64
	Badges    []string
	UpdatedAt time.Time
}

// AddXP applies the delta to the ledger, mirrors it into the ranking
// store, and grants any newly crossed badges. The mirror write is a single
// attempt; its failure is logged and swallowed so the ledger write stands.
func (s Service) AddXP(ctx context.Context, userID string, delta int64) (AddXPResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return AddXPResult{}, domainerrors.ErrInvalidUserID
	}
	logger := ResolveLogger(s.Logger)
	now := s.now()

	total, err := s.Repo.IncrementXP(ctx, userID, delta, now)
	if err != nil {
		return AddXPResult{}, err
	}

	if s.Mirror != nil {
		if _, err := s.Mirror.IncrementScore(ctx, userID, delta); err != nil {
			logger.Warn("ranking mirror write failed",
				"event", "gamification_mirror_failed",
				"module", "engagement/gamification-service",
				"layer", "application",
				"user_id", userID,
				"delta", delta,
				"error", err.Error(),
			)
		}
	}

	newBadges, err := s.evaluateBadges(ctx, userID, total, now)
	if err != nil {
		return AddXPResult{}, err
	}

	logger.Info("xp added",
		"event", "gamification_xp_added",
		"module", "engagement/gamification-service",
		"layer", "application",
		"user_id", userID,
		"delta", delta,
		"total_xp", total,
		"new_badges", len(newBadges),
	)
	return AddXPResult{UserID: userID, Total: total, NewBadges: newBadges}, nil
}

// evaluateBadges grants every badge whose threshold the new total has
// reached. Grants are insert-if-absent at the storage layer, so repeated
// crossings and concurrent evaluations stay idempotent.
func (s Service) evaluateBadges(ctx context.Context, userID string, total int64, now time.Time) ([]string, error) {
	logger := ResolveLogger(s.Logger)
	var granted []string
	for _, badge := range badges.EligibleFor(total) {
		grantID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		fresh, err := s.Repo.GrantBadge(ctx, ports.BadgeGrant{
			GrantID:   grantID,
			UserID:    userID,
			Badge:     badge,
			GrantedAt: now,
		})
		if err != nil {
			return nil, err
		}
		if fresh {
			granted = append(granted, badge)
			logger.Info("badge granted",
				"event", "gamification_badge_granted",
				"module", "engagement/gamification-service",
				"layer", "application",
				"user_id", userID,
				"badge", badge,
				"total_xp", total,
			)
		}
	}
	return granted, nil
}

func (s Service) GetSummary(ctx context.Context, userID string) (UserSummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserSummary{}, domainerrors.ErrInvalidUserID
	}
	record, err := s.Repo.GetScore(ctx, userID)
	if err != nil {
		return UserSummary{}, err
	}
	grants, err := s.Repo.ListBadges(ctx, userID)
	if err != nil {
		return UserSummary{}, err
	}
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].GrantedAt.Before(grants[j].GrantedAt)
	})
	held := make([]string, 0, len(grants))
	for _, grant := range grants {
		held = append(held, grant.Badge)
	}
	return UserSummary{
		UserID:    userID,
		XP:        record.XP,
		Badges:    held,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

// ResolveLogger falls back to the default logger so nil Logger fields stay
// usable in tests.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
