package ports

import "context"

// RankNotTracked is the sentinel rank returned for users absent from the
// ranking store. Absence is never an error.
const RankNotTracked = -1

// ScoreEntry is one tracked user in backend order.
type ScoreEntry struct {
	UserID string
	Score  int64
}

// RankingStore is the ordered-score structure mirroring the ledger's XP.
// Both backends order entries by score descending; equal scores order by
// userID descending (the reverse-range order redis sorted sets produce
// natively), and the in-process backend applies the same rule.
//
// The store is a best-effort mirror: the score ledger stays authoritative
// and the two may diverge during backend outages.
type RankingStore interface {
	// IncrementScore atomically adds delta (may be negative) to the user's
	// tracked score, creating the entry at delta when absent, and returns
	// the new score.
	IncrementScore(ctx context.Context, userID string, delta int64) (int64, error)

	// TopN returns at most limit entries, highest score first.
	TopN(ctx context.Context, limit int) ([]ScoreEntry, error)

	// RankAndScore returns the user's 1-based rank and score, or
	// (RankNotTracked, 0) when the user is untracked.
	RankAndScore(ctx context.Context, userID string) (int64, int64, error)

	// Range returns entries between 1-based inclusive ranks. Callers bound
	// the span; the store does not.
	Range(ctx context.Context, startRank, endRank int64) ([]ScoreEntry, error)

	// Count returns the number of distinct tracked users.
	Count(ctx context.Context) (int64, error)

	// Reset removes the user's entry entirely (absence, not a zero score).
	Reset(ctx context.Context, userID string) error
}
