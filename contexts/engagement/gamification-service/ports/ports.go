package ports

import (
	"context"
	"time"

	"evergreen/internal/shared/events"
)

// ScoreRecord is the authoritative per-user ledger row.
type ScoreRecord struct {
	UserID    string
	XP        int64
	UpdatedAt time.Time
}

// BadgeGrant is one badge held by a user. A user holds each badge at most
// once; grants are additive and never revoked by the pipeline.
type BadgeGrant struct {
	GrantID   string
	UserID    string
	Badge     string
	GrantedAt time.Time
}

// EventFailure is a durable record of an event whose processing exhausted
// its retries (or failed inline), kept for manual replay.
type EventFailure struct {
	FailureID string
	EventName string
	UserID    string
	Payload   []byte
	Cause     string
	FailedAt  time.Time
}

// ScoreRepository is the durable score ledger. IncrementXP and GrantBadge
// must be atomic at the storage layer so concurrent event handlers for the
// same user can neither lose an XP update nor duplicate a badge.
type ScoreRepository interface {
	// IncrementXP adds delta to the user's XP, creating an implicit zero
	// record when absent, and returns the new total.
	IncrementXP(ctx context.Context, userID string, delta int64, updatedAt time.Time) (int64, error)

	// GetScore returns the user's record, or a zero record when absent.
	GetScore(ctx context.Context, userID string) (ScoreRecord, error)

	// GrantBadge inserts the grant if the user does not already hold the
	// badge and reports whether the grant was new.
	GrantBadge(ctx context.Context, grant BadgeGrant) (bool, error)

	ListBadges(ctx context.Context, userID string) ([]BadgeGrant, error)
}

// RankingMirror is the best-effort ranked view fed after every ledger
// write. Mirror failures are logged and swallowed; the ledger stays
// authoritative.
type RankingMirror interface {
	IncrementScore(ctx context.Context, userID string, delta int64) (int64, error)
}

// FailureStore persists exhausted or inline-failed events.
type FailureStore interface {
	AppendFailure(ctx context.Context, failure EventFailure) error
	ListFailures(ctx context.Context, limit int) ([]EventFailure, error)
}

// Dispatcher submits a domain event for processing and returns the queue
// job identifier, or an empty string when the event ran inline. Apart from
// payload validation, dispatch never propagates processing errors to the
// caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
