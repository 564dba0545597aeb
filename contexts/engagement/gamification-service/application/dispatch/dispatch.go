package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"evergreen/contexts/engagement/gamification-service/application"
	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/contexts/engagement/gamification-service/ports"
	"evergreen/internal/shared/events"
)

// Handler processes one event delivery.
type Handler func(ctx context.Context, event events.Event) error

// Enqueuer is the queue client surface the queued dispatcher needs.
// Satisfied by internal/platform/queue.Client.
type Enqueuer interface {
	Enqueue(ctx context.Context, event events.Event) (string, error)
}

// InlineDispatcher executes events synchronously on the caller's
// goroutine. It is the constructor-time fallback when no queue
// infrastructure is configured, and the last resort of the queued
// dispatcher. Handler failures are logged, recorded to the failure store,
// and swallowed: a primary action never fails because gamification
// processing failed.
type InlineDispatcher struct {
	Handle   Handler
	Failures ports.FailureStore
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (d InlineDispatcher) Dispatch(ctx context.Context, event events.Event) (string, error) {
	prepared, err := d.prepare(ctx, event)
	if err != nil {
		return "", err
	}
	d.run(ctx, prepared)
	return "", nil
}

func (d InlineDispatcher) run(ctx context.Context, event events.Event) {
	logger := application.ResolveLogger(d.Logger)
	if err := d.Handle(ctx, event); err != nil {
		logger.Error("inline event execution failed",
			"event", "dispatch_inline_failed",
			"module", "engagement/gamification-service",
			"layer", "application",
			"event_name", event.Name,
			"user_id", event.UserID,
			"error", err.Error(),
		)
		d.recordFailure(ctx, event, err)
		return
	}
	logger.Info("event executed inline",
		"event", "dispatch_inline_completed",
		"module", "engagement/gamification-service",
		"layer", "application",
		"event_name", event.Name,
		"user_id", event.UserID,
	)
}

func (d InlineDispatcher) recordFailure(ctx context.Context, event events.Event, cause error) {
	if d.Failures == nil {
		return
	}
	failureID, err := d.IDGen.NewID(ctx)
	if err != nil {
		failureID = event.EventID
	}
	if err := d.Failures.AppendFailure(ctx, ports.EventFailure{
		FailureID: failureID,
		EventName: event.Name,
		UserID:    event.UserID,
		Payload:   event.Data,
		Cause:     cause.Error(),
		FailedAt:  d.now(),
	}); err != nil {
		application.ResolveLogger(d.Logger).Error("failure record write failed",
			"event", "dispatch_failure_record_failed",
			"module", "engagement/gamification-service",
			"layer", "application",
			"event_name", event.Name,
			"error", err.Error(),
		)
	}
}

// prepare validates the payload and stamps identity fields. Validation is
// the only dispatch error surfaced to callers.
func (d InlineDispatcher) prepare(ctx context.Context, event events.Event) (events.Event, error) {
	if !events.Known(event.Name) {
		return events.Event{}, domainerrors.ErrUnknownEvent
	}
	event.UserID = strings.TrimSpace(event.UserID)
	if event.UserID == "" {
		return events.Event{}, domainerrors.ErrMissingUserID
	}
	if event.EventID == "" {
		if id, err := d.IDGen.NewID(ctx); err == nil {
			event.EventID = id
		}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = d.now()
	}
	return event, nil
}

func (d InlineDispatcher) now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock.Now().UTC()
}

// QueuedDispatcher enqueues events for the bounded worker pool. Enqueue
// failure falls back to inline execution; if that also fails the error has
// already been logged and recorded, and the caller still sees success.
type QueuedDispatcher struct {
	Queue  Enqueuer
	Inline InlineDispatcher
	Logger *slog.Logger
}

func (d QueuedDispatcher) Dispatch(ctx context.Context, event events.Event) (string, error) {
	prepared, err := d.Inline.prepare(ctx, event)
	if err != nil {
		return "", err
	}
	jobID, err := d.Queue.Enqueue(ctx, prepared)
	if err != nil {
		application.ResolveLogger(d.Logger).Error("event enqueue failed, running inline",
			"event", "dispatch_enqueue_failed",
			"module", "engagement/gamification-service",
			"layer", "application",
			"event_name", prepared.Name,
			"user_id", prepared.UserID,
			"error", err.Error(),
		)
		d.Inline.run(ctx, prepared)
		return "", nil
	}
	return jobID, nil
}
