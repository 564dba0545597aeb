package dispatch

import (
	"context"
	"errors"
	"testing"

	"evergreen/contexts/engagement/gamification-service/adapters/memory"
	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/internal/shared/events"
)

type fakeEnqueuer struct {
	err     error
	jobID   string
	entries []events.Event
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, event events.Event) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.entries = append(f.entries, event)
	return f.jobID, nil
}

func newInline(handle Handler, store *memory.Store) InlineDispatcher {
	return InlineDispatcher{
		Handle:   handle,
		Failures: store,
		Clock:    store,
		IDGen:    store,
	}
}

func TestInlineDispatchRejectsUnknownEvent(t *testing.T) {
	store := memory.NewStore()
	called := false
	dispatcher := newInline(func(context.Context, events.Event) error {
		called = true
		return nil
	}, store)

	_, err := dispatcher.Dispatch(context.Background(), events.Event{Name: "tree_hugged", UserID: "user-1"})
	if !errors.Is(err, domainerrors.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if called {
		t.Fatal("handler must not run for an unknown event")
	}
}

func TestInlineDispatchRejectsMissingUserID(t *testing.T) {
	store := memory.NewStore()
	called := false
	dispatcher := newInline(func(context.Context, events.Event) error {
		called = true
		return nil
	}, store)

	_, err := dispatcher.Dispatch(context.Background(), events.Event{Name: events.ProjectVerified, UserID: "   "})
	if !errors.Is(err, domainerrors.ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
	if called {
		t.Fatal("handler must not run without a user identity")
	}
}

func TestInlineDispatchStampsIdentityAndTimestamp(t *testing.T) {
	store := memory.NewStore()
	var seen events.Event
	dispatcher := newInline(func(_ context.Context, event events.Event) error {
		seen = event
		return nil
	}, store)

	if _, err := dispatcher.Dispatch(context.Background(), events.Event{Name: events.ProjectVerified, UserID: "user-1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if seen.EventID == "" {
		t.Error("expected a generated event id")
	}
	if seen.OccurredAt.IsZero() {
		t.Error("expected a stamped occurrence time")
	}
}

func TestInlineDispatchSwallowsHandlerFailureAndRecordsIt(t *testing.T) {
	store := memory.NewStore()
	dispatcher := newInline(func(context.Context, events.Event) error {
		return errors.New("ledger write refused")
	}, store)

	jobID, err := dispatcher.Dispatch(context.Background(), events.Event{Name: events.ProjectVerified, UserID: "user-1"})
	if err != nil {
		t.Fatalf("handler failure must not surface to the caller, got %v", err)
	}
	if jobID != "" {
		t.Fatalf("inline dispatch has no job id, got %q", jobID)
	}

	failures, err := store.ListFailures(context.Background(), 0)
	if err != nil {
		t.Fatalf("list failures: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected one recorded failure, got %d", len(failures))
	}
	failure := failures[0]
	if failure.EventName != events.ProjectVerified || failure.UserID != "user-1" {
		t.Fatalf("unexpected failure record: %+v", failure)
	}
	if failure.Cause != "ledger write refused" {
		t.Fatalf("unexpected failure cause %q", failure.Cause)
	}
}

func TestQueuedDispatchReturnsJobID(t *testing.T) {
	store := memory.NewStore()
	queue := &fakeEnqueuer{jobID: "job-42"}
	dispatcher := QueuedDispatcher{
		Queue: queue,
		Inline: newInline(func(context.Context, events.Event) error {
			t.Fatal("queued dispatch must not execute inline")
			return nil
		}, store),
	}

	jobID, err := dispatcher.Dispatch(context.Background(), events.Event{Name: events.ProjectVerified, UserID: "user-1"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if jobID != "job-42" {
		t.Fatalf("expected job-42, got %q", jobID)
	}
	if len(queue.entries) != 1 {
		t.Fatalf("expected one enqueued event, got %d", len(queue.entries))
	}
	if queue.entries[0].EventID == "" {
		t.Error("enqueued event must carry an event id")
	}
}

func TestQueuedDispatchFallsBackInlineOnEnqueueFailure(t *testing.T) {
	store := memory.NewStore()
	handled := 0
	dispatcher := QueuedDispatcher{
		Queue: &fakeEnqueuer{err: errors.New("broker unreachable")},
		Inline: newInline(func(context.Context, events.Event) error {
			handled++
			return nil
		}, store),
	}

	jobID, err := dispatcher.Dispatch(context.Background(), events.Event{Name: events.ProjectVerified, UserID: "user-1"})
	if err != nil {
		t.Fatalf("enqueue failure must not surface to the caller, got %v", err)
	}
	if jobID != "" {
		t.Fatalf("fallback path has no job id, got %q", jobID)
	}
	if handled != 1 {
		t.Fatalf("expected exactly one inline execution, got %d", handled)
	}
}

func TestQueuedDispatchStillRejectsInvalidEvents(t *testing.T) {
	store := memory.NewStore()
	dispatcher := QueuedDispatcher{
		Queue:  &fakeEnqueuer{jobID: "job-1"},
		Inline: newInline(func(context.Context, events.Event) error { return nil }, store),
	}

	if _, err := dispatcher.Dispatch(context.Background(), events.Event{Name: "mystery"}); !errors.Is(err, domainerrors.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}
