package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"evergreen/contexts/engagement/gamification-service/adapters/memory"
	"evergreen/internal/shared/events"
)

func TestExhaustionHookAppendsFailureRow(t *testing.T) {
	store := memory.NewStore()
	hook := exhaustionHook(store, slog.Default())

	hook(context.Background(), events.Event{
		EventID: "evt-1",
		Name:    events.ProjectVerified,
		UserID:  "user-1",
		Data:    json.RawMessage(`{"submission_id":"sub-1"}`),
	}, errors.New("ledger unavailable"))

	failures, err := store.ListFailures(context.Background(), 0)
	if err != nil {
		t.Fatalf("list failures: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected one failure row, got %d", len(failures))
	}
	failure := failures[0]
	if failure.EventName != events.ProjectVerified || failure.UserID != "user-1" {
		t.Fatalf("unexpected failure row: %+v", failure)
	}
	if failure.Cause != "ledger unavailable" {
		t.Fatalf("unexpected cause %q", failure.Cause)
	}
	if failure.FailureID == "" {
		t.Error("failure row must carry an identifier")
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7000": ":7000",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Errorf("normalizeAddr(%q): expected %q, got %q", in, want, got)
		}
	}
}
