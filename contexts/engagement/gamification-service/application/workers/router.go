package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"evergreen/contexts/engagement/gamification-service/application"
	"evergreen/internal/shared/events"
)

// XP awarded per event kind.
const (
	XPProjectVerified int64 = 50
)

// Router maps event names to their handlers. It serves both delivery
// paths: the asynq worker pool and the inline dispatcher.
type Router struct {
	Scores application.Service
	Logger *slog.Logger
}

func (r Router) Handle(ctx context.Context, event events.Event) error {
	switch event.Name {
	case events.ProjectVerified:
		return r.handleProjectVerified(ctx, event)
	case events.ModuleCompleted:
		// Reserved: module completion does not award XP yet.
		return nil
	default:
		return fmt.Errorf("no handler for event %q", event.Name)
	}
}

func (r Router) handleProjectVerified(ctx context.Context, event events.Event) error {
	result, err := r.Scores.AddXP(ctx, event.UserID, XPProjectVerified)
	if err != nil {
		return fmt.Errorf("award verified-project xp: %w", err)
	}
	var detail events.ProjectVerifiedData
	if len(event.Data) > 0 {
		_ = json.Unmarshal(event.Data, &detail)
	}
	application.ResolveLogger(r.Logger).Info("verified project rewarded",
		"event", "worker_project_verified_handled",
		"module", "engagement/gamification-service",
		"layer", "worker",
		"user_id", event.UserID,
		"submission_id", detail.SubmissionID,
		"course_id", detail.CourseID,
		"total_xp", result.Total,
		"new_badges", len(result.NewBadges),
	)
	return nil
}
