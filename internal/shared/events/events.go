package events

import (
	"encoding/json"
	"time"
)

// Closed set of domain event names routed through the gamification pipeline.
const (
	ProjectVerified = "project_verified"
	ModuleCompleted = "module_completed"
)

// Event is the shared domain-event shape. UserID is mandatory for every
// event; Data carries the event-specific remainder of the payload.
type Event struct {
	EventID    string          `json:"event_id"`
	Name       string          `json:"name"`
	UserID     string          `json:"user_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// ProjectVerifiedData is the payload attached to project_verified events
// by the submission collaborator.
type ProjectVerifiedData struct {
	SubmissionID string `json:"submission_id"`
	CourseID     string `json:"course_id"`
	AIScore      int    `json:"ai_score"`
}

// Known reports whether name belongs to the closed event-name set.
func Known(name string) bool {
	switch name {
	case ProjectVerified, ModuleCompleted:
		return true
	default:
		return false
	}
}
