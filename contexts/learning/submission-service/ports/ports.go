package ports

import (
	"context"
	"time"

	"evergreen/contexts/learning/submission-service/domain/entities"
	"evergreen/internal/shared/events"
)

type Repository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	ListSubmissions(ctx context.Context, userID string) ([]entities.Submission, error)
}

// EventDispatcher is the gamification boundary. Dispatch failures must
// never fail submission handling.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event events.Event) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
