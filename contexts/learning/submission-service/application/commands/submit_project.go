package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"evergreen/contexts/learning/submission-service/application"
	"evergreen/contexts/learning/submission-service/domain/entities"
	domainerrors "evergreen/contexts/learning/submission-service/domain/errors"
	"evergreen/contexts/learning/submission-service/ports"
	"evergreen/internal/shared/events"
)

type SubmitProjectCommand struct {
	UserID      string
	CourseID    string
	Description string
	ImageURL    string
	Geotag      *entities.Geotag
}

type SubmitProjectResult struct {
	Submission entities.Submission
	JobID      string
}

type SubmitProjectUseCase struct {
	Repository ports.Repository
	Dispatcher ports.EventDispatcher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute persists the submission, scores it, and on a verified outcome
// dispatches project_verified. Dispatch problems are logged and swallowed:
// accepting the submission is the primary action and must not fail because
// gamification processing did.
func (uc SubmitProjectUseCase) Execute(ctx context.Context, cmd SubmitProjectCommand) (SubmitProjectResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	courseID := strings.TrimSpace(cmd.CourseID)
	if userID == "" || courseID == "" {
		return SubmitProjectResult{}, domainerrors.ErrInvalidSubmission
	}

	score, verified := application.ScoreSubmission(application.ScoreInput{
		HasImage:    strings.TrimSpace(cmd.ImageURL) != "",
		HasGeotag:   cmd.Geotag != nil,
		Description: cmd.Description,
	})

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitProjectResult{}, err
	}
	status := entities.SubmissionStatusNeedsReview
	if verified {
		status = entities.SubmissionStatusVerified
	}
	submission := entities.Submission{
		SubmissionID: submissionID,
		UserID:       userID,
		CourseID:     courseID,
		Description:  strings.TrimSpace(cmd.Description),
		ImageURL:     strings.TrimSpace(cmd.ImageURL),
		Geotag:       cmd.Geotag,
		AIScore:      score,
		Verified:     verified,
		Status:       status,
		CreatedAt:    uc.Clock.Now().UTC(),
	}
	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return SubmitProjectResult{}, err
	}

	logger.Info("project submission accepted",
		"event", "submission_accepted",
		"module", "learning/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"user_id", submission.UserID,
		"ai_score", submission.AIScore,
		"verified", submission.Verified,
	)

	result := SubmitProjectResult{Submission: submission}
	if verified {
		result.JobID = uc.dispatchVerified(ctx, submission)
	}
	return result, nil
}

func (uc SubmitProjectUseCase) dispatchVerified(ctx context.Context, submission entities.Submission) string {
	logger := application.ResolveLogger(uc.Logger)
	data, err := json.Marshal(map[string]any{
		"user_id":       submission.UserID,
		"submission_id": submission.SubmissionID,
		"course_id":     submission.CourseID,
		"ai_score":      submission.AIScore,
	})
	if err != nil {
		logger.Error("verified-project payload encode failed",
			"event", "submission_dispatch_encode_failed",
			"module", "learning/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
		return ""
	}
	jobID, err := uc.Dispatcher.Dispatch(ctx, events.Event{
		Name:   events.ProjectVerified,
		UserID: submission.UserID,
		Data:   data,
	})
	if err != nil {
		logger.Error("verified-project dispatch rejected",
			"event", "submission_dispatch_rejected",
			"module", "learning/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
		return ""
	}
	return jobID
}
