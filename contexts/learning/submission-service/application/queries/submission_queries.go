package queries

import (
	"context"
	"strings"

	"evergreen/contexts/learning/submission-service/domain/entities"
	domainerrors "evergreen/contexts/learning/submission-service/domain/errors"
	"evergreen/contexts/learning/submission-service/ports"
)

type SubmissionQueries struct {
	Repository ports.Repository
}

func (q SubmissionQueries) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return entities.Submission{}, domainerrors.ErrInvalidSubmission
	}
	return q.Repository.GetSubmission(ctx, submissionID)
}

func (q SubmissionQueries) ListUserSubmissions(ctx context.Context, userID string) ([]entities.Submission, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainerrors.ErrInvalidSubmission
	}
	return q.Repository.ListSubmissions(ctx, userID)
}
