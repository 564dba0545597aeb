package httpadapter

import (
	"context"
	"time"

	"evergreen/contexts/learning/submission-service/application/commands"
	"evergreen/contexts/learning/submission-service/application/queries"
	"evergreen/contexts/learning/submission-service/domain/entities"
	httptransport "evergreen/contexts/learning/submission-service/transport/http"
)

type Handler struct {
	Submit  commands.SubmitProjectUseCase
	Queries queries.SubmissionQueries
}

func (h Handler) SubmitProjectHandler(ctx context.Context, req httptransport.SubmitProjectRequest) (httptransport.SubmitProjectResponse, error) {
	cmd := commands.SubmitProjectCommand{
		UserID:      req.UserID,
		CourseID:    req.CourseID,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Geotag != nil {
		cmd.Geotag = &entities.Geotag{Lat: req.Geotag.Lat, Lng: req.Geotag.Lng}
	}
	result, err := h.Submit.Execute(ctx, cmd)
	if err != nil {
		return httptransport.SubmitProjectResponse{}, err
	}
	resp := httptransport.SubmitProjectResponse{Status: "success"}
	resp.Data.Submission = submissionDTO(result.Submission)
	resp.Data.JobID = result.JobID
	return resp, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.SubmissionResponse, error) {
	submission, err := h.Queries.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{
		Status: "success",
		Data:   submissionDTO(submission),
	}, nil
}

func (h Handler) ListSubmissionsHandler(ctx context.Context, userID string) (httptransport.SubmissionListResponse, error) {
	items, err := h.Queries.ListUserSubmissions(ctx, userID)
	if err != nil {
		return httptransport.SubmissionListResponse{}, err
	}
	resp := httptransport.SubmissionListResponse{
		Status: "success",
		Data:   make([]httptransport.SubmissionDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Data = append(resp.Data, submissionDTO(item))
	}
	return resp, nil
}

func submissionDTO(submission entities.Submission) httptransport.SubmissionDTO {
	dto := httptransport.SubmissionDTO{
		SubmissionID: submission.SubmissionID,
		UserID:       submission.UserID,
		CourseID:     submission.CourseID,
		Description:  submission.Description,
		ImageURL:     submission.ImageURL,
		AIScore:      submission.AIScore,
		Verified:     submission.Verified,
		Status:       string(submission.Status),
		CreatedAt:    submission.CreatedAt.UTC().Format(time.RFC3339),
	}
	if submission.Geotag != nil {
		dto.Geotag = &httptransport.GeotagDTO{Lat: submission.Geotag.Lat, Lng: submission.Geotag.Lng}
	}
	return dto
}
