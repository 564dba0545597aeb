package httpadapter

import (
	"context"
	"encoding/json"

	"evergreen/contexts/engagement/gamification-service/application"
	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/contexts/engagement/gamification-service/ports"
	httptransport "evergreen/contexts/engagement/gamification-service/transport/http"
	"evergreen/internal/shared/events"
)

type Handler struct {
	Service    application.Service
	Dispatcher ports.Dispatcher
}

func (h Handler) AddXPHandler(ctx context.Context, userID string, req httptransport.AddXPRequest) (httptransport.AddXPResponse, error) {
	result, err := h.Service.AddXP(ctx, userID, req.XP)
	if err != nil {
		return httptransport.AddXPResponse{}, err
	}
	resp := httptransport.AddXPResponse{Status: "success"}
	resp.Data.UserID = result.UserID
	resp.Data.TotalXP = result.Total
	resp.Data.NewBadges = result.NewBadges
	if resp.Data.NewBadges == nil {
		resp.Data.NewBadges = []string{}
	}
	return resp, nil
}

func (h Handler) GetUserSummaryHandler(ctx context.Context, userID string) (httptransport.UserSummaryResponse, error) {
	summary, err := h.Service.GetSummary(ctx, userID)
	if err != nil {
		return httptransport.UserSummaryResponse{}, err
	}
	resp := httptransport.UserSummaryResponse{Status: "success"}
	resp.Data.UserID = summary.UserID
	resp.Data.XP = summary.XP
	resp.Data.Badges = summary.Badges
	if resp.Data.Badges == nil {
		resp.Data.Badges = []string{}
	}
	return resp, nil
}

// DispatchEventHandler accepts a named event with a JSON payload. The
// payload must carry user_id; everything else rides along untouched to the
// handler.
func (h Handler) DispatchEventHandler(ctx context.Context, req httptransport.DispatchEventRequest) (httptransport.DispatchEventResponse, error) {
	var identity struct {
		UserID string `json:"user_id"`
	}
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &identity); err != nil {
			return httptransport.DispatchEventResponse{}, domainerrors.ErrMissingUserID
		}
	}
	jobID, err := h.Dispatcher.Dispatch(ctx, events.Event{
		Name:   req.EventName,
		UserID: identity.UserID,
		Data:   req.Payload,
	})
	if err != nil {
		return httptransport.DispatchEventResponse{}, err
	}
	resp := httptransport.DispatchEventResponse{Status: "success"}
	resp.Data.JobID = jobID
	resp.Data.Mode = "queued"
	if jobID == "" {
		resp.Data.Mode = "inline"
	}
	return resp, nil
}
