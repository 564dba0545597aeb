package httpadapter

import (
	"context"

	"evergreen/contexts/engagement/leaderboard-service/application"
	httptransport "evergreen/contexts/engagement/leaderboard-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) TopHandler(ctx context.Context, limit int) (httptransport.LeaderboardResponse, error) {
	entries, err := h.Service.Top(ctx, limit)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}
	return leaderboardResponse(entries), nil
}

func (h Handler) RankHandler(ctx context.Context, userID string) (httptransport.RankResponse, error) {
	entry, err := h.Service.RankAndScore(ctx, userID)
	if err != nil {
		return httptransport.RankResponse{}, err
	}
	resp := httptransport.RankResponse{Status: "success"}
	resp.Data.UserID = entry.UserID
	resp.Data.Rank = entry.Rank
	resp.Data.Score = entry.Score
	return resp, nil
}

func (h Handler) RangeHandler(ctx context.Context, startRank, endRank int64) (httptransport.LeaderboardResponse, error) {
	entries, err := h.Service.Range(ctx, startRank, endRank)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}
	return leaderboardResponse(entries), nil
}

func (h Handler) CountHandler(ctx context.Context) (httptransport.CountResponse, error) {
	total, err := h.Service.Count(ctx)
	if err != nil {
		return httptransport.CountResponse{}, err
	}
	resp := httptransport.CountResponse{Status: "success"}
	resp.Data.Total = total
	return resp, nil
}

func leaderboardResponse(entries []application.RankedEntry) httptransport.LeaderboardResponse {
	resp := httptransport.LeaderboardResponse{
		Status: "success",
		Data:   make([]httptransport.LeaderboardEntryDTO, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Data = append(resp.Data, httptransport.LeaderboardEntryDTO{
			Rank:   entry.Rank,
			UserID: entry.UserID,
			Score:  entry.Score,
		})
	}
	return resp
}
