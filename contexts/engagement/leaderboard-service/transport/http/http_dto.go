package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LeaderboardEntryDTO struct {
	Rank   int64  `json:"rank"`
	UserID string `json:"user_id"`
	Score  int64  `json:"score"`
}

type LeaderboardResponse struct {
	Status string                `json:"status"`
	Data   []LeaderboardEntryDTO `json:"data"`
}

type RankResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID string `json:"user_id"`
		Rank   int64  `json:"rank"`
		Score  int64  `json:"score"`
	} `json:"data"`
}

type CountResponse struct {
	Status string `json:"status"`
	Data   struct {
		Total int64 `json:"total"`
	} `json:"data"`
}
